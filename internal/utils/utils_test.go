package utils

import (
	"strings"
	"testing"
	"time"
)

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" Go ", "WEB", "go", "", "Web"})
	want := []string{"go", "web"}

	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, got)
		}
	}
}

func TestStringToInt(t *testing.T) {
	if StringToInt("42") != 42 {
		t.Errorf("Expected 42")
	}
	if StringToInt("nope") != 0 {
		t.Errorf("Expected 0 for invalid input")
	}
}

func TestPasswordHashRoundtrip(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if !CheckPasswordHash("hunter22", hash) {
		t.Errorf("Correct password rejected")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Errorf("Wrong password accepted")
	}
}

func TestRandStringBytesMaskImpr(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		s := RandStringBytesMaskImpr(8)
		if len(s) != 8 {
			t.Fatalf("Expected length 8, got %d", len(s))
		}
		for _, r := range s {
			if !strings.ContainsRune(letterBytes, r) {
				t.Fatalf("Unexpected character %q", r)
			}
		}
		seen[s] = true
	}
	if len(seen) < 90 {
		t.Errorf("Expected mostly unique ids, got %d of 100", len(seen))
	}
}

func TestCacheTTL(t *testing.T) {
	c := GetCache()

	c.Set("k", "v", 50*time.Millisecond)
	if c.Get("k") != "v" {
		t.Errorf("Expected cached value before expiry")
	}

	time.Sleep(60 * time.Millisecond)
	if c.Get("k") != nil {
		t.Errorf("Expected nil after expiry")
	}

	c.Set("k2", "v2", time.Minute)
	c.Delete("k2")
	if c.Get("k2") != nil {
		t.Errorf("Expected nil after delete")
	}
}
