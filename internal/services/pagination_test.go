package services

import (
	"testing"
)

func TestNewPageInfoMiddlePage(t *testing.T) {
	// 25 items, page 2, size 10
	info := NewPageInfo(2, 10, 25)

	if info.TotalPages != 3 {
		t.Errorf("Expected 3 total pages, got %d", info.TotalPages)
	}
	if !info.HasNext {
		t.Errorf("Expected has_next on page 2 of 3")
	}
	if !info.HasPrev {
		t.Errorf("Expected has_prev on page 2 of 3")
	}
	if info.Offset() != 10 {
		t.Errorf("Expected offset 10, got %d", info.Offset())
	}
}

func TestNewPageInfoBoundaries(t *testing.T) {
	first := NewPageInfo(1, 10, 25)
	if first.HasPrev {
		t.Errorf("Page 1 must not have has_prev")
	}
	if !first.HasNext {
		t.Errorf("Page 1 of 3 must have has_next")
	}

	last := NewPageInfo(3, 10, 25)
	if last.HasNext {
		t.Errorf("Last page must not have has_next")
	}

	empty := NewPageInfo(1, 10, 0)
	if empty.TotalPages != 1 {
		t.Errorf("Empty result set reports 1 page, got %d", empty.TotalPages)
	}
	if empty.HasNext || empty.HasPrev {
		t.Errorf("Empty result set has no navigation")
	}
}

func TestClampPage(t *testing.T) {
	if ClampPage(0) != 1 || ClampPage(-3) != 1 {
		t.Errorf("Non-positive pages clamp to 1")
	}
	if ClampPage(7) != 7 {
		t.Errorf("Valid pages pass through")
	}
}

func TestClampPageSize(t *testing.T) {
	if ClampPageSize(0) != DefaultPageSize {
		t.Errorf("Zero size falls back to default")
	}
	if ClampPageSize(1000) != MaxPageSize {
		t.Errorf("Oversized page_size clamps to max")
	}
	if ClampPageSize(20) != 20 {
		t.Errorf("Valid sizes pass through")
	}
}
