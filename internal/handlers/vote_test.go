package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"devboard/internal/middleware"
	"devboard/internal/models"

	"github.com/gin-gonic/gin"
)

func newVoteRouter(user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if user != nil {
		r.Use(func(c *gin.Context) {
			c.Set(middleware.CheckUserKey, user)
			c.Next()
		})
	}
	r.Use(middleware.AuthRequired())
	r.POST("/api/votes", NewVoteHandler().Cast)
	return r
}

func TestCastVoteUnauthenticated(t *testing.T) {
	r := newVoteRouter(nil)

	req := httptest.NewRequest("POST", "/api/votes", strings.NewReader(`{"post_id":"abc","value":1}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if body["code"] != "UNAUTHENTICATED" {
		t.Errorf("Expected code UNAUTHENTICATED, got %s", body["code"])
	}
}

// An out-of-range value is rejected before any storage call; db.DB is nil in
// this test, so touching storage would panic.
func TestCastVoteInvalidValue(t *testing.T) {
	r := newVoteRouter(&models.User{ID: 1, Username: "alice"})

	for _, payload := range []string{
		`{"post_id":"abc","value":2}`,
		`{"post_id":"abc","value":0}`,
		`{"value":1}`,
	} {
		req := httptest.NewRequest("POST", "/api/votes", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Payload %s: expected 400, got %d", payload, w.Code)
		}

		var body map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("Invalid JSON response: %v", err)
		}
		if body["code"] != "INVALID_ARGUMENT" {
			t.Errorf("Payload %s: expected code INVALID_ARGUMENT, got %s", payload, body["code"])
		}
	}
}
