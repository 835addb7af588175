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

func TestListCommentsMissingPostID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/comments", NewCommentHandler().List)

	req := httptest.NewRequest("GET", "/api/comments", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if body["code"] != "INVALID_ARGUMENT" {
		t.Errorf("Expected code INVALID_ARGUMENT, got %s", body["code"])
	}
}

func TestCreateCommentMissingFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.CheckUserKey, &models.User{ID: 1, Username: "alice"})
		c.Next()
	})
	r.POST("/api/comments", NewCommentHandler().Create)

	for _, payload := range []string{
		`{"content":"hi"}`,
		`{"post_id":"abc"}`,
		`{"post_id":"abc","content":"   "}`,
	} {
		req := httptest.NewRequest("POST", "/api/comments", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Payload %s: expected 400, got %d", payload, w.Code)
		}
	}
}
