package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// DomainError carries a stable error code and a client-safe message.
type DomainError struct {
	Status  int
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func domainError(status int, code, message string) *DomainError {
	return &DomainError{Status: status, Code: code, Message: message}
}

func errUnauthenticated() *DomainError {
	return domainError(http.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required")
}

func errInvalidArgument(message string) *DomainError {
	return domainError(http.StatusBadRequest, "INVALID_ARGUMENT", message)
}

func errNotFound(message string) *DomainError {
	return domainError(http.StatusNotFound, "NOT_FOUND", message)
}

func errForbidden(message string) *DomainError {
	return domainError(http.StatusForbidden, "FORBIDDEN", message)
}

func errConflict(message string) *DomainError {
	return domainError(http.StatusConflict, "CONFLICT", message)
}

// JSONError writes the error envelope. Non-domain errors are logged
// server-side and surface as an opaque STORAGE_FAILURE; backend diagnostics
// never reach the client.
func JSONError(c *gin.Context, err error) {
	var de *DomainError
	if errors.As(err, &de) {
		c.JSON(de.Status, gin.H{"code": de.Code, "error": de.Message})
		return
	}

	log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"code":  "STORAGE_FAILURE",
		"error": "internal error",
	})
}
