package handlers

import (
	"errors"
	"net/http"
	"strings"

	"devboard/internal/db"
	"devboard/internal/middleware"
	"devboard/internal/models"
	"devboard/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

type signupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, errInvalidArgument("Email, password, and username are required"))
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Username = strings.TrimSpace(req.Username)
	if req.Email == "" || req.Password == "" || req.Username == "" {
		JSONError(c, errInvalidArgument("Email, password, and username are required"))
		return
	}
	if len(req.Password) < 6 {
		JSONError(c, errInvalidArgument("Password must be at least 6 characters"))
		return
	}

	var existing models.User
	err := db.DB.Where("email = ? OR username = ?", req.Email, req.Username).
		First(&existing).Error
	if err == nil {
		JSONError(c, errConflict("User with this email or username already exists"))
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		JSONError(c, err)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		JSONError(c, err)
		return
	}

	user := models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  hash,
		AvatarURL: req.AvatarURL,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		// Unique index race on email/username
		JSONError(c, errConflict("User with this email or username already exists"))
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	if err := session.Save(); err != nil {
		JSONError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, errInvalidArgument("Email and password are required"))
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		JSONError(c, errInvalidArgument("Email and password are required"))
		return
	}

	var user models.User
	if err := db.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		JSONError(c, domainError(http.StatusUnauthorized, "UNAUTHENTICATED", "Invalid email or password"))
		return
	}
	if !utils.CheckPasswordHash(req.Password, user.Password) {
		JSONError(c, domainError(http.StatusUnauthorized, "UNAUTHENTICATED", "Invalid email or password"))
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	if err := session.Save(); err != nil {
		JSONError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me returns the current session user.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		JSONError(c, errUnauthenticated())
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
