package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storyhive/internal/db"
	"storyhive/internal/middleware"
	"storyhive/internal/models"
	"storyhive/internal/utils"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusUnprocessableEntity, "Validation failed")
		return
	}

	var count int64
	db.DB.Model(&models.User{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		RespondError(c, http.StatusUnprocessableEntity, "Email already registered")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "Registration failed")
		return
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Role:     models.RoleMember,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		RespondError(c, http.StatusUnprocessableEntity, "Email already registered")
		return
	}

	token, err := middleware.GenerateToken(user.ID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "Registration failed")
		return
	}

	RespondSuccess(c, http.StatusCreated, "Registered successfully", gin.H{
		"user":  user,
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusUnprocessableEntity, "Validation failed")
		return
	}

	var user models.User
	if err := db.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		RespondError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		RespondError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if user.IsSuspended {
		RespondError(c, http.StatusForbidden, "Account suspended")
		return
	}

	token, err := middleware.GenerateToken(user.ID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "Login failed")
		return
	}

	RespondSuccess(c, http.StatusOK, "Login successful", gin.H{
		"user":  user,
		"token": token,
	})
}

// Logout is a no-op on the server side; bearer tokens simply expire and the
// client discards its copy.
func (h *AuthHandler) Logout(c *gin.Context) {
	RespondSuccess(c, http.StatusOK, "Logged out", nil)
}

func (h *AuthHandler) Me(c *gin.Context) {
	RespondSuccess(c, http.StatusOK, "Authenticated user", CurrentUser(c))
}
