package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"teamtask-api/internal/auth"
	"teamtask-api/internal/database"
	"teamtask-api/internal/models"
)

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	Token   string      `json:"token"`
	StaffID uint        `json:"staff_id"`
	Name    string      `json:"name"`
	Role    models.Role `json:"role"`
	Message string      `json:"message"`
}

// Login handles POST /api/login
func (a *API) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request. Email and password are required.",
		})
		return
	}

	var staff models.Staff
	if err := database.GetDB().Where("email = ?", req.Email).First(&staff).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := auth.GenerateToken(staff.ID, staff.Name, staff.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:   token,
		StaffID: staff.ID,
		Name:    staff.Name,
		Role:    staff.Role,
		Message: "Login successful",
	})
}
