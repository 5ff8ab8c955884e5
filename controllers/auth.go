package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"oldroad-backend/config"
	"oldroad-backend/models"
	"oldroad-backend/utils"
)

type LoginInput struct {
	Pin string `json:"pin" binding:"required,min=4"`
}

// sessionUserID returns the authenticated user's id set by the auth middleware.
func sessionUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("userId")
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}

func sessionIsAdmin(c *gin.Context) bool {
	role, _ := c.Get("userRole")
	return role == models.RoleAdmin
}

// Login exchanges a PIN for a session token. The PIN is the whole credential,
// looked up against the unique pin column.
func Login(c *gin.Context) {
	var input LoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	pin := strings.TrimSpace(input.Pin)
	if !utils.ValidatePIN(pin) {
		utils.RespondWithError(c, http.StatusBadRequest, "Nieprawidłowy format PIN")
		return
	}

	var user models.User
	result := config.DB.Where("pin = ?", pin).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Nieprawidłowy PIN")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Name, user.Role)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.SetTokenCookie(c, token)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":   user.ID,
			"name": user.Name,
			"role": user.Role,
		},
	})
}

func Me(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusInternalServerError, "User ID not found in context")
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":   user.ID,
			"name": user.Name,
			"role": user.Role,
		},
	})
}

func Logout(c *gin.Context) {
	utils.ClearTokenCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
