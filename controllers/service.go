// controllers/service.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"oldroad-backend/config"
	"oldroad-backend/models"
	"oldroad-backend/utils"
)

type CreateServiceInput struct {
	Name string `json:"name" binding:"required"`
}

// GetServices retrieves the global service catalog for dropdowns
func GetServices(c *gin.Context) {
	var services []models.Service
	if err := config.DB.Order("name asc").Find(&services).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, services)
}

// CreateService adds a service type to the catalog (admin)
func CreateService(c *gin.Context) {
	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	service := models.Service{Name: input.Name}
	if err := config.DB.Create(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service")
		return
	}

	c.JSON(http.StatusCreated, service)
}
