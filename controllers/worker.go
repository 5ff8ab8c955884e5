// controllers/worker.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"oldroad-backend/config"
	"oldroad-backend/models"
	"oldroad-backend/utils"
)

type CreateWorkerInput struct {
	Name string `json:"name" binding:"required"`
	Pin  string `json:"pin" binding:"required,min=4"`
}

type UpdateWorkerInput struct {
	Name string `json:"name" binding:"required"`
	Pin  string `json:"pin" binding:"required,min=4"`
}

// GetWorkers lists all workers with their enabled service prices
func GetWorkers(c *gin.Context) {
	var workers []models.User
	if err := config.DB.
		Preload("Prices", "enabled = ?", true).
		Preload("Prices.Service").
		Order("name asc").
		Find(&workers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Nie udało się pobrać listy użytkowników")
		return
	}

	c.JSON(http.StatusOK, workers)
}

// CreateWorker adds a staff account. Name and pin must each be globally
// unique; the response names whichever field collided.
func CreateWorker(c *gin.Context) {
	var input CreateWorkerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePIN(input.Pin) {
		utils.RespondWithError(c, http.StatusBadRequest, "Nieprawidłowy format PIN")
		return
	}

	var existing models.User
	result := config.DB.Where("name = ?", input.Name).First(&existing)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Użytkownik o tej nazwie już istnieje")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	result = config.DB.Where("pin = ?", input.Pin).First(&existing)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "PIN jest już używany przez innego użytkownika")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	worker := models.User{
		Name: input.Name,
		Pin:  input.Pin,
		Role: models.RoleUser,
	}

	if err := config.DB.Create(&worker).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondWithError(c, http.StatusConflict, "Użytkownik o tej nazwie lub tym PIN już istnieje")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Nie udało się utworzyć użytkownika")
		}
		return
	}

	c.JSON(http.StatusCreated, worker)
}

// GetWorker returns a worker with every assignment ever made, enabled or not,
// for the admin management screen.
func GetWorker(c *gin.Context) {
	var worker models.User
	if err := config.DB.
		Preload("Prices").
		Preload("Prices.Service").
		First(&worker, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Użytkownik nie został znaleziony")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, worker)
}

// UpdateWorker changes name/pin with the same uniqueness checks, excluding the
// worker's own row.
func UpdateWorker(c *gin.Context) {
	var input UpdateWorkerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePIN(input.Pin) {
		utils.RespondWithError(c, http.StatusBadRequest, "Nieprawidłowy format PIN")
		return
	}

	var worker models.User
	if err := config.DB.First(&worker, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Użytkownik nie został znaleziony")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var existing models.User
	result := config.DB.Where("name = ? AND id <> ?", input.Name, worker.ID).First(&existing)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Użytkownik o tej nazwie już istnieje")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	result = config.DB.Where("pin = ? AND id <> ?", input.Pin, worker.ID).First(&existing)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "PIN jest już używany przez innego użytkownika")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	worker.Name = input.Name
	worker.Pin = input.Pin

	if err := config.DB.Save(&worker).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondWithError(c, http.StatusConflict, "Użytkownik o tej nazwie lub tym PIN już istnieje")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Nie udało się zaktualizować użytkownika")
		}
		return
	}

	c.JSON(http.StatusOK, worker)
}
