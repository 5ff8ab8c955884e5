// controllers/start.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"oldroad-backend/config"
	"oldroad-backend/models"
	"oldroad-backend/utils"
)

type CreateStartInput struct {
	Price float64 `json:"price" binding:"required,gt=0"`
	Date  string  `json:"date"`
}

type UpdateStartInput struct {
	Price float64 `json:"price" binding:"required,gt=0"`
	Date  string  `json:"date"`
}

// CreateStart records the opening cash float for one business day. The
// pre-check produces the dated conflict message; the unique index on the
// derived day column is what actually guarantees one entry per day.
func CreateStart(c *gin.Context) {
	var input CreateStartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	createdAt, err := entryTime(input.Date)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	dayStart, dayEnd := utils.DayRange(createdAt)
	conflict := fmt.Sprintf("Startowy hajs został już dodany na dzień %s", createdAt.Format("02/01/2006"))

	var existing models.Start
	result := config.DB.Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).First(&existing)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, conflict)
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	start := models.Start{
		Price:     input.Price,
		CreatedAt: createdAt,
	}
	if err := config.DB.Create(&start).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondWithError(c, http.StatusConflict, conflict)
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create start entry")
		}
		return
	}

	c.JSON(http.StatusCreated, start)
}

// GetStarts returns the float entries for one business day, newest first.
func GetStarts(c *gin.Context) {
	start, end, err := dayRangeFromQuery(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	var starts []models.Start
	if err := config.DB.Where("created_at >= ? AND created_at < ?", start, end).
		Order("created_at desc").Find(&starts).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve start entries")
		return
	}

	c.JSON(http.StatusOK, starts)
}

func GetStart(c *gin.Context) {
	var start models.Start
	if err := config.DB.First(&start, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Start entry not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, start)
}

// UpdateStart edits price/date with the same one-per-day check, excluding the
// record being edited.
func UpdateStart(c *gin.Context) {
	var input UpdateStartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var start models.Start
	if err := config.DB.First(&start, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Start entry not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	createdAt := start.CreatedAt
	if input.Date != "" {
		var err error
		createdAt, err = entryTime(input.Date)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
			return
		}
	}

	dayStart, dayEnd := utils.DayRange(createdAt)
	conflict := fmt.Sprintf("Startowy hajs już istnieje na dzień %s", createdAt.Format("02/01/2006"))

	var existing models.Start
	result := config.DB.Where("id <> ? AND created_at >= ? AND created_at < ?", start.ID, dayStart, dayEnd).
		First(&existing)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, conflict)
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	start.Price = input.Price
	start.CreatedAt = createdAt
	if err := config.DB.Save(&start).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondWithError(c, http.StatusConflict, conflict)
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update start entry")
		}
		return
	}

	c.JSON(http.StatusOK, start)
}

func DeleteStart(c *gin.Context) {
	result := config.DB.Delete(&models.Start{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete start entry")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Start entry not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Start entry deleted successfully"})
}
