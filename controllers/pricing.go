// controllers/pricing.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"oldroad-backend/config"
	"oldroad-backend/models"
	"oldroad-backend/utils"
)

type SetPriceInput struct {
	Price *float64 `json:"price" binding:"required,gte=0"`
}

type AssignServiceInput struct {
	ServiceID uint     `json:"serviceId" binding:"required"`
	Price     *float64 `json:"price" binding:"required,gte=0"`
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+name+" format")
		return 0, false
	}
	return uint(id), true
}

// priceAccess guards the per-user pricing endpoints: workers reach only their
// own prices, admins anyone's.
func priceAccess(c *gin.Context) (uint, bool) {
	targetID, ok := pathID(c, "id")
	if !ok {
		return 0, false
	}
	userID, _ := sessionUserID(c)
	if targetID != userID && !sessionIsAdmin(c) {
		utils.RespondWithError(c, http.StatusForbidden, "Not allowed to access another worker's prices")
		return 0, false
	}
	return targetID, true
}

// upsertPrice keeps the at-most-one-row-per-pair invariant in the database:
// ON CONFLICT on the composite key updates price and re-enables the service.
func upsertPrice(userID, serviceID uint, price float64) (models.UserServicePrice, error) {
	assignment := models.UserServicePrice{
		UserID:    userID,
		ServiceID: serviceID,
		Price:     price,
		Enabled:   true,
	}
	err := config.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "service_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"price", "enabled"}),
	}).Create(&assignment).Error
	return assignment, err
}

// GetUserServices lists the services currently enabled for a worker; feeds the
// new-booking dropdown.
func GetUserServices(c *gin.Context) {
	targetID, ok := priceAccess(c)
	if !ok {
		return
	}

	var services []models.Service
	if err := config.DB.
		Select("services.*").
		Joins("JOIN user_service_prices ON user_service_prices.service_id = services.id").
		Where("user_service_prices.user_id = ? AND user_service_prices.enabled = ?", targetID, true).
		Order("services.name asc").
		Find(&services).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, services)
}

// GetUserServicesAll lists every service ever assigned to a worker, enabled or
// not; backs the historical edit screens so bookings that reference a since-
// disabled service stay editable.
func GetUserServicesAll(c *gin.Context) {
	targetID, ok := priceAccess(c)
	if !ok {
		return
	}

	var services []models.Service
	if err := config.DB.
		Select("services.*").
		Joins("JOIN user_service_prices ON user_service_prices.service_id = services.id").
		Where("user_service_prices.user_id = ?", targetID).
		Order("services.name asc").
		Find(&services).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, services)
}

// GetUserPrices lists a worker's enabled assignments with services, ordered by
// service name.
func GetUserPrices(c *gin.Context) {
	targetID, ok := priceAccess(c)
	if !ok {
		return
	}

	var prices []models.UserServicePrice
	if err := config.DB.Preload("Service").
		Select("user_service_prices.*").
		Joins("JOIN services ON services.id = user_service_prices.service_id").
		Where("user_service_prices.user_id = ? AND user_service_prices.enabled = ?", targetID, true).
		Order("services.name asc").
		Find(&prices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve prices")
		return
	}

	c.JSON(http.StatusOK, prices)
}

// GetUserServicePrice returns the enabled price for one (worker, service)
// pair; used to pre-fill the booking form.
func GetUserServicePrice(c *gin.Context) {
	targetID, ok := priceAccess(c)
	if !ok {
		return
	}
	serviceID, ok := pathID(c, "serviceId")
	if !ok {
		return
	}

	var assignment models.UserServicePrice
	err := config.DB.
		Where("user_id = ? AND service_id = ? AND enabled = ?", targetID, serviceID, true).
		First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Brak ustalonej ceny usługi")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"price": assignment.Price})
}

// GetUserServicePriceAll ignores the enabled flag; historical edits re-derive
// the price suggestion even for disabled services.
func GetUserServicePriceAll(c *gin.Context) {
	targetID, ok := priceAccess(c)
	if !ok {
		return
	}
	serviceID, ok := pathID(c, "serviceId")
	if !ok {
		return
	}

	var assignment models.UserServicePrice
	err := config.DB.
		Where("user_id = ? AND service_id = ?", targetID, serviceID).
		First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Brak ustalonej ceny usługi")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"price": assignment.Price})
}

// SetUserServicePrice upserts a worker's own price for a service (settings
// screen); admins may set anyone's.
func SetUserServicePrice(c *gin.Context) {
	targetID, ok := priceAccess(c)
	if !ok {
		return
	}
	serviceID, ok := pathID(c, "serviceId")
	if !ok {
		return
	}

	var input SetPriceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var service models.Service
	if err := config.DB.First(&service, "id = ?", serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Usługa nie została znaleziona")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	assignment, err := upsertPrice(targetID, serviceID, *input.Price)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Nie udało się ustawić ceny usługi")
		return
	}

	c.JSON(http.StatusOK, assignment)
}

// AssignService assigns a service with a price to a worker (admin), enabling
// it when it was previously disabled.
func AssignService(c *gin.Context) {
	workerID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input AssignServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var worker models.User
	if err := config.DB.First(&worker, "id = ?", workerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Użytkownik nie został znaleziony")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var service models.Service
	if err := config.DB.First(&service, "id = ?", input.ServiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Usługa nie została znaleziona")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	assignment, err := upsertPrice(workerID, input.ServiceID, *input.Price)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Nie udało się przypisać usługi do użytkownika")
		return
	}
	assignment.Service = service

	c.JSON(http.StatusOK, assignment)
}

// RemoveService disables a service for a worker instead of deleting the row.
// Disabling an absent or already-disabled assignment is a success.
func RemoveService(c *gin.Context) {
	workerID, ok := pathID(c, "id")
	if !ok {
		return
	}
	serviceID, ok := pathID(c, "serviceId")
	if !ok {
		return
	}

	result := config.DB.Model(&models.UserServicePrice{}).
		Where("user_id = ? AND service_id = ?", workerID, serviceID).
		Update("enabled", false)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Nie udało się wyłączyć usługi dla użytkownika")
		return
	}

	// RowsAffected == 0 means the assignment never existed; already "disabled"
	c.JSON(http.StatusOK, gin.H{"message": "Service disabled for worker"})
}
