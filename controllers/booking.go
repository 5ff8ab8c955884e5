// controllers/booking.go
package controllers

import (
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"oldroad-backend/config"
	"oldroad-backend/models"
	"oldroad-backend/utils"
)

// CreateBookingInput defines the expected JSON structure for recording a sale
type CreateBookingInput struct {
	UserID    *uint   `json:"userId"`
	ServiceID uint    `json:"serviceId" binding:"required"`
	Price     float64 `json:"price" binding:"required,gt=0"`
	Date      string  `json:"date"` // YYYY-MM-DD, defaults to today
}

type UpdateBookingInput struct {
	ServiceID uint    `json:"serviceId" binding:"required"`
	Price     float64 `json:"price" binding:"required,gt=0"`
	Date      string  `json:"date"`
}

// dayRangeFromQuery resolves the optional ?date=YYYY-MM-DD parameter to the
// business-day bounds, defaulting to today.
func dayRangeFromQuery(c *gin.Context) (start, end time.Time, err error) {
	if d := c.Query("date"); d != "" {
		day, perr := utils.ParseDay(d)
		if perr != nil {
			return start, end, perr
		}
		start, end = utils.DayRange(day)
		return
	}
	start, end = utils.DayRange(time.Now())
	return
}

// entryTime turns an optional YYYY-MM-DD form date into a timestamp inside
// that business day; empty means now.
func entryTime(date string) (time.Time, error) {
	if date == "" {
		return time.Now().In(utils.BusinessLocation()), nil
	}
	day, err := utils.ParseDay(date)
	if err != nil {
		return time.Time{}, err
	}
	// noon keeps the entry inside the selected day across DST changes
	return day.Add(12 * time.Hour), nil
}

// CreateBooking records one performed service for the session user. Admins
// may record on behalf of another worker (the till is a shared device).
func CreateBooking(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var input CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	actorID := userID
	if input.UserID != nil && sessionIsAdmin(c) {
		actorID = *input.UserID
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

	createdAt, err := entryTime(input.Date)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	booking := models.Booking{
		UserID:    actorID,
		ServiceID: input.ServiceID,
		Price:     input.Price,
		CreatedAt: createdAt,
	}

	if err := config.DB.Create(&booking).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create booking")
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// GetBookings returns one business day of bookings, newest first. Admins see
// every worker, everyone else only their own.
func GetBookings(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	start, end, err := dayRangeFromQuery(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	query := config.DB.Preload("User").Preload("Service").
		Where("created_at >= ? AND created_at < ?", start, end).
		Order("created_at desc")
	if !sessionIsAdmin(c) {
		query = query.Where("user_id = ?", userID)
	}

	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

type ChartBucket struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

// GetBookingChart returns booking-price totals bucketed per calendar unit:
// daily over the last 7 days or monthly over the last 6 months, both endpoints
// inclusive, zero-filled and chronological.
func GetBookingChart(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	view := c.DefaultQuery("view", "daily")
	if view != "daily" && view != "monthly" {
		utils.RespondWithError(c, http.StatusBadRequest, "view must be daily or monthly")
		return
	}

	now := time.Now().In(utils.BusinessLocation())
	var rangeStart time.Time
	if view == "daily" {
		rangeStart = now.AddDate(0, 0, -7)
	} else {
		// anchor to the first of the month so month-end dates cannot
		// normalize into the wrong month and change the bucket count
		rangeStart = time.Date(now.Year(), now.Month()-6, 1, 0, 0, 0, 0, utils.BusinessLocation())
	}

	start := utils.BeginningOfDay(rangeStart)
	_, end := utils.DayRange(now)

	query := config.DB.Where("created_at >= ? AND created_at < ?", start, end).
		Order("created_at asc")
	if !sessionIsAdmin(c) {
		query = query.Where("user_id = ?", userID)
	}

	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}

	c.JSON(http.StatusOK, bucketTotals(bookings, view, rangeStart, now))
}

func bucketTotals(bookings []models.Booking, view string, start, end time.Time) []ChartBucket {
	var keys []string
	totals := make(map[string]float64)

	if view == "daily" {
		for day := utils.BeginningOfDay(start); !day.After(end); day = day.AddDate(0, 0, 1) {
			key := utils.DayKey(day)
			keys = append(keys, key)
			totals[key] = 0
		}
	} else {
		loc := utils.BusinessLocation()
		first := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, loc)
		for month := first; !month.After(end); month = month.AddDate(0, 1, 0) {
			key := utils.MonthKey(month)
			keys = append(keys, key)
			totals[key] = 0
		}
	}

	for _, booking := range bookings {
		key := utils.DayKey(booking.CreatedAt)
		if view == "monthly" {
			key = utils.MonthKey(booking.CreatedAt)
		}
		if _, ok := totals[key]; ok {
			totals[key] += booking.Price
		}
	}

	buckets := make([]ChartBucket, 0, len(keys))
	for _, key := range keys {
		buckets = append(buckets, ChartBucket{
			Date:  key,
			Total: math.Round(totals[key]*100) / 100,
		})
	}
	return buckets
}

// GetBooking retrieves a single booking for the edit screen
func GetBooking(c *gin.Context) {
	var booking models.Booking
	if err := config.DB.Preload("User").Preload("Service").
		First(&booking, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, booking)
}

// UpdateBooking changes date, service or price; only the original actor or an
// admin may edit.
func UpdateBooking(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var input UpdateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var booking models.Booking
	if err := config.DB.First(&booking, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if booking.UserID != userID && !sessionIsAdmin(c) {
		utils.RespondWithError(c, http.StatusForbidden, "Not allowed to edit this booking")
		return
	}

	booking.ServiceID = input.ServiceID
	booking.Price = input.Price
	if input.Date != "" {
		createdAt, err := entryTime(input.Date)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
			return
		}
		booking.CreatedAt = createdAt
	}

	if err := config.DB.Save(&booking).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update booking")
		return
	}

	c.JSON(http.StatusOK, booking)
}

func DeleteBooking(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var booking models.Booking
	if err := config.DB.First(&booking, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if booking.UserID != userID && !sessionIsAdmin(c) {
		utils.RespondWithError(c, http.StatusForbidden, "Not allowed to delete this booking")
		return
	}

	if err := config.DB.Delete(&booking).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete booking")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}
