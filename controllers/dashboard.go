// controllers/dashboard.go
package controllers

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"oldroad-backend/config"
	"oldroad-backend/models"
	"oldroad-backend/utils"
)

func sumBookings(start, end time.Time, userID *uint) (float64, error) {
	var total float64
	query := config.DB.Model(&models.Booking{}).
		Where("created_at >= ? AND created_at < ?", start, end)
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}
	err := query.Select("COALESCE(SUM(price), 0)").Scan(&total).Error
	return total, err
}

func sumProducts(start, end time.Time, userID *uint) (float64, error) {
	var total float64
	query := config.DB.Model(&models.Product{}).
		Where("created_at >= ? AND created_at < ?", start, end)
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}
	err := query.Select("COALESCE(SUM(price), 0)").Scan(&total).Error
	return total, err
}

func countBookings(start, end time.Time, userID *uint) (int64, error) {
	var count int64
	query := config.DB.Model(&models.Booking{}).
		Where("created_at >= ? AND created_at < ?", start, end)
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}
	err := query.Count(&count).Error
	return count, err
}

// startCash returns the day's opening float, 0 when none was recorded.
func startCash(start, end time.Time) (float64, error) {
	var entry models.Start
	err := config.DB.Where("created_at >= ? AND created_at < ?", start, end).
		Order("created_at desc").First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	return entry.Price, err
}

// GetDashboard returns today's totals for the session user; admins also get
// the all-workers figures. Each metric is an independent query; they run
// concurrently and are combined before responding.
func GetDashboard(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}
	isAdmin := sessionIsAdmin(c)

	start, end := utils.DayRange(time.Now())

	var userBookings, userProducts, cash float64
	var allBookings, allProducts float64
	var userBookingCount, allBookingCount int64

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	run := func(fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}()
	}

	run(func() (err error) { userBookings, err = sumBookings(start, end, &userID); return })
	run(func() (err error) { userProducts, err = sumProducts(start, end, &userID); return })
	run(func() (err error) { userBookingCount, err = countBookings(start, end, &userID); return })
	run(func() (err error) { cash, err = startCash(start, end); return })
	if isAdmin {
		run(func() (err error) { allBookings, err = sumBookings(start, end, nil); return })
		run(func() (err error) { allProducts, err = sumProducts(start, end, nil); return })
		run(func() (err error) { allBookingCount, err = countBookings(start, end, nil); return })
	}
	wg.Wait()

	if firstErr != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load dashboard data")
		return
	}

	response := gin.H{
		"userBookings":     userBookings,
		"userProducts":     userProducts,
		"userBookingCount": userBookingCount,
		"startCash":        cash,
		"isAdmin":          isAdmin,
	}
	if isAdmin {
		response["allBookings"] = allBookings
		response["allProducts"] = allProducts
		response["allBookingCount"] = allBookingCount
	}

	c.JSON(http.StatusOK, response)
}
