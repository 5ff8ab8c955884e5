package models

import (
	"time"

	"gorm.io/gorm"

	"oldroad-backend/utils"
)

// Start is the opening cash float ("startowy hajs") for one business day.
// Day holds the Warsaw calendar day derived from CreatedAt; its unique index
// guarantees at most one entry per day even under concurrent submissions.
type Start struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Price     float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt time.Time `json:"createdAt"`
	Day       string    `gorm:"uniqueIndex;not null" json:"-"`
}

func (s *Start) BeforeSave(tx *gorm.DB) (err error) {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	s.Day = utils.DayKey(s.CreatedAt)
	return
}
