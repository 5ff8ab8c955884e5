package models

import "time"

// Booking is one performed and paid service. Price is captured at creation
// time and never re-derived from the worker's current price list.
type Booking struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	ServiceID uint      `gorm:"index;not null" json:"serviceId"`
	Price     float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt time.Time `json:"createdAt"`

	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Service Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}
