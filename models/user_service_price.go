package models

// UserServicePrice is the price a specific worker charges for a specific
// service. One row per (user, service) pair, maintained by upsert. Removing a
// service from a worker sets Enabled to false instead of deleting the row, so
// bookings made while the service was active stay editable.
type UserServicePrice struct {
	UserID    uint    `gorm:"primaryKey;autoIncrement:false" json:"userId"`
	ServiceID uint    `gorm:"primaryKey;autoIncrement:false" json:"serviceId"`
	Price     float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	Enabled   bool    `gorm:"not null;default:true" json:"enabled"`

	Service Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}
