package models

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
	Pin  string `gorm:"uniqueIndex;not null" json:"-"`
	Role string `gorm:"type:varchar(10);not null;default:'USER'" json:"role"`

	Prices []UserServicePrice `gorm:"foreignKey:UserID" json:"prices,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
