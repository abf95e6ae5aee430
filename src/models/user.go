package models

import "crb/src/types"

type User struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	Username string `gorm:"uniqueIndex" json:"username,omitempty"`
	Email    string `gorm:"uniqueIndex" json:"email,omitempty"`
	Password string `json:"-"`
	IsAdmin  bool   `json:"is_admin"`

	Bookings []Booking `gorm:"foreignKey:user_id" json:"bookings,omitempty"`

	types.Timestamps
}
