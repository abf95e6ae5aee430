package models

import (
	"crb/src/types"
	"time"
)

type Booking struct {
	ID              uint                `gorm:"primarykey" json:"id"`
	UserID          uint                `gorm:"index" json:"user_id,omitempty"`
	RoomID          uint                `gorm:"index" json:"room_id,omitempty"`
	CheckIn         time.Time           `json:"check_in"`
	CheckOut        time.Time           `json:"check_out"`
	Guests          uint                `json:"guests,omitempty"`
	GuestName       string              `json:"guest_name,omitempty"`
	GuestEmail      string              `json:"guest_email,omitempty"`
	GuestPhone      string              `json:"guest_phone,omitempty"`
	SpecialRequests string              `json:"special_requests,omitempty"`
	Status          types.BookingStatus `gorm:"default:'pending'" json:"status,omitempty"`
	TotalPrice      int64               `json:"total_price"`

	Room *Room `gorm:"foreignKey:room_id" json:"room,omitempty"`
	User *User `gorm:"foreignKey:user_id" json:"user,omitempty"`

	types.Timestamps
}
