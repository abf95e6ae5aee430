package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type Timestamps struct {
	CreatedAt time.Time `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
}

type JSONB map[string]any
type JSONBArray []any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

func (a JSONBArray) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONBArray) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type BookingStatus string

const (
	BOOKING_PENDING   BookingStatus = "pending"
	BOOKING_CONFIRMED BookingStatus = "confirmed"
	BOOKING_CANCELLED BookingStatus = "cancelled"
	BOOKING_COMPLETED BookingStatus = "completed"
)

// BlockingStatuses are the statuses that occupy a room's dates. Cancelled and
// completed bookings never block new reservations.
var BlockingStatuses = []BookingStatus{BOOKING_PENDING, BOOKING_CONFIRMED}

func (s BookingStatus) Valid() bool {
	switch s {
	case BOOKING_PENDING, BOOKING_CONFIRMED, BOOKING_CANCELLED, BOOKING_COMPLETED:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed out of s.
func (s BookingStatus) Terminal() bool {
	return s == BOOKING_CANCELLED || s == BOOKING_COMPLETED
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if !next.Valid() || s.Terminal() || s == next {
		return false
	}
	switch s {
	case BOOKING_PENDING:
		return next == BOOKING_CONFIRMED || next == BOOKING_CANCELLED
	case BOOKING_CONFIRMED:
		return next == BOOKING_CANCELLED || next == BOOKING_COMPLETED
	}
	return false
}

type RoomType string

const (
	ROOM_STANDARD RoomType = "standard"
	ROOM_DELUXE   RoomType = "deluxe"
	ROOM_SUITE    RoomType = "suite"
	ROOM_VILLA    RoomType = "villa"
)

type RoomView string

const (
	VIEW_GARDEN   RoomView = "garden"
	VIEW_OCEAN    RoomView = "ocean"
	VIEW_MOUNTAIN RoomView = "mountain"
	VIEW_CITY     RoomView = "city"
)

type GalleryCategory string

const (
	GALLERY_RESORT   GalleryCategory = "resort"
	GALLERY_ROOM     GalleryCategory = "room"
	GALLERY_FACILITY GalleryCategory = "facility"
	GALLERY_VIEW     GalleryCategory = "view"
)

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type RegisterRequestBody struct {
	Username string `json:"username" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequestBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequestBody struct {
	Username string `json:"username,omitempty" binding:"omitempty,min=3"`
	Email    string `json:"email,omitempty" binding:"omitempty,email"`
}

type ChangePasswordRequestBody struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

type ForgotPasswordRequestBody struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequestBody struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

type CreateBookingRequestBody struct {
	RoomID          uint   `json:"roomId" binding:"required"`
	CheckIn         string `json:"checkIn" binding:"required,bookabledate"`
	CheckOut        string `json:"checkOut" binding:"required,gtdate=CheckIn"`
	Guests          uint   `json:"guests" binding:"required,min=1"`
	GuestName       string `json:"guestName" binding:"required"`
	GuestEmail      string `json:"guestEmail" binding:"required,email"`
	GuestPhone      string `json:"guestPhone,omitempty"`
	SpecialRequests string `json:"specialRequests,omitempty"`
}

// UpdateBookingRequestBody carries the same fields as create except the room,
// which is fixed for the lifetime of a booking.
type UpdateBookingRequestBody struct {
	CheckIn         string `json:"checkIn" binding:"required,bookabledate"`
	CheckOut        string `json:"checkOut" binding:"required,gtdate=CheckIn"`
	Guests          uint   `json:"guests" binding:"required,min=1"`
	GuestName       string `json:"guestName" binding:"required"`
	GuestEmail      string `json:"guestEmail" binding:"required,email"`
	GuestPhone      string `json:"guestPhone,omitempty"`
	SpecialRequests string `json:"specialRequests,omitempty"`
}

type AdminUpdateBookingRequestBody struct {
	Status          string `json:"status,omitempty"`
	CheckIn         string `json:"checkIn,omitempty"`
	CheckOut        string `json:"checkOut,omitempty"`
	Guests          uint   `json:"guests,omitempty" binding:"omitempty,min=1"`
	GuestName       string `json:"guestName,omitempty"`
	GuestEmail      string `json:"guestEmail,omitempty" binding:"omitempty,email"`
	GuestPhone      string `json:"guestPhone,omitempty"`
	SpecialRequests string `json:"specialRequests,omitempty"`
}

type CreateRoomRequestBody struct {
	Name                string   `json:"name" binding:"required"`
	Description         string   `json:"description" binding:"required"`
	DetailedDescription string   `json:"detailedDescription,omitempty"`
	Price               int64    `json:"price" binding:"min=0"`
	Image               string   `json:"image" binding:"required"`
	Images              []string `json:"images,omitempty"`
	Size                string   `json:"size" binding:"required"`
	Capacity            uint     `json:"capacity" binding:"required,min=1"`
	Amenities           []string `json:"amenities,omitempty"`
	Features            []string `json:"features,omitempty"`
	RoomType            RoomType `json:"roomType,omitempty"`
	View                RoomView `json:"view,omitempty"`
	IsAvailable         *bool    `json:"isAvailable,omitempty"`
}

type UpdateRoomRequestBody struct {
	Name                string   `json:"name,omitempty"`
	Description         string   `json:"description,omitempty"`
	DetailedDescription string   `json:"detailedDescription,omitempty"`
	Price               *int64   `json:"price,omitempty" binding:"omitempty,min=0"`
	Image               string   `json:"image,omitempty"`
	Images              []string `json:"images,omitempty"`
	Size                string   `json:"size,omitempty"`
	Capacity            uint     `json:"capacity,omitempty" binding:"omitempty,min=1"`
	Amenities           []string `json:"amenities,omitempty"`
	Features            []string `json:"features,omitempty"`
	RoomType            RoomType `json:"roomType,omitempty"`
	View                RoomView `json:"view,omitempty"`
	IsAvailable         *bool    `json:"isAvailable,omitempty"`
}

// RoomBookingWindow is the public calendar feed shape: just enough for a
// client to mark days unavailable, nothing about who booked.
type RoomBookingWindow struct {
	CheckIn  time.Time     `json:"checkIn"`
	CheckOut time.Time     `json:"checkOut"`
	Status   BookingStatus `json:"status"`
}
