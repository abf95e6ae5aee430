package models

import "crb/src/types"

type Room struct {
	ID                  uint             `gorm:"primarykey" json:"id"`
	Name                string           `json:"name,omitempty"`
	Slug                string           `gorm:"index" json:"slug,omitempty"`
	Description         string           `json:"description,omitempty"`
	DetailedDescription string           `json:"detailed_description,omitempty"`
	Price               int64            `json:"price"`
	Image               string           `json:"image,omitempty"`
	Images              types.JSONBArray `gorm:"type:jsonb" json:"images,omitempty"`
	Size                string           `json:"size,omitempty"`
	Capacity            uint             `json:"capacity,omitempty"`
	Amenities           types.JSONBArray `gorm:"type:jsonb" json:"amenities,omitempty"`
	Features            types.JSONBArray `gorm:"type:jsonb" json:"features,omitempty"`
	RoomType            types.RoomType   `gorm:"default:'standard'" json:"room_type,omitempty"`
	View                types.RoomView   `gorm:"default:'garden'" json:"view,omitempty"`
	IsAvailable         bool             `gorm:"default:true" json:"is_available"`

	// Bookings are intentionally not a cascade target: removing a room leaves
	// its booking history in place.
	Bookings []Booking `gorm:"foreignKey:room_id" json:"bookings,omitempty"`

	types.Timestamps
}
