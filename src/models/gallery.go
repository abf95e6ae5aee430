package models

import "crb/src/types"

type GalleryImage struct {
	ID          uint                  `gorm:"primarykey" json:"id"`
	Title       string                `json:"title,omitempty"`
	ImageURL    string                `json:"image_url,omitempty"`
	Description string                `json:"description,omitempty"`
	Category    types.GalleryCategory `gorm:"default:'resort'" json:"category,omitempty"`
	IsActive    bool                  `gorm:"default:true" json:"is_active"`
	Order       int                   `gorm:"column:display_order" json:"order"`

	types.Timestamps
}
