package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RoomType struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string  `gorm:"column:name;size:100;uniqueIndex" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"column:price" json:"price"`

	MaxAdults   int `gorm:"column:max_adults;default:2" json:"maxAdults"`
	MaxChildren int `gorm:"column:max_children;default:0" json:"maxChildren"`

	ExtraAdultFee float64 `gorm:"column:extra_adult_fee;default:0" json:"extraAdultFee"`
	ExtraChildFee float64 `gorm:"column:extra_child_fee;default:0" json:"extraChildFee"`

	// Opaque file-store reference; the backend never interprets the bytes.
	ImageURL  string         `gorm:"column:image_url;size:255" json:"imageUrl,omitempty"`
	Amenities datatypes.JSON `gorm:"column:amenities" json:"amenities,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
