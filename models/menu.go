package models

import (
	"time"

	"gorm.io/gorm"
)

type Menu struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name     string  `gorm:"column:name;size:100;uniqueIndex" json:"name"`
	Category string  `gorm:"column:category;size:50" json:"category"`
	Price    float64 `gorm:"column:price" json:"price"`

	Stock             int  `gorm:"column:stock;default:0" json:"stock"`
	LowStockThreshold int  `gorm:"column:low_stock_threshold;default:5" json:"lowStockThreshold"`
	IsAvailable       bool `gorm:"column:is_available;default:true" json:"isAvailable"`

	ImageURL string `gorm:"column:image_url;size:255" json:"imageUrl,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// LowStock reports whether the item is at or below its alert threshold.
func (m Menu) LowStock() bool {
	return m.Stock <= m.LowStockThreshold
}
