package models

import (
	"time"
)

const (
	OrderDineIn      = "dine_in"
	OrderRoomService = "room_service"
)

const (
	OrderPending   = "pending"
	OrderPreparing = "preparing"
	OrderServed    = "served"
	OrderCancelled = "cancelled"
)

func IsValidOrderType(t string) bool {
	return t == OrderDineIn || t == OrderRoomService
}

type Order struct {
	ID uint `gorm:"primaryKey" json:"id"`

	OrderType string `gorm:"column:order_type;size:20" json:"orderType"`
	Status    string `gorm:"column:status;size:20;default:pending" json:"status"`

	// Room-service orders must reference the booking they bill to.
	BookingID *string `gorm:"column:booking_id;size:20;index" json:"bookingId,omitempty"`

	// Derived sum of the items' subtotals, never edited independently.
	TotalAmount float64 `gorm:"column:total_amount" json:"totalAmount"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OrderItem snapshots the menu item's name and price at order time so
// later menu edits never alter historical orders.
type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"column:order_id;index" json:"orderId"`
	MenuID  uint `gorm:"column:menu_id" json:"menuId"`

	MenuName string  `gorm:"column:menu_name;size:100" json:"menuName"`
	Price    float64 `gorm:"column:price" json:"price"`
	Quantity int     `gorm:"column:quantity" json:"quantity"`
	Subtotal float64 `gorm:"column:subtotal" json:"subtotal"`

	CreatedAt time.Time `json:"createdAt"`
}
