package models

import (
	"time"

	"gorm.io/gorm"
)

// Booking statuses. Pending, confirmed and checked_in block room
// availability; the remaining three are terminal and never do.
const (
	BookingPending    = "pending"
	BookingConfirmed  = "confirmed"
	BookingCheckedIn  = "checked_in"
	BookingCheckedOut = "checked_out"
	BookingCancelled  = "cancelled"
	BookingRejected   = "rejected"
)

// BlockingStatuses are the booking statuses that count against room
// availability for a date range.
var BlockingStatuses = []string{BookingPending, BookingConfirmed, BookingCheckedIn}

type Booking struct {
	// Human-readable code "BKG-YYMMDD-NNNN", allocated at creation and
	// never reused. The format is externally visible (emails, URLs).
	ID string `gorm:"primaryKey;size:20" json:"id"`

	GuestName     string `gorm:"column:guest_name;size:255" json:"guestName"`
	Email         string `gorm:"column:email;size:255" json:"email"`
	ContactNumber string `gorm:"column:contact_number;size:20" json:"contactNumber"`

	CheckIn  time.Time `gorm:"column:check_in" json:"checkIn"`
	CheckOut time.Time `gorm:"column:check_out" json:"checkOut"`

	Adults        int `gorm:"column:adults" json:"adults"`
	Children      int `gorm:"column:children;default:0" json:"children"`
	ExtraChildren int `gorm:"column:extra_children;default:0" json:"extraChildren"`

	TotalPrice float64 `gorm:"column:total_price" json:"totalPrice"`
	Notes      string  `gorm:"type:text" json:"notes,omitempty"`
	Status     string  `gorm:"column:status;size:20;index;default:pending" json:"status"`

	// RoomID is the room reserved at creation for availability accounting.
	// AssignedRoomID is the physical room handed over at check-in.
	RoomID         uint  `gorm:"column:room_id;index" json:"roomId"`
	AssignedRoomID *uint `gorm:"column:assigned_room_id" json:"assignedRoomId,omitempty"`

	Room         Room  `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	AssignedRoom *Room `gorm:"foreignKey:AssignedRoomID" json:"assignedRoom,omitempty"`

	Fees     []BookingFee `gorm:"foreignKey:BookingID" json:"additionalFees"`
	Payments []Payment    `gorm:"foreignKey:BookingID" json:"payments,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Nights is the stay length in whole days.
func (b Booking) Nights() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}

// IsTerminal reports whether no further lifecycle transition is allowed.
func (b Booking) IsTerminal() bool {
	switch b.Status {
	case BookingCheckedOut, BookingCancelled, BookingRejected:
		return true
	}
	return false
}

// BookingFee is one ad-hoc charge accumulated against a booking (room
// service orders, mostly). Rows are append-only; they are settled as
// "additional" payments at check-out.
type BookingFee struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BookingID string    `gorm:"column:booking_id;size:20;index" json:"bookingId"`
	Name      string    `gorm:"column:name;size:255" json:"name"`
	Amount    float64   `gorm:"column:amount" json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
}

// BookingSequence is the per-day counter backing booking ID allocation.
// last_seq is advanced with an atomic UPDATE inside the creation
// transaction so concurrent creations on the same day never collide.
type BookingSequence struct {
	Day     string `gorm:"primaryKey;size:6"`
	LastSeq int    `gorm:"column:last_seq"`
}
