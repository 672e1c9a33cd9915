package models

import (
	"time"
)

const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"
)

const (
	PaymentDownpayment = "downpayment"
	PaymentRemaining   = "remaining"
	PaymentAdditional  = "additional"
)

func IsValidPaymentStatus(s string) bool {
	return s == PaymentPending || s == PaymentPaid || s == PaymentFailed
}

func IsValidPaymentCategory(c string) bool {
	return c == PaymentDownpayment || c == PaymentRemaining || c == PaymentAdditional
}

// Payment is an append-only ledger entry. Amount and category are fixed at
// creation; only the status may advance afterwards.
type Payment struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	BookingID string `gorm:"column:booking_id;size:20;index" json:"bookingId"`

	Amount   float64 `gorm:"column:amount" json:"amount"`
	Category string  `gorm:"column:category;size:20;default:additional" json:"category"`
	Status   string  `gorm:"column:status;size:20;default:pending" json:"status"`

	Description string `gorm:"type:text" json:"description,omitempty"`

	// ReceiptURL is an opaque file-store reference (payment screenshot);
	// TransactionRef is the guest's external payment reference.
	ReceiptURL     string `gorm:"column:receipt_url;size:255" json:"receiptUrl,omitempty"`
	TransactionRef string `gorm:"column:transaction_ref;size:100" json:"transactionRef,omitempty"`

	PaidAt *time.Time `gorm:"column:paid_at" json:"paidAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
