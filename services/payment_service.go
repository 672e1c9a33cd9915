package services

import (
	"errors"
	"fmt"
	"time"

	"hotel-pms-backend/models"

	"gorm.io/gorm"
)

// PaymentService is the append-only money ledger. Entries are never edited
// after creation except to advance their status.
type PaymentService struct {
	DB *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{DB: db}
}

type RecordPaymentInput struct {
	BookingID      string
	Amount         float64
	Category       string
	Status         string
	Description    string
	ReceiptURL     string
	TransactionRef string
}

// Record appends a ledger entry for an existing booking.
func (s *PaymentService) Record(in RecordPaymentInput) (*models.Payment, error) {
	if !models.IsValidPaymentCategory(in.Category) {
		return nil, validationf("unknown payment category %q", in.Category)
	}
	if in.Status == "" {
		in.Status = models.PaymentPending
	}
	if !models.IsValidPaymentStatus(in.Status) {
		return nil, validationf("unknown payment status %q", in.Status)
	}
	if in.Amount <= 0 {
		return nil, validationf("payment amount must be positive")
	}

	if err := ensureBookingExists(s.DB, in.BookingID); err != nil {
		return nil, err
	}

	payment := models.Payment{
		BookingID:      in.BookingID,
		Amount:         in.Amount,
		Category:       in.Category,
		Status:         in.Status,
		Description:    in.Description,
		ReceiptURL:     in.ReceiptURL,
		TransactionRef: in.TransactionRef,
	}
	if in.Status == models.PaymentPaid {
		now := time.Now()
		payment.PaidAt = &now
	}

	if err := s.DB.Create(&payment).Error; err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}
	return &payment, nil
}

// AdvanceStatus moves a payment's status forward (pending -> paid/failed).
// Amount and category are immutable; this is the only mutation surface.
func (s *PaymentService) AdvanceStatus(paymentID uint, status string) (*models.Payment, error) {
	if !models.IsValidPaymentStatus(status) {
		return nil, validationf("unknown payment status %q", status)
	}

	var payment models.Payment
	if err := s.DB.First(&payment, paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("payment %d", paymentID)
		}
		return nil, fmt.Errorf("failed to load payment %d: %w", paymentID, err)
	}
	if payment.Status != models.PaymentPending {
		return nil, conflictf("payment %d is already %s", paymentID, payment.Status)
	}

	updates := map[string]interface{}{"status": status}
	if status == models.PaymentPaid {
		updates["paid_at"] = time.Now()
	}
	if err := s.DB.Model(&payment).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update payment %d: %w", paymentID, err)
	}
	return &payment, nil
}

func (s *PaymentService) ListForBooking(bookingID string) ([]models.Payment, error) {
	if err := ensureBookingExists(s.DB, bookingID); err != nil {
		return nil, err
	}
	var payments []models.Payment
	if err := s.DB.Where("booking_id = ?", bookingID).Order("created_at").Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to list payments for %s: %w", bookingID, err)
	}
	return payments, nil
}

// DownpaymentTotal sums paid and pending downpayments: money collected,
// regardless of verification state.
func (s *PaymentService) DownpaymentTotal(bookingID string) (float64, error) {
	if err := ensureBookingExists(s.DB, bookingID); err != nil {
		return 0, err
	}
	var total float64
	err := s.DB.Model(&models.Payment{}).
		Where("booking_id = ? AND category = ? AND status IN ?",
			bookingID, models.PaymentDownpayment,
			[]string{models.PaymentPaid, models.PaymentPending}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum downpayments for %s: %w", bookingID, err)
	}
	return total, nil
}

// RemainingBalance reports total price minus collected downpayments.
// Once the booking is checked in (or out) and a remaining payment is
// settled, it reports zero regardless of the arithmetic: the front desk
// treats a settled stay as fully paid.
func (s *PaymentService) RemainingBalance(bookingID string) (float64, error) {
	var booking models.Booking
	if err := s.DB.First(&booking, "id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, notFoundf("booking %s", bookingID)
		}
		return 0, fmt.Errorf("failed to load booking %s: %w", bookingID, err)
	}

	if booking.Status == models.BookingCheckedIn || booking.Status == models.BookingCheckedOut {
		var paidRemaining int64
		err := s.DB.Model(&models.Payment{}).
			Where("booking_id = ? AND category = ? AND status = ?",
				bookingID, models.PaymentRemaining, models.PaymentPaid).
			Count(&paidRemaining).Error
		if err != nil {
			return 0, fmt.Errorf("failed to check remaining payments for %s: %w", bookingID, err)
		}
		if paidRemaining > 0 {
			return 0, nil
		}
	}

	down, err := s.DownpaymentTotal(bookingID)
	if err != nil {
		return 0, err
	}
	return booking.TotalPrice - down, nil
}

func ensureBookingExists(db *gorm.DB, bookingID string) error {
	var count int64
	if err := db.Model(&models.Booking{}).Where("id = ?", bookingID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check booking %s: %w", bookingID, err)
	}
	if count == 0 {
		return notFoundf("booking %s", bookingID)
	}
	return nil
}
