package services

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"hotel-pms-backend/models"

	"gorm.io/gorm"
)

// The lifecycle transition table. Any (from, event) pair not listed here
// is rejected with ErrConflict; side effects live in the transition
// methods below.
var bookingTransitions = map[string]map[string]string{
	"approve":   {models.BookingPending: models.BookingConfirmed},
	"reject":    {models.BookingPending: models.BookingRejected},
	"check_in":  {models.BookingConfirmed: models.BookingCheckedIn},
	"check_out": {models.BookingCheckedIn: models.BookingCheckedOut},
	"cancel": {
		models.BookingPending:   models.BookingCancelled,
		models.BookingConfirmed: models.BookingCancelled,
		models.BookingCheckedIn: models.BookingCancelled,
	},
}

func nextStatus(event, from string) (string, error) {
	to, ok := bookingTransitions[event][from]
	if !ok {
		return "", conflictf("cannot %s a booking in status %q", event, from)
	}
	return to, nil
}

// BookingService drives the reservation lifecycle. Every transition runs
// inside one transaction; guest notifications go out after commit and
// never roll a transition back.
type BookingService struct {
	DB       *gorm.DB
	Notifier Notifier

	// Now is injectable for tests; ID dates and past-date validation use it.
	Now func() time.Time
}

func NewBookingService(db *gorm.DB, notifier Notifier) *BookingService {
	return &BookingService{DB: db, Notifier: notifier, Now: time.Now}
}

func (s *BookingService) today() time.Time {
	now := s.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// ---------------------------
// Creation
// ---------------------------

type CreateBookingInput struct {
	GuestName     string
	Email         string
	ContactNumber string
	RoomTypeID    uint
	CheckIn       time.Time
	CheckOut      time.Time
	Adults        int
	Children      int
	ExtraChildren int
	Notes         string

	// Downpayment evidence submitted with the web form.
	TransactionRef string
	ReceiptURL     string
}

// DownpaymentRate is the share of the total collected at creation.
const DownpaymentRate = 0.20

// CreateBooking picks a free room of the requested type, allocates the
// booking code, prices the stay and records the pending downpayment, all
// in one transaction. The booking-received mail is sent after commit.
func (s *BookingService) CreateBooking(in CreateBookingInput) (*models.Booking, error) {
	in.GuestName = strings.TrimSpace(in.GuestName)
	in.Email = strings.TrimSpace(in.Email)

	if in.GuestName == "" {
		return nil, validationf("guest name is required")
	}
	if in.Email == "" {
		return nil, validationf("guest email is required")
	}
	if in.Adults < 1 {
		return nil, validationf("at least one adult is required")
	}
	if in.Children < 0 || in.ExtraChildren < 0 {
		return nil, validationf("guest counts cannot be negative")
	}

	checkIn := dateOnly(in.CheckIn)
	checkOut := dateOnly(in.CheckOut)
	if !checkOut.After(checkIn) {
		return nil, validationf("check-out date must be after check-in date")
	}
	if checkIn.Before(s.today()) {
		return nil, validationf("cannot book dates in the past")
	}

	var booking models.Booking
	var roomTypeName string
	var downpayment float64

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		rooms, err := findAvailableRooms(tx, in.RoomTypeID, checkIn, checkOut)
		if err != nil {
			return err
		}
		if len(rooms) == 0 {
			return validationf("no rooms of this type are available for the selected dates")
		}
		room := rooms[0]

		var roomType models.RoomType
		if err := tx.First(&roomType, in.RoomTypeID).Error; err != nil {
			return fmt.Errorf("failed to load room type %d: %w", in.RoomTypeID, err)
		}
		roomTypeName = roomType.Name

		nights := int(checkOut.Sub(checkIn).Hours() / 24)
		total := totalPrice(roomType, nights, in.Adults, in.Children)

		id, err := allocateBookingID(tx, s.Now())
		if err != nil {
			return err
		}

		booking = models.Booking{
			ID:            id,
			GuestName:     in.GuestName,
			Email:         in.Email,
			ContactNumber: in.ContactNumber,
			CheckIn:       checkIn,
			CheckOut:      checkOut,
			Adults:        in.Adults,
			Children:      in.Children,
			ExtraChildren: in.ExtraChildren,
			TotalPrice:    total,
			Notes:         in.Notes,
			Status:        models.BookingPending,
			RoomID:        room.ID,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		downpayment = total * DownpaymentRate
		payment := models.Payment{
			BookingID:      booking.ID,
			Amount:         downpayment,
			Category:       models.PaymentDownpayment,
			Status:         models.PaymentPending,
			Description:    fmt.Sprintf("20%% downpayment for %s (%s to %s)", roomType.Name, checkIn.Format("2006-01-02"), checkOut.Format("2006-01-02")),
			TransactionRef: in.TransactionRef,
			ReceiptURL:     in.ReceiptURL,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return fmt.Errorf("failed to create downpayment record: %w", err)
		}

		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.notify(NotifyBookingReceived, NotificationContext{
		Booking:     booking,
		RoomType:    roomTypeName,
		Downpayment: downpayment,
	})

	return s.GetBooking(booking.ID)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// totalPrice implements the flat per-night formula: base price plus
// extra-person fees for guests beyond the type's included counts.
func totalPrice(rt models.RoomType, nights, adults, children int) float64 {
	base := rt.Price * float64(nights)

	extraAdults := adults - rt.MaxAdults
	if extraAdults < 0 {
		extraAdults = 0
	}
	extraChildren := children - rt.MaxChildren
	if extraChildren < 0 {
		extraChildren = 0
	}

	extra := float64(extraAdults)*rt.ExtraAdultFee*float64(nights) +
		float64(extraChildren)*rt.ExtraChildFee*float64(nights)
	return base + extra
}

// allocateBookingID hands out "BKG-YYMMDD-NNNN" codes. A per-day counter
// row is advanced with an atomic UPDATE inside the caller's transaction,
// so concurrent creations on the same day cannot collide. The counter is
// seeded from the highest existing code for the day the first time the
// day is seen (covers rows that predate the counter table).
func allocateBookingID(tx *gorm.DB, now time.Time) (string, error) {
	day := now.Format("060102")

	bump := func() (int64, error) {
		res := tx.Model(&models.BookingSequence{}).
			Where("day = ?", day).
			Update("last_seq", gorm.Expr("last_seq + 1"))
		if res.Error != nil {
			return 0, fmt.Errorf("failed to advance booking sequence: %w", res.Error)
		}
		return res.RowsAffected, nil
	}

	affected, err := bump()
	if err != nil {
		return "", err
	}

	if affected == 0 {
		start, err := highestSequenceFor(tx, day)
		if err != nil {
			return "", err
		}
		seed := models.BookingSequence{Day: day, LastSeq: start + 1}
		if createErr := tx.Create(&seed).Error; createErr != nil {
			// A concurrent creator seeded the row first; fall back to
			// the atomic increment.
			if affected, err = bump(); err != nil {
				return "", err
			}
			if affected == 0 {
				return "", fmt.Errorf("failed to seed booking sequence for %s: %w", day, createErr)
			}
		}
	}

	var seq models.BookingSequence
	if err := tx.Where("day = ?", day).First(&seq).Error; err != nil {
		return "", fmt.Errorf("failed to read booking sequence: %w", err)
	}
	return fmt.Sprintf("BKG-%s-%04d", day, seq.LastSeq), nil
}

func highestSequenceFor(tx *gorm.DB, day string) (int, error) {
	var last models.Booking
	err := tx.Where("id LIKE ?", "BKG-"+day+"-%").Order("id DESC").First(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to find last booking for %s: %w", day, err)
	}

	parts := strings.Split(last.ID, "-")
	n, convErr := strconv.Atoi(parts[len(parts)-1])
	if convErr != nil {
		return 0, fmt.Errorf("malformed booking id %q: %w", last.ID, convErr)
	}
	return n, nil
}

// ---------------------------
// Staff transitions
// ---------------------------

// Approve confirms a pending booking and settles its downpayment.
func (s *BookingService) Approve(id string) (*models.Booking, error) {
	var booking models.Booking
	var roomTypeName string

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		b, err := loadBooking(tx, id)
		if err != nil {
			return err
		}
		to, err := nextStatus("approve", b.Status)
		if err != nil {
			return err
		}

		if err := tx.Model(&b).Update("status", to).Error; err != nil {
			return fmt.Errorf("failed to confirm booking %s: %w", id, err)
		}

		now := s.Now()
		if err := tx.Model(&models.Payment{}).
			Where("booking_id = ? AND category = ? AND status = ?", id, models.PaymentDownpayment, models.PaymentPending).
			Updates(map[string]interface{}{"status": models.PaymentPaid, "paid_at": now}).Error; err != nil {
			return fmt.Errorf("failed to settle downpayment for %s: %w", id, err)
		}

		booking = b
		booking.Status = to
		roomTypeName = b.Room.RoomType.Name
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.notify(NotifyBookingConfirmed, NotificationContext{Booking: booking, RoomType: roomTypeName})
	return s.GetBooking(id)
}

// Reject declines a pending booking; the reason goes to the guest.
func (s *BookingService) Reject(id, reason string) (*models.Booking, error) {
	var booking models.Booking

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		b, err := loadBooking(tx, id)
		if err != nil {
			return err
		}
		to, err := nextStatus("reject", b.Status)
		if err != nil {
			return err
		}
		if err := tx.Model(&b).Update("status", to).Error; err != nil {
			return fmt.Errorf("failed to reject booking %s: %w", id, err)
		}
		booking = b
		booking.Status = to
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.notify(NotifyBookingRejected, NotificationContext{Booking: booking, Reason: reason})
	return s.GetBooking(id)
}

// Cancel voids any non-terminal booking. No payment reversal is recorded;
// refunds are handled outside the system. Cancelling a checked-in booking
// releases its assigned room to housekeeping, the same way check-out does.
func (s *BookingService) Cancel(id string) (*models.Booking, error) {
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		b, err := loadBooking(tx, id)
		if err != nil {
			return err
		}
		to, err := nextStatus("cancel", b.Status)
		if err != nil {
			return err
		}

		if b.Status == models.BookingCheckedIn && b.AssignedRoomID != nil {
			res := tx.Model(&models.Room{}).
				Where("id = ? AND status = ?", *b.AssignedRoomID, models.RoomOccupied).
				Update("status", models.RoomDirty)
			if res.Error != nil {
				return fmt.Errorf("failed to release room for %s: %w", id, res.Error)
			}
		}

		return tx.Model(&b).Update("status", to).Error
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.GetBooking(id)
}

// CheckIn hands a physical room to a confirmed booking's guest and records
// the remaining balance as paid. The room flips to occupied; a room that
// is not currently available fails the whole check-in.
func (s *BookingService) CheckIn(id string, roomID uint, remainingAmount float64) (*models.Booking, error) {
	if remainingAmount < 0 {
		return nil, validationf("remaining amount cannot be negative")
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		b, err := loadBooking(tx, id)
		if err != nil {
			return err
		}
		to, err := nextStatus("check_in", b.Status)
		if err != nil {
			return err
		}

		var room models.Room
		if err := tx.First(&room, roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("room %d", roomID)
			}
			return fmt.Errorf("failed to load room %d: %w", roomID, err)
		}

		// Guarded flip: the status predicate makes the occupancy claim
		// atomic under concurrent check-ins.
		res := tx.Model(&models.Room{}).
			Where("id = ? AND status = ?", roomID, models.RoomAvailable).
			Update("status", models.RoomOccupied)
		if res.Error != nil {
			return fmt.Errorf("failed to occupy room %d: %w", roomID, res.Error)
		}
		if res.RowsAffected == 0 {
			return conflictf("room %s is not available (status %q)", room.RoomNumber, room.Status)
		}

		if err := tx.Model(&b).Updates(map[string]interface{}{
			"status":           to,
			"assigned_room_id": roomID,
		}).Error; err != nil {
			return fmt.Errorf("failed to check in booking %s: %w", id, err)
		}

		now := s.Now()
		payment := models.Payment{
			BookingID:   id,
			Amount:      remainingAmount,
			Category:    models.PaymentRemaining,
			Status:      models.PaymentPaid,
			Description: fmt.Sprintf("Remaining balance collected at check-in (room %s)", room.RoomNumber),
			PaidAt:      &now,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return fmt.Errorf("failed to record remaining balance for %s: %w", id, err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.GetBooking(id)
}

// CheckOut releases the assigned room (occupied -> dirty for housekeeping)
// and settles every accumulated additional fee as a paid ledger entry.
func (s *BookingService) CheckOut(id string) (*models.Booking, error) {
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		b, err := loadBooking(tx, id)
		if err != nil {
			return err
		}
		to, err := nextStatus("check_out", b.Status)
		if err != nil {
			return err
		}
		if b.AssignedRoomID == nil {
			return conflictf("booking %s has no assigned room", id)
		}

		res := tx.Model(&models.Room{}).
			Where("id = ? AND status = ?", *b.AssignedRoomID, models.RoomOccupied).
			Update("status", models.RoomDirty)
		if res.Error != nil {
			return fmt.Errorf("failed to release room for %s: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return conflictf("assigned room of booking %s is not occupied", id)
		}

		now := s.Now()
		for _, fee := range b.Fees {
			payment := models.Payment{
				BookingID:   id,
				Amount:      fee.Amount,
				Category:    models.PaymentAdditional,
				Status:      models.PaymentPaid,
				Description: fee.Name,
				PaidAt:      &now,
			}
			if err := tx.Create(&payment).Error; err != nil {
				return fmt.Errorf("failed to settle fee %q for %s: %w", fee.Name, id, err)
			}
		}

		if err := tx.Model(&b).Update("status", to).Error; err != nil {
			return fmt.Errorf("failed to check out booking %s: %w", id, err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.GetBooking(id)
}

// ---------------------------
// Reads
// ---------------------------

func (s *BookingService) GetBooking(id string) (*models.Booking, error) {
	var b models.Booking
	err := s.DB.
		Preload("Room.RoomType").
		Preload("AssignedRoom").
		Preload("Fees").
		Preload("Payments").
		First(&b, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("booking %s", id)
		}
		return nil, fmt.Errorf("failed to load booking %s: %w", id, err)
	}
	if b.Fees == nil {
		b.Fees = []models.BookingFee{}
	}
	return &b, nil
}

func (s *BookingService) ListBookings() ([]models.Booking, error) {
	var list []models.Booking
	err := s.DB.
		Preload("Room.RoomType").
		Preload("AssignedRoom").
		Preload("Fees").
		Preload("Payments").
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	for i := range list {
		if list[i].Fees == nil {
			list[i].Fees = []models.BookingFee{}
		}
	}
	return list, nil
}

func loadBooking(tx *gorm.DB, id string) (models.Booking, error) {
	var b models.Booking
	err := tx.Preload("Room.RoomType").Preload("Fees").First(&b, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return b, notFoundf("booking %s", id)
		}
		return b, fmt.Errorf("failed to load booking %s: %w", id, err)
	}
	return b, nil
}

func (s *BookingService) notify(kind string, ctx NotificationContext) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.Notify(ctx.Booking.Email, kind, ctx); err != nil {
		log.Printf("warning: %s notification for %s failed: %v", kind, ctx.Booking.ID, err)
	}
}
