package services

import (
	"fmt"
	"time"

	"hotel-pms-backend/models"

	"gorm.io/gorm"
)

// AvailabilityService answers "which rooms of this type are free". Date
// ranges are half-open [checkIn, checkOut): a checkout on day X and a new
// check-in on day X never conflict.
type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// FindAvailableRooms returns the rooms of the given type whose current
// status is available and that carry no pending/confirmed/checked-in
// booking overlapping the requested range. Ordered by room id so repeated
// calls against the same state pick the same room. An empty result is not
// an error; an unknown room type is.
func (s *AvailabilityService) FindAvailableRooms(roomTypeID uint, checkIn, checkOut time.Time) ([]models.Room, error) {
	return findAvailableRooms(s.DB, roomTypeID, checkIn, checkOut)
}

// findAvailableRooms is the tx-scoped worker so booking creation can run
// the same query inside its transaction.
func findAvailableRooms(db *gorm.DB, roomTypeID uint, checkIn, checkOut time.Time) ([]models.Room, error) {
	if err := ensureRoomTypeExists(db, roomTypeID); err != nil {
		return nil, err
	}

	blocked := db.Model(&models.Booking{}).
		Select("room_id").
		Where("status IN ?", models.BlockingStatuses).
		Where("check_in < ? AND check_out > ?", checkOut, checkIn)

	var rooms []models.Room
	if err := db.
		Where("room_type_id = ? AND status = ?", roomTypeID, models.RoomAvailable).
		Where("id NOT IN (?)", blocked).
		Order("id").
		Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to query available rooms: %w", err)
	}
	return rooms, nil
}

// FindUnassignedRooms lists the available rooms of a type not currently
// held as any checked-in booking's physical room. Used at check-in time;
// dates are not considered.
func (s *AvailabilityService) FindUnassignedRooms(roomTypeID uint) ([]models.Room, error) {
	if err := ensureRoomTypeExists(s.DB, roomTypeID); err != nil {
		return nil, err
	}

	assigned := s.DB.Model(&models.Booking{}).
		Select("assigned_room_id").
		Where("assigned_room_id IS NOT NULL").
		Where("status = ?", models.BookingCheckedIn)

	var rooms []models.Room
	if err := s.DB.
		Where("room_type_id = ? AND status = ?", roomTypeID, models.RoomAvailable).
		Where("id NOT IN (?)", assigned).
		Order("id").
		Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to query unassigned rooms: %w", err)
	}
	return rooms, nil
}

func ensureRoomTypeExists(db *gorm.DB, roomTypeID uint) error {
	var count int64
	if err := db.Model(&models.RoomType{}).Where("id = ?", roomTypeID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check room type %d: %w", roomTypeID, err)
	}
	if count == 0 {
		return notFoundf("room type %d", roomTypeID)
	}
	return nil
}
