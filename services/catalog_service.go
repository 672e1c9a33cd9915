package services

import (
	"errors"
	"fmt"
	"strings"

	"hotel-pms-backend/models"

	"gorm.io/gorm"
)

// CatalogService covers the read-mostly room-type / room reference data.
// Room status mutation is exposed here for housekeeping; booking-driven
// status flips go through BookingService transitions only.
type CatalogService struct {
	DB *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

// ---------------------------
// Room types
// ---------------------------

func (s *CatalogService) CreateRoomType(rt *models.RoomType) error {
	rt.Name = strings.TrimSpace(rt.Name)
	if rt.Name == "" {
		return validationf("room type name is required")
	}
	if rt.Price <= 0 {
		return validationf("room type price must be positive")
	}
	if err := s.DB.Create(rt).Error; err != nil {
		return fmt.Errorf("failed to create room type: %w", err)
	}
	return nil
}

func (s *CatalogService) GetRoomTypes() ([]models.RoomType, error) {
	var types []models.RoomType
	if err := s.DB.Order("id").Find(&types).Error; err != nil {
		return nil, fmt.Errorf("failed to list room types: %w", err)
	}
	return types, nil
}

func (s *CatalogService) GetRoomType(id uint) (models.RoomType, error) {
	var rt models.RoomType
	if err := s.DB.First(&rt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return rt, notFoundf("room type %d", id)
		}
		return rt, fmt.Errorf("failed to load room type %d: %w", id, err)
	}
	return rt, nil
}

// UpdateRoomType applies a partial staff edit. Identity and bookkeeping
// columns are stripped so a stray payload cannot rewrite them.
func (s *CatalogService) UpdateRoomType(id uint, fields map[string]interface{}) error {
	delete(fields, "id")
	delete(fields, "created_at")
	delete(fields, "updated_at")
	delete(fields, "deleted_at")

	if p, ok := fields["price"]; ok {
		if v, ok2 := p.(float64); ok2 && v <= 0 {
			return validationf("room type price must be positive")
		}
	}

	res := s.DB.Model(&models.RoomType{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("failed to update room type %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFoundf("room type %d", id)
	}
	return nil
}

// DeleteRoomType refuses to delete a type that still has rooms.
func (s *CatalogService) DeleteRoomType(id uint) error {
	var roomCount int64
	if err := s.DB.Model(&models.Room{}).Where("room_type_id = ?", id).Count(&roomCount).Error; err != nil {
		return fmt.Errorf("failed to count rooms for type %d: %w", id, err)
	}
	if roomCount > 0 {
		return conflictf("room type %d still has %d rooms", id, roomCount)
	}

	res := s.DB.Delete(&models.RoomType{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete room type %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFoundf("room type %d", id)
	}
	return nil
}

// ---------------------------
// Rooms
// ---------------------------

func (s *CatalogService) CreateRoom(room *models.Room) error {
	room.RoomNumber = strings.TrimSpace(room.RoomNumber)
	if room.RoomNumber == "" {
		return validationf("room number is required")
	}
	if room.Status == "" {
		room.Status = models.RoomAvailable
	}
	if !models.IsValidRoomStatus(room.Status) {
		return validationf("unknown room status %q", room.Status)
	}

	if _, err := s.GetRoomType(room.RoomTypeID); err != nil {
		return err
	}

	if err := s.DB.Create(room).Error; err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}
	return nil
}

// RoomFilter narrows ListRooms; zero values mean "no filter".
type RoomFilter struct {
	RoomTypeID uint
	Status     string
	Floor      int
}

func (s *CatalogService) ListRooms(f RoomFilter) ([]models.Room, error) {
	q := s.DB.Preload("RoomType").Order("floor, room_number")
	if f.RoomTypeID != 0 {
		q = q.Where("room_type_id = ?", f.RoomTypeID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Floor != 0 {
		q = q.Where("floor = ?", f.Floor)
	}

	var rooms []models.Room
	if err := q.Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

func (s *CatalogService) GetRoom(id uint) (models.Room, error) {
	var room models.Room
	if err := s.DB.Preload("RoomType").First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return room, notFoundf("room %d", id)
		}
		return room, fmt.Errorf("failed to load room %d: %w", id, err)
	}
	return room, nil
}

// SetRoomStatus is the housekeeping/maintenance surface. It will not touch
// an occupied room; only check-out may release one.
func (s *CatalogService) SetRoomStatus(id uint, status string) error {
	if !models.IsValidRoomStatus(status) {
		return validationf("unknown room status %q", status)
	}

	room, err := s.GetRoom(id)
	if err != nil {
		return err
	}
	if room.Status == models.RoomOccupied && status != models.RoomOccupied {
		return conflictf("room %s is occupied; check the booking out first", room.RoomNumber)
	}

	if err := s.DB.Model(&models.Room{}).Where("id = ?", id).
		Update("status", status).Error; err != nil {
		return fmt.Errorf("failed to update room %d status: %w", id, err)
	}
	return nil
}

func (s *CatalogService) DeleteRoom(id uint) error {
	res := s.DB.Delete(&models.Room{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete room %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFoundf("room %d", id)
	}
	return nil
}
