package models

import (
	"gorm.io/gorm"
)

// Room statuses. Booking transitions flip available -> occupied -> dirty;
// the rest are housekeeping / maintenance states set through the rooms API.
const (
	RoomAvailable    = "available"
	RoomOccupied     = "occupied"
	RoomDirty        = "dirty"
	RoomCleaning     = "cleaning"
	RoomMaintenance  = "maintenance"
	RoomOutOfService = "out_of_service"
)

var RoomStatuses = []string{
	RoomAvailable,
	RoomOccupied,
	RoomDirty,
	RoomCleaning,
	RoomMaintenance,
	RoomOutOfService,
}

func IsValidRoomStatus(status string) bool {
	for _, s := range RoomStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Room struct {
	gorm.Model

	RoomNumber string `json:"roomNumber" gorm:"column:room_number;uniqueIndex;type:varchar(20)"`
	Floor      int    `json:"floor" gorm:"column:floor;default:1"`
	Status     string `json:"status" gorm:"column:status;size:30;default:available"`

	RoomTypeID uint     `json:"roomTypeId" gorm:"column:room_type_id;index"`
	RoomType   RoomType `json:"roomType,omitempty" gorm:"foreignKey:RoomTypeID"`
}
