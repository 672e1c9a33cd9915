package services

import (
	"testing"
	"time"

	"hotel-pms-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindAvailableRoomsExcludesOverlappingBookings(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAvailabilityService(db)

	rt := seedRoomType(t, db, "Deluxe", 1000)
	room1 := seedRoom(t, db, rt.ID, "101", models.RoomAvailable)
	room2 := seedRoom(t, db, rt.ID, "102", models.RoomAvailable)

	seedBooking(t, db, "BKG-260310-0001", models.BookingConfirmed, room1.ID,
		date(2026, time.March, 10), date(2026, time.March, 13))

	rooms, err := svc.FindAvailableRooms(rt.ID, date(2026, time.March, 11), date(2026, time.March, 12))
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, room2.ID, rooms[0].ID)
}

func TestFindAvailableRoomsHalfOpenBoundaries(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAvailabilityService(db)

	rt := seedRoomType(t, db, "Deluxe", 1000)
	room := seedRoom(t, db, rt.ID, "101", models.RoomAvailable)

	seedBooking(t, db, "BKG-260310-0001", models.BookingConfirmed, room.ID,
		date(2026, time.March, 10), date(2026, time.March, 13))

	// A stay ending on the existing check-in day does not conflict.
	rooms, err := svc.FindAvailableRooms(rt.ID, date(2026, time.March, 8), date(2026, time.March, 10))
	require.NoError(t, err)
	assert.Len(t, rooms, 1)

	// Neither does one starting on the existing check-out day.
	rooms, err = svc.FindAvailableRooms(rt.ID, date(2026, time.March, 13), date(2026, time.March, 15))
	require.NoError(t, err)
	assert.Len(t, rooms, 1)

	// Sharing even a single night does.
	rooms, err = svc.FindAvailableRooms(rt.ID, date(2026, time.March, 12), date(2026, time.March, 14))
	require.NoError(t, err)
	assert.Empty(t, rooms)
}

func TestFindAvailableRoomsIgnoresTerminalBookings(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAvailabilityService(db)

	rt := seedRoomType(t, db, "Deluxe", 1000)
	room := seedRoom(t, db, rt.ID, "101", models.RoomAvailable)

	in, out := date(2026, time.March, 10), date(2026, time.March, 13)
	seedBooking(t, db, "BKG-260310-0001", models.BookingCancelled, room.ID, in, out)
	seedBooking(t, db, "BKG-260310-0002", models.BookingRejected, room.ID, in, out)
	seedBooking(t, db, "BKG-260310-0003", models.BookingCheckedOut, room.ID, in, out)

	rooms, err := svc.FindAvailableRooms(rt.ID, in, out)
	require.NoError(t, err)
	assert.Len(t, rooms, 1)
}

func TestFindAvailableRoomsSkipsHousekeepingStatuses(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAvailabilityService(db)

	rt := seedRoomType(t, db, "Deluxe", 1000)
	seedRoom(t, db, rt.ID, "101", models.RoomMaintenance)
	seedRoom(t, db, rt.ID, "102", models.RoomDirty)
	free := seedRoom(t, db, rt.ID, "103", models.RoomAvailable)

	rooms, err := svc.FindAvailableRooms(rt.ID, date(2026, time.March, 10), date(2026, time.March, 12))
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, free.ID, rooms[0].ID)
}

func TestFindAvailableRoomsOrdersByID(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAvailabilityService(db)

	rt := seedRoomType(t, db, "Deluxe", 1000)
	a := seedRoom(t, db, rt.ID, "103", models.RoomAvailable)
	b := seedRoom(t, db, rt.ID, "101", models.RoomAvailable)

	rooms, err := svc.FindAvailableRooms(rt.ID, date(2026, time.March, 10), date(2026, time.March, 12))
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, []uint{a.ID, b.ID}, []uint{rooms[0].ID, rooms[1].ID})
}

func TestFindAvailableRoomsUnknownType(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAvailabilityService(db)

	_, err := svc.FindAvailableRooms(999, date(2026, time.March, 10), date(2026, time.March, 12))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindUnassignedRooms(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAvailabilityService(db)

	rt := seedRoomType(t, db, "Deluxe", 1000)
	held := seedRoom(t, db, rt.ID, "101", models.RoomAvailable)
	free := seedRoom(t, db, rt.ID, "102", models.RoomAvailable)

	b := seedBooking(t, db, "BKG-260310-0001", models.BookingCheckedIn, held.ID,
		date(2026, time.March, 10), date(2026, time.March, 13))
	require.NoError(t, db.Model(&b).Update("assigned_room_id", held.ID).Error)

	// A confirmed booking's reservation does not hold a physical room.
	seedBooking(t, db, "BKG-260310-0002", models.BookingConfirmed, free.ID,
		date(2026, time.March, 10), date(2026, time.March, 13))

	rooms, err := svc.FindUnassignedRooms(rt.ID)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, free.ID, rooms[0].ID)
}
