package services

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"hotel-pms-backend/models"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "modernc.org/sqlite"
)

// setupTestDB opens an in-memory SQLite database unique to the test and
// keeps it on a single connection so transactions serialize the same way
// they would under MySQL row locks.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: dsn}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(
		&models.RoomType{},
		&models.Room{},
		&models.BookingSequence{},
		&models.Booking{},
		&models.BookingFee{},
		&models.Payment{},
		&models.Menu{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// testClock pins BookingService.Now to the morning of 2026-03-01.
var testClock = time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)

func seedRoomType(t *testing.T, db *gorm.DB, name string, price float64) models.RoomType {
	t.Helper()
	rt := models.RoomType{
		Name:          name,
		Description:   name + " room",
		Price:         price,
		MaxAdults:     2,
		MaxChildren:   1,
		ExtraAdultFee: 200,
		ExtraChildFee: 100,
	}
	if err := db.Create(&rt).Error; err != nil {
		t.Fatalf("failed to seed room type: %v", err)
	}
	return rt
}

func seedRoom(t *testing.T, db *gorm.DB, typeID uint, number string, status string) models.Room {
	t.Helper()
	room := models.Room{RoomNumber: number, Floor: 1, Status: status, RoomTypeID: typeID}
	if err := db.Create(&room).Error; err != nil {
		t.Fatalf("failed to seed room %s: %v", number, err)
	}
	return room
}

// seedBooking inserts a booking row directly, bypassing the service, for
// tests that need a booking in a particular state.
func seedBooking(t *testing.T, db *gorm.DB, id string, status string, roomID uint, checkIn, checkOut time.Time) models.Booking {
	t.Helper()
	b := models.Booking{
		ID:         id,
		GuestName:  "Test Guest",
		Email:      "guest@example.com",
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Adults:     2,
		TotalPrice: 2000,
		Status:     status,
		RoomID:     roomID,
	}
	if err := db.Create(&b).Error; err != nil {
		t.Fatalf("failed to seed booking %s: %v", id, err)
	}
	return b
}

func seedMenu(t *testing.T, db *gorm.DB, name string, price float64, stock int) models.Menu {
	t.Helper()
	m := models.Menu{Name: name, Category: "Main", Price: price, Stock: stock, IsAvailable: stock > 0}
	if err := db.Create(&m).Error; err != nil {
		t.Fatalf("failed to seed menu %s: %v", name, err)
	}
	return m
}

type notifyCall struct {
	Recipient string
	Kind      string
	Ctx       NotificationContext
}

// fakeNotifier records notifications instead of sending mail.
type fakeNotifier struct {
	mu    sync.Mutex
	err   error
	calls []notifyCall
}

func (f *fakeNotifier) Notify(recipient string, kind string, ctx NotificationContext) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, notifyCall{Recipient: recipient, Kind: kind, Ctx: ctx})
	return f.err
}

func (f *fakeNotifier) kinds() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.Kind
	}
	return out
}

func newTestBookingService(db *gorm.DB) (*BookingService, *fakeNotifier) {
	notifier := &fakeNotifier{}
	svc := NewBookingService(db, notifier)
	svc.Now = func() time.Time { return testClock }
	return svc, notifier
}
