package services

import (
	"testing"
	"time"

	"hotel-pms-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuCreateValidatesAndDerivesAvailability(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMenuService(db)

	err := svc.Create(&models.Menu{Name: " ", Price: 100, Stock: 5})
	assert.ErrorIs(t, err, ErrValidation)

	err = svc.Create(&models.Menu{Name: "Pad Thai", Price: 0, Stock: 5})
	assert.ErrorIs(t, err, ErrValidation)

	err = svc.Create(&models.Menu{Name: "Pad Thai", Price: 120, Stock: -1})
	assert.ErrorIs(t, err, ErrValidation)

	empty := models.Menu{Name: "Green Curry", Price: 150, Stock: 0}
	require.NoError(t, svc.Create(&empty))
	assert.False(t, empty.IsAvailable)

	stocked := models.Menu{Name: "Pad Thai", Price: 120, Stock: 10}
	require.NoError(t, svc.Create(&stocked))
	assert.True(t, stocked.IsAvailable)
}

func TestMenuUpdateAndRestock(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMenuService(db)

	m := seedMenu(t, db, "Pad Thai", 120, 10)

	_, err := svc.Update(m.ID, map[string]interface{}{"price": float64(-5)})
	assert.ErrorIs(t, err, ErrValidation)

	updated, err := svc.Update(m.ID, map[string]interface{}{"stock": float64(0)})
	require.NoError(t, err)
	assert.False(t, updated.IsAvailable)

	restocked, err := svc.Restock(m.ID, 6)
	require.NoError(t, err)
	assert.Equal(t, 6, restocked.Stock)
	assert.True(t, restocked.IsAvailable)

	_, err = svc.Restock(m.ID, 0)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Restock(999, 5)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateOrderDineIn(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService(db)

	padThai := seedMenu(t, db, "Pad Thai", 120, 10)
	tea := seedMenu(t, db, "Thai Iced Tea", 55, 20)

	order, err := svc.CreateOrder(CreateOrderInput{
		OrderType: models.OrderDineIn,
		Items: []OrderItemInput{
			{MenuID: padThai.ID, Quantity: 2},
			{MenuID: tea.ID, Quantity: 3},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, 2*120+3*55.0, order.TotalAmount)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Pad Thai", order.Items[0].MenuName)
	assert.Equal(t, 120.0, order.Items[0].Price)
	assert.Equal(t, 240.0, order.Items[0].Subtotal)

	var m models.Menu
	require.NoError(t, db.First(&m, padThai.ID).Error)
	assert.Equal(t, 8, m.Stock)
}

func TestCreateOrderSnapshotsPriceAtOrderTime(t *testing.T) {
	db := setupTestDB(t)
	orders := NewOrderService(db)
	menu := NewMenuService(db)

	padThai := seedMenu(t, db, "Pad Thai", 120, 10)

	order, err := orders.CreateOrder(CreateOrderInput{
		OrderType: models.OrderDineIn,
		Items:     []OrderItemInput{{MenuID: padThai.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = menu.Update(padThai.ID, map[string]interface{}{"price": float64(150)})
	require.NoError(t, err)

	reloaded, err := orders.GetOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, 120.0, reloaded.Items[0].Price)
	assert.Equal(t, 120.0, reloaded.TotalAmount)
}

func TestCreateOrderInsufficientStockRollsBack(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService(db)

	padThai := seedMenu(t, db, "Pad Thai", 120, 10)
	tea := seedMenu(t, db, "Thai Iced Tea", 55, 2)

	_, err := svc.CreateOrder(CreateOrderInput{
		OrderType: models.OrderDineIn,
		Items: []OrderItemInput{
			{MenuID: padThai.ID, Quantity: 4},
			{MenuID: tea.ID, Quantity: 3}, // only 2 in stock
		},
	})
	assert.ErrorIs(t, err, ErrValidation)

	// The rollback restored the first line's deduction too.
	var m models.Menu
	require.NoError(t, db.First(&m, padThai.ID).Error)
	assert.Equal(t, 10, m.Stock)

	var orderCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	assert.Zero(t, orderCount)
}

func TestCreateOrderExactDepletionFlagsUnavailable(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService(db)

	tea := seedMenu(t, db, "Thai Iced Tea", 55, 3)

	_, err := svc.CreateOrder(CreateOrderInput{
		OrderType: models.OrderDineIn,
		Items:     []OrderItemInput{{MenuID: tea.ID, Quantity: 3}},
	})
	require.NoError(t, err)

	var m models.Menu
	require.NoError(t, db.First(&m, tea.ID).Error)
	assert.Equal(t, 0, m.Stock)
	assert.False(t, m.IsAvailable)
}

func TestCreateOrderValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService(db)

	tea := seedMenu(t, db, "Thai Iced Tea", 55, 10)

	_, err := svc.CreateOrder(CreateOrderInput{OrderType: "takeaway",
		Items: []OrderItemInput{{MenuID: tea.ID, Quantity: 1}}})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateOrder(CreateOrderInput{OrderType: models.OrderDineIn})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateOrder(CreateOrderInput{OrderType: models.OrderDineIn,
		Items: []OrderItemInput{{MenuID: tea.ID, Quantity: 0}}})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateOrder(CreateOrderInput{OrderType: models.OrderDineIn,
		Items: []OrderItemInput{{MenuID: 999, Quantity: 1}}})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.CreateOrder(CreateOrderInput{OrderType: models.OrderRoomService,
		Items: []OrderItemInput{{MenuID: tea.ID, Quantity: 1}}})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateRoomServiceOrderAppendsBookingFees(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService(db)

	rt := seedRoomType(t, db, "Deluxe", 1000)
	room := seedRoom(t, db, rt.ID, "101", models.RoomAvailable)
	booking := seedBooking(t, db, "BKG-260301-0001", models.BookingCheckedIn, room.ID,
		date(2026, time.March, 10), date(2026, time.March, 13))

	padThai := seedMenu(t, db, "Pad Thai", 120, 10)
	tea := seedMenu(t, db, "Thai Iced Tea", 55, 10)

	order, err := svc.CreateOrder(CreateOrderInput{
		OrderType: models.OrderRoomService,
		BookingID: &booking.ID,
		Items: []OrderItemInput{
			{MenuID: padThai.ID, Quantity: 2},
			{MenuID: tea.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, order.BookingID)

	var fees []models.BookingFee
	require.NoError(t, db.Where("booking_id = ?", booking.ID).Order("id").Find(&fees).Error)
	require.Len(t, fees, 2)
	assert.Equal(t, "Pad Thai", fees[0].Name)
	assert.Equal(t, 240.0, fees[0].Amount)
	assert.Equal(t, 110.0, fees[1].Amount)
}

func TestCreateDineInOrderDoesNotTouchBookingFees(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService(db)

	rt := seedRoomType(t, db, "Deluxe", 1000)
	room := seedRoom(t, db, rt.ID, "101", models.RoomAvailable)
	booking := seedBooking(t, db, "BKG-260301-0001", models.BookingCheckedIn, room.ID,
		date(2026, time.March, 10), date(2026, time.March, 13))

	tea := seedMenu(t, db, "Thai Iced Tea", 55, 10)

	_, err := svc.CreateOrder(CreateOrderInput{
		OrderType: models.OrderDineIn,
		BookingID: &booking.ID,
		Items:     []OrderItemInput{{MenuID: tea.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	var feeCount int64
	require.NoError(t, db.Model(&models.BookingFee{}).Count(&feeCount).Error)
	assert.Zero(t, feeCount)
}

func TestCreateOrderRejectsTerminalBooking(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService(db)

	rt := seedRoomType(t, db, "Deluxe", 1000)
	room := seedRoom(t, db, rt.ID, "101", models.RoomAvailable)
	booking := seedBooking(t, db, "BKG-260301-0001", models.BookingCheckedOut, room.ID,
		date(2026, time.March, 10), date(2026, time.March, 13))

	tea := seedMenu(t, db, "Thai Iced Tea", 55, 10)

	_, err := svc.CreateOrder(CreateOrderInput{
		OrderType: models.OrderRoomService,
		BookingID: &booking.ID,
		Items:     []OrderItemInput{{MenuID: tea.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrConflict)

	unknown := "BKG-260301-0099"
	_, err = svc.CreateOrder(CreateOrderInput{
		OrderType: models.OrderRoomService,
		BookingID: &unknown,
		Items:     []OrderItemInput{{MenuID: tea.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrderStatusFlow(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService(db)

	tea := seedMenu(t, db, "Thai Iced Tea", 55, 10)
	order, err := svc.CreateOrder(CreateOrderInput{
		OrderType: models.OrderDineIn,
		Items:     []OrderItemInput{{MenuID: tea.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	order, err = svc.UpdateStatus(order.ID, models.OrderPreparing)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPreparing, order.Status)

	order, err = svc.UpdateStatus(order.ID, models.OrderServed)
	require.NoError(t, err)
	assert.Equal(t, models.OrderServed, order.Status)

	// Served is terminal.
	_, err = svc.UpdateStatus(order.ID, models.OrderCancelled)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.UpdateStatus(999, models.OrderPreparing)
	assert.ErrorIs(t, err, ErrNotFound)
}
