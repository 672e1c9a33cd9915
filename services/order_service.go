package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"hotel-pms-backend/models"

	"gorm.io/gorm"
)

// ---------------------------
// Menu
// ---------------------------

type MenuService struct {
	DB *gorm.DB
}

func NewMenuService(db *gorm.DB) *MenuService {
	return &MenuService{DB: db}
}

func (s *MenuService) Create(menu *models.Menu) error {
	menu.Name = strings.TrimSpace(menu.Name)
	if menu.Name == "" {
		return validationf("menu name is required")
	}
	if menu.Price <= 0 {
		return validationf("menu price must be positive")
	}
	if menu.Stock < 0 {
		return validationf("menu stock cannot be negative")
	}
	menu.IsAvailable = menu.Stock > 0

	if err := s.DB.Create(menu).Error; err != nil {
		return fmt.Errorf("failed to create menu item: %w", err)
	}
	return nil
}

func (s *MenuService) GetAll() ([]models.Menu, error) {
	var menus []models.Menu
	if err := s.DB.Order("category, name").Find(&menus).Error; err != nil {
		return nil, fmt.Errorf("failed to list menu: %w", err)
	}
	return menus, nil
}

func (s *MenuService) GetByID(id uint) (models.Menu, error) {
	var menu models.Menu
	if err := s.DB.First(&menu, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return menu, notFoundf("menu item %d", id)
		}
		return menu, fmt.Errorf("failed to load menu item %d: %w", id, err)
	}
	return menu, nil
}

// Update applies a partial edit. Price changes never touch historical
// orders (items snapshot name/price at order time).
func (s *MenuService) Update(id uint, fields map[string]interface{}) (models.Menu, error) {
	delete(fields, "id")
	delete(fields, "created_at")
	delete(fields, "updated_at")
	delete(fields, "deleted_at")

	if p, ok := fields["price"]; ok {
		if v, ok2 := p.(float64); ok2 && v <= 0 {
			return models.Menu{}, validationf("menu price must be positive")
		}
	}
	if st, ok := fields["stock"]; ok {
		if v, ok2 := st.(float64); ok2 {
			if v < 0 {
				return models.Menu{}, validationf("menu stock cannot be negative")
			}
			fields["is_available"] = v > 0
		}
	}

	res := s.DB.Model(&models.Menu{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return models.Menu{}, fmt.Errorf("failed to update menu item %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return models.Menu{}, notFoundf("menu item %d", id)
	}
	return s.GetByID(id)
}

// Restock adds stock and restores availability.
func (s *MenuService) Restock(id uint, quantity int) (models.Menu, error) {
	if quantity <= 0 {
		return models.Menu{}, validationf("restock quantity must be positive")
	}

	res := s.DB.Model(&models.Menu{}).Where("id = ?", id).Updates(map[string]interface{}{
		"stock":        gorm.Expr("stock + ?", quantity),
		"is_available": true,
	})
	if res.Error != nil {
		return models.Menu{}, fmt.Errorf("failed to restock menu item %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return models.Menu{}, notFoundf("menu item %d", id)
	}
	return s.GetByID(id)
}

func (s *MenuService) Delete(id uint) error {
	res := s.DB.Delete(&models.Menu{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete menu item %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFoundf("menu item %d", id)
	}
	return nil
}

// ---------------------------
// Orders
// ---------------------------

type OrderService struct {
	DB *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db}
}

type OrderItemInput struct {
	MenuID   uint `json:"menuId"`
	Quantity int  `json:"quantity"`
}

type CreateOrderInput struct {
	OrderType string
	BookingID *string
	Items     []OrderItemInput
}

// CreateOrder deducts stock, snapshots each line and derives the total in
// one transaction; a failure on any line rolls the whole order back. Room
// service orders additionally append their lines to the booking's fee
// list, settled as payments at check-out.
func (s *OrderService) CreateOrder(in CreateOrderInput) (*models.Order, error) {
	if !models.IsValidOrderType(in.OrderType) {
		return nil, validationf("unknown order type %q", in.OrderType)
	}
	if len(in.Items) == 0 {
		return nil, validationf("order needs at least one item")
	}

	if in.OrderType == models.OrderRoomService {
		if in.BookingID == nil || strings.TrimSpace(*in.BookingID) == "" {
			return nil, validationf("room service orders must be linked to a booking")
		}
	}

	var orderID uint

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if in.BookingID != nil {
			var booking models.Booking
			if err := tx.First(&booking, "id = ?", *in.BookingID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return notFoundf("booking %s", *in.BookingID)
				}
				return fmt.Errorf("failed to load booking %s: %w", *in.BookingID, err)
			}
			if booking.IsTerminal() {
				return conflictf("booking %s is %s and cannot take charges", booking.ID, booking.Status)
			}
		}

		order := models.Order{
			OrderType: in.OrderType,
			BookingID: in.BookingID,
			Status:    models.OrderPending,
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		orderID = order.ID

		var total float64
		fees := make([]models.BookingFee, 0, len(in.Items))

		for _, item := range in.Items {
			if item.Quantity <= 0 {
				return validationf("item quantity must be positive")
			}

			var menu models.Menu
			if err := tx.First(&menu, item.MenuID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return notFoundf("menu item %d", item.MenuID)
				}
				return fmt.Errorf("failed to load menu item %d: %w", item.MenuID, err)
			}

			// Guarded deduction: the stock predicate keeps concurrent
			// orders from overselling.
			res := tx.Model(&models.Menu{}).
				Where("id = ? AND stock >= ?", menu.ID, item.Quantity).
				Update("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return fmt.Errorf("failed to deduct stock for %s: %w", menu.Name, res.Error)
			}
			if res.RowsAffected == 0 {
				return validationf("insufficient stock for %s (have %d, want %d)", menu.Name, menu.Stock, item.Quantity)
			}

			var remaining int
			if err := tx.Model(&models.Menu{}).Where("id = ?", menu.ID).
				Select("stock").Scan(&remaining).Error; err != nil {
				return fmt.Errorf("failed to re-read stock for %s: %w", menu.Name, err)
			}
			if remaining == 0 {
				if err := tx.Model(&models.Menu{}).Where("id = ?", menu.ID).
					Update("is_available", false).Error; err != nil {
					return fmt.Errorf("failed to flag %s unavailable: %w", menu.Name, err)
				}
			}
			menu.Stock = remaining
			if menu.LowStock() {
				log.Printf("low stock: %s has %d left", menu.Name, remaining)
			}

			subtotal := menu.Price * float64(item.Quantity)
			line := models.OrderItem{
				OrderID:  order.ID,
				MenuID:   menu.ID,
				MenuName: menu.Name,
				Price:    menu.Price,
				Quantity: item.Quantity,
				Subtotal: subtotal,
			}
			if err := tx.Create(&line).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}

			total += subtotal
			fees = append(fees, models.BookingFee{Name: menu.Name, Amount: subtotal})
		}

		if err := tx.Model(&order).Update("total_amount", total).Error; err != nil {
			return fmt.Errorf("failed to set order total: %w", err)
		}

		if in.OrderType == models.OrderRoomService {
			for i := range fees {
				fees[i].BookingID = *in.BookingID
				if err := tx.Create(&fees[i]).Error; err != nil {
					return fmt.Errorf("failed to append booking fee: %w", err)
				}
			}
		}

		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.GetOrder(orderID)
}

func (s *OrderService) GetOrder(id uint) (*models.Order, error) {
	var order models.Order
	if err := s.DB.Preload("Items").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("order %d", id)
		}
		return nil, fmt.Errorf("failed to load order %d: %w", id, err)
	}
	return &order, nil
}

func (s *OrderService) ListOrders() ([]models.Order, error) {
	var orders []models.Order
	if err := s.DB.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// Kitchen status flow: pending -> preparing -> served, with cancellation
// possible until the order is served.
var orderTransitions = map[string][]string{
	models.OrderPending:   {models.OrderPreparing, models.OrderServed, models.OrderCancelled},
	models.OrderPreparing: {models.OrderServed, models.OrderCancelled},
}

func (s *OrderService) UpdateStatus(id uint, status string) (*models.Order, error) {
	order, err := s.GetOrder(id)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, next := range orderTransitions[order.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, conflictf("order %d cannot go from %s to %s", id, order.Status, status)
	}

	if err := s.DB.Model(order).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update order %d status: %w", id, err)
	}
	return s.GetOrder(id)
}
