package controllers

import (
	"net/http"

	"hotel-pms-backend/models"
	"hotel-pms-backend/services"
	"hotel-pms-backend/utils"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	Menu   *services.MenuService
	Orders *services.OrderService
}

func NewOrderController(menu *services.MenuService, orders *services.OrderService) *OrderController {
	return &OrderController{Menu: menu, Orders: orders}
}

// ---------------------------
// Menu
// ---------------------------

func (ctrl *OrderController) GetMenu(c *gin.Context) {
	menus, err := ctrl.Menu.GetAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, menus)
}

func (ctrl *OrderController) GetMenuItem(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	menu, err := ctrl.Menu.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, menu)
}

func (ctrl *OrderController) CreateMenuItem(c *gin.Context) {
	var menu models.Menu
	if err := c.ShouldBindJSON(&menu); err != nil {
		respondBadPayload(c, err)
		return
	}

	if err := ctrl.Menu.Create(&menu); err != nil {
		if isDuplicateErr(err) {
			utils.JSONError(c, http.StatusConflict, "menu item name already exists")
			return
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, menu)
}

func (ctrl *OrderController) UpdateMenuItem(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		respondBadPayload(c, err)
		return
	}

	menu, err := ctrl.Menu.Update(id, fields)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, menu)
}

type restockPayload struct {
	Quantity int `json:"quantity" binding:"required"`
}

func (ctrl *OrderController) RestockMenuItem(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var payload restockPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadPayload(c, err)
		return
	}

	menu, err := ctrl.Menu.Restock(id, payload.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, menu)
}

func (ctrl *OrderController) DeleteMenuItem(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.Menu.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

// ---------------------------
// Orders
// ---------------------------

type CreateOrderRequest struct {
	OrderType string                    `json:"orderType" binding:"required"`
	BookingID *string                   `json:"bookingId"`
	Items     []services.OrderItemInput `json:"items" binding:"required"`
}

type OrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (ctrl *OrderController) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadPayload(c, err)
		return
	}

	order, err := ctrl.Orders.CreateOrder(services.CreateOrderInput{
		OrderType: req.OrderType,
		BookingID: req.BookingID,
		Items:     req.Items,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (ctrl *OrderController) GetOrders(c *gin.Context) {
	orders, err := ctrl.Orders.ListOrders()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (ctrl *OrderController) GetOrder(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	order, err := ctrl.Orders.GetOrder(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req OrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadPayload(c, err)
		return
	}

	order, err := ctrl.Orders.UpdateStatus(id, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
