package controllers

import (
	"net/http"

	"hotel-pms-backend/services"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	Payments *services.PaymentService
}

func NewPaymentController(payments *services.PaymentService) *PaymentController {
	return &PaymentController{Payments: payments}
}

type RecordPaymentRequest struct {
	Amount         float64 `json:"amount" binding:"required"`
	Category       string  `json:"category" binding:"required"`
	Status         string  `json:"status"`
	Description    string  `json:"description"`
	ReceiptURL     string  `json:"receiptUrl"`
	TransactionRef string  `json:"transactionRef"`
}

type PaymentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// GET /api/bookings/:id/payments
func (ctrl *PaymentController) ListForBooking(c *gin.Context) {
	payments, err := ctrl.Payments.ListForBooking(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

// GET /api/bookings/:id/balance
func (ctrl *PaymentController) GetBalance(c *gin.Context) {
	id := c.Param("id")
	down, err := ctrl.Payments.DownpaymentTotal(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	remaining, err := ctrl.Payments.RemainingBalance(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"bookingId":        id,
		"downpayment":      down,
		"remainingBalance": remaining,
	})
}

// POST /api/bookings/:id/payments
func (ctrl *PaymentController) RecordPayment(c *gin.Context) {
	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadPayload(c, err)
		return
	}

	payment, err := ctrl.Payments.Record(services.RecordPaymentInput{
		BookingID:      c.Param("id"),
		Amount:         req.Amount,
		Category:       req.Category,
		Status:         req.Status,
		Description:    req.Description,
		ReceiptURL:     req.ReceiptURL,
		TransactionRef: req.TransactionRef,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// PATCH /api/payments/:id/status
func (ctrl *PaymentController) UpdateStatus(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req PaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadPayload(c, err)
		return
	}

	payment, err := ctrl.Payments.AdvanceStatus(id, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}
