package controllers

import (
	"net/http"

	"hotel-pms-backend/models"
	"hotel-pms-backend/services"
	"hotel-pms-backend/utils"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	Bookings *services.BookingService
	Payments *services.PaymentService
}

func NewBookingController(bookings *services.BookingService, payments *services.PaymentService) *BookingController {
	return &BookingController{Bookings: bookings, Payments: payments}
}

// ---------------------------
// Payloads
// ---------------------------

type CreateBookingRequest struct {
	GuestName     string `json:"guestName" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	ContactNumber string `json:"contactNumber"`
	RoomTypeID    uint   `json:"roomTypeId" binding:"required"`
	CheckIn       string `json:"checkIn" binding:"required"`
	CheckOut      string `json:"checkOut" binding:"required"`
	Adults        int    `json:"adults" binding:"required"`
	Children      int    `json:"children"`
	ExtraChildren int    `json:"extraChildren"`
	Notes         string `json:"notes"`

	TransactionRef string `json:"transactionRef"`
	ReceiptURL     string `json:"receiptUrl"`
}

type RejectBookingRequest struct {
	Reason string `json:"reason"`
}

type CheckInRequest struct {
	RoomID          uint    `json:"roomId" binding:"required"`
	RemainingAmount float64 `json:"remainingAmount"`
}

// bookingView adds the derived fields the front desk screens show.
func bookingView(ctrl *BookingController, b *models.Booking) (gin.H, error) {
	down, err := ctrl.Payments.DownpaymentTotal(b.ID)
	if err != nil {
		return nil, err
	}
	remaining, err := ctrl.Payments.RemainingBalance(b.ID)
	if err != nil {
		return nil, err
	}

	return gin.H{
		"booking":          b,
		"nights":           b.Nights(),
		"guests":           b.Adults + b.Children + b.ExtraChildren,
		"downpayment":      down,
		"remainingBalance": remaining,
	}, nil
}

// ---------------------------
// Handlers
// ---------------------------

func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadPayload(c, err)
		return
	}

	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid checkIn date format")
		return
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid checkOut date format")
		return
	}

	booking, err := ctrl.Bookings.CreateBooking(services.CreateBookingInput{
		GuestName:      req.GuestName,
		Email:          req.Email,
		ContactNumber:  req.ContactNumber,
		RoomTypeID:     req.RoomTypeID,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		Adults:         req.Adults,
		Children:       req.Children,
		ExtraChildren:  req.ExtraChildren,
		Notes:          req.Notes,
		TransactionRef: req.TransactionRef,
		ReceiptURL:     req.ReceiptURL,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	view, err := bookingView(ctrl, booking)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (ctrl *BookingController) GetBookings(c *gin.Context) {
	list, err := ctrl.Bookings.ListBookings()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (ctrl *BookingController) GetBooking(c *gin.Context) {
	booking, err := ctrl.Bookings.GetBooking(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	view, err := bookingView(ctrl, booking)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (ctrl *BookingController) ApproveBooking(c *gin.Context) {
	booking, err := ctrl.Bookings.Approve(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "booking " + booking.ID + " approved",
		"booking": booking,
	})
}

func (ctrl *BookingController) RejectBooking(c *gin.Context) {
	var req RejectBookingRequest
	_ = c.ShouldBindJSON(&req) // reason is optional

	booking, err := ctrl.Bookings.Reject(c.Param("id"), req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "booking " + booking.ID + " rejected",
		"booking": booking,
	})
}

func (ctrl *BookingController) CancelBooking(c *gin.Context) {
	booking, err := ctrl.Bookings.Cancel(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "booking " + booking.ID + " cancelled",
		"booking": booking,
	})
}

func (ctrl *BookingController) CheckIn(c *gin.Context) {
	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadPayload(c, err)
		return
	}

	booking, err := ctrl.Bookings.CheckIn(c.Param("id"), req.RoomID, req.RemainingAmount)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	view, err := bookingView(ctrl, booking)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (ctrl *BookingController) CheckOut(c *gin.Context) {
	booking, err := ctrl.Bookings.CheckOut(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	view, err := bookingView(ctrl, booking)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
