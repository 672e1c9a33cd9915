package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotel-pms-backend/controllers"
	"hotel-pms-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func SetupRouter(
	rtc *controllers.RoomTypeController,
	rc *controllers.RoomController,
	bc *controllers.BookingController,
	pc *controllers.PaymentController,
	oc *controllers.OrderController,
) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		roomTypes := api.Group("/room-types")
		{
			roomTypes.GET("", rtc.GetRoomTypes)
			roomTypes.POST("", rtc.CreateRoomType)
			roomTypes.GET("/:id", rtc.GetRoomType)
			roomTypes.PATCH("/:id", rtc.UpdateRoomType)
			roomTypes.DELETE("/:id", rtc.DeleteRoomType)
			roomTypes.GET("/:id/available-rooms", rtc.GetAvailableRooms)
			roomTypes.GET("/:id/unassigned-rooms", rtc.GetUnassignedRooms)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", rc.GetRooms)
			rooms.GET("/:id", rc.GetRoom)
			rooms.POST("", rc.CreateRoom)
			rooms.PATCH("/:id/status", rc.UpdateRoomStatus)
			rooms.DELETE("/:id", rc.DeleteRoom)
		}

		bookings := api.Group("/bookings")
		{
			bookings.GET("", bc.GetBookings)
			bookings.POST("", bc.CreateBooking)
			bookings.GET("/:id", bc.GetBooking)
			bookings.POST("/:id/approve", bc.ApproveBooking)
			bookings.POST("/:id/reject", bc.RejectBooking)
			bookings.POST("/:id/cancel", bc.CancelBooking)
			bookings.POST("/:id/check-in", bc.CheckIn)
			bookings.POST("/:id/check-out", bc.CheckOut)

			bookings.GET("/:id/payments", pc.ListForBooking)
			bookings.POST("/:id/payments", pc.RecordPayment)
			bookings.GET("/:id/balance", pc.GetBalance)
		}

		payments := api.Group("/payments")
		{
			payments.PATCH("/:id/status", pc.UpdateStatus)
		}

		menu := api.Group("/menu")
		{
			menu.GET("", oc.GetMenu)
			menu.GET("/:id", oc.GetMenuItem)
			menu.POST("", oc.CreateMenuItem)
			menu.PATCH("/:id", oc.UpdateMenuItem)
			menu.POST("/:id/restock", oc.RestockMenuItem)
			menu.DELETE("/:id", oc.DeleteMenuItem)
		}

		orders := api.Group("/orders")
		{
			orders.GET("", oc.GetOrders)
			orders.POST("", oc.CreateOrder)
			orders.GET("/:id", oc.GetOrder)
			orders.PATCH("/:id/status", oc.UpdateOrderStatus)
		}
	}

	return r
}
