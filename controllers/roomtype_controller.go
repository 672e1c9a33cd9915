package controllers

import (
	"net/http"

	"hotel-pms-backend/models"
	"hotel-pms-backend/services"
	"hotel-pms-backend/utils"

	"github.com/gin-gonic/gin"
)

type RoomTypeController struct {
	Catalog      *services.CatalogService
	Availability *services.AvailabilityService
}

func NewRoomTypeController(catalog *services.CatalogService, availability *services.AvailabilityService) *RoomTypeController {
	return &RoomTypeController{Catalog: catalog, Availability: availability}
}

func (ctrl *RoomTypeController) GetRoomTypes(c *gin.Context) {
	types, err := ctrl.Catalog.GetRoomTypes()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, types)
}

func (ctrl *RoomTypeController) CreateRoomType(c *gin.Context) {
	var rt models.RoomType
	if err := c.ShouldBindJSON(&rt); err != nil {
		respondBadPayload(c, err)
		return
	}

	if err := ctrl.Catalog.CreateRoomType(&rt); err != nil {
		if isDuplicateErr(err) {
			utils.JSONError(c, http.StatusConflict, "room type name already exists")
			return
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rt)
}

func (ctrl *RoomTypeController) GetRoomType(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	rt, err := ctrl.Catalog.GetRoomType(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rt)
}

func (ctrl *RoomTypeController) UpdateRoomType(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		respondBadPayload(c, err)
		return
	}

	if err := ctrl.Catalog.UpdateRoomType(id, fields); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "room type updated"})
}

func (ctrl *RoomTypeController) DeleteRoomType(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.Catalog.DeleteRoomType(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "room type deleted"})
}

// GetAvailableRooms answers
// GET /api/room-types/:id/available-rooms?check_in=YYYY-MM-DD&check_out=YYYY-MM-DD
func (ctrl *RoomTypeController) GetAvailableRooms(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	checkInRaw := c.Query("check_in")
	checkOutRaw := c.Query("check_out")
	if checkInRaw == "" || checkOutRaw == "" {
		utils.JSONError(c, http.StatusBadRequest, "check_in and check_out query parameters are required")
		return
	}

	checkIn, err := parseDate(checkInRaw)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid check_in date format")
		return
	}
	checkOut, err := parseDate(checkOutRaw)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid check_out date format")
		return
	}

	rooms, err := ctrl.Availability.FindAvailableRooms(id, checkIn, checkOut)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// GetUnassignedRooms lists available rooms of a type not currently held by
// a checked-in booking; front desk uses it to pick the physical room.
func (ctrl *RoomTypeController) GetUnassignedRooms(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	rooms, err := ctrl.Availability.FindUnassignedRooms(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}
