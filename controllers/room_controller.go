package controllers

import (
	"net/http"
	"strconv"

	"hotel-pms-backend/models"
	"hotel-pms-backend/services"
	"hotel-pms-backend/utils"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	Catalog *services.CatalogService
}

func NewRoomController(catalog *services.CatalogService) *RoomController {
	return &RoomController{Catalog: catalog}
}

// GetRooms supports ?status=dirty&room_type_id=2&floor=1 filters for the
// housekeeping board.
func (ctrl *RoomController) GetRooms(c *gin.Context) {
	var filter services.RoomFilter
	if raw := c.Query("room_type_id"); raw != "" {
		if v, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.RoomTypeID = uint(v)
		}
	}
	if raw := c.Query("floor"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			filter.Floor = v
		}
	}
	filter.Status = c.Query("status")

	rooms, err := ctrl.Catalog.ListRooms(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (ctrl *RoomController) GetRoom(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	room, err := ctrl.Catalog.GetRoom(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (ctrl *RoomController) CreateRoom(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		respondBadPayload(c, err)
		return
	}

	if err := ctrl.Catalog.CreateRoom(&room); err != nil {
		if isDuplicateErr(err) {
			utils.JSONError(c, http.StatusConflict, "room number already exists")
			return
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

type roomStatusPayload struct {
	Status string `json:"status" binding:"required"`
}

// UpdateRoomStatus is the housekeeping/maintenance surface; booking-driven
// flips never come through here.
func (ctrl *RoomController) UpdateRoomStatus(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var payload roomStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadPayload(c, err)
		return
	}

	if err := ctrl.Catalog.SetRoomStatus(id, payload.Status); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "room status updated"})
}

func (ctrl *RoomController) DeleteRoom(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.Catalog.DeleteRoom(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "room deleted"})
}
