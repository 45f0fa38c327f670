package controllers

import (
	"strconv"

	"hotel/dto"
	apperrors "hotel/errors"
	"hotel/response"
	"hotel/services"
	"hotel/validator"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	Rooms *services.RoomService
}

func NewRoomController(rooms *services.RoomService) RoomController {
	return RoomController{Rooms: rooms}
}

func (r RoomController) GetAllRooms(c *gin.Context) {
	rooms, err := r.Rooms.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, rooms)
}

func (r RoomController) GetAvailableRooms(c *gin.Context) {
	rooms, err := r.Rooms.ListAvailable(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, rooms)
}

func (r RoomController) GetRoomDetail(c *gin.Context) {
	id, ok := pathID(c, "room")
	if !ok {
		return
	}
	room, err := r.Rooms.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, room)
}

func (r RoomController) CreateRoom(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var req dto.RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, validator.FromValidationError(err))
		return
	}

	room, err := r.Rooms.Add(c.Request.Context(), identity, roomInput(req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Room created successfully", room)
}

func (r RoomController) UpdateRoom(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "room")
	if !ok {
		return
	}
	var req dto.RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, validator.FromValidationError(err))
		return
	}

	room, err := r.Rooms.Update(c.Request.Context(), identity, id, roomInput(req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, room)
}

func (r RoomController) DeleteRoom(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "room")
	if !ok {
		return
	}
	if err := r.Rooms.Delete(c.Request.Context(), identity, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Room deleted successfully")
}

func roomInput(req dto.RoomRequest) services.RoomInput {
	input := services.RoomInput{
		RoomNumber: req.RoomNumber,
		Type:       req.Type,
		Available:  req.Available,
		Amenities:  req.Amenities,
	}
	if req.Price != nil {
		input.Price = *req.Price
	}
	return input
}

// pathID đọc tham số :id, trả VALIDATION_ERROR nếu không phải số dương
func pathID(c *gin.Context, resource string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.Error(c, apperrors.Validation("Invalid "+resource+" id"))
		return 0, false
	}
	return uint(id), true
}
