package controllers

import (
	"hotel/dto"
	"hotel/response"
	"hotel/services"
	"hotel/validator"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	Ledger *services.BookingService
}

func NewBookingController(ledger *services.BookingService) BookingController {
	return BookingController{Ledger: ledger}
}

func (b BookingController) CreateBooking(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var req dto.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, validator.FromValidationError(err))
		return
	}

	checkIn, err := validator.ParseDate("checkInDate", req.CheckInDate)
	if err != nil {
		response.Error(c, err)
		return
	}
	checkOut, err := validator.ParseDate("checkOutDate", req.CheckOutDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	booking, err := b.Ledger.Create(c.Request.Context(), identity, req.RoomID, checkIn, checkOut)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Booking created successfully", dto.ToBookingResponse(*booking))
}

func (b BookingController) GetMyBookings(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	bookings, err := b.Ledger.ListForUser(c.Request.Context(), identity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToBookingResponses(bookings))
}

// GetAllBookings chỉ dành cho admin, kiểm tra role nằm trong service
func (b BookingController) GetAllBookings(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	bookings, err := b.Ledger.ListAll(c.Request.Context(), identity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToBookingResponses(bookings))
}

func (b BookingController) CancelBooking(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "booking")
	if !ok {
		return
	}
	if err := b.Ledger.Cancel(c.Request.Context(), identity, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Booking cancelled successfully")
}
