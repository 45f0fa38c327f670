package dto

import (
	"time"

	"hotel/constants"
	"hotel/models"
)

// BookingRequest nhận ngày dạng 2006-01-02
type BookingRequest struct {
	RoomID       uint   `json:"roomId" binding:"required,gt=0"`
	CheckInDate  string `json:"checkInDate" binding:"required"`
	CheckOutDate string `json:"checkOutDate" binding:"required"`
}

type BookingResponse struct {
	ID           uint      `json:"id"`
	UserID       uint      `json:"userId"`
	RoomID       uint      `json:"roomId"`
	CheckInDate  string    `json:"checkInDate"`
	CheckOutDate string    `json:"checkOutDate"`
	Nights       int       `json:"nights"`
	CreatedAt    time.Time `json:"createdAt"`
}

func ToBookingResponse(b models.Booking) BookingResponse {
	return BookingResponse{
		ID:           b.ID,
		UserID:       b.UserID,
		RoomID:       b.RoomID,
		CheckInDate:  b.CheckIn().Format(constants.DateLayout),
		CheckOutDate: b.CheckOut().Format(constants.DateLayout),
		Nights:       b.Nights(),
		CreatedAt:    b.CreatedAt,
	}
}

func ToBookingResponses(bookings []models.Booking) []BookingResponse {
	res := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		res = append(res, ToBookingResponse(b))
	}
	return res
}
