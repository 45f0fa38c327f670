package builders

import (
	"time"

	"hotel/models"
	"hotel/validator"

	"gorm.io/datatypes"
)

// BookingBuilder giúp tạo booking theo từng bước
type BookingBuilder struct {
	booking *models.Booking
}

// NewBookingBuilder tạo instance mới của BookingBuilder
func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		booking: &models.Booking{},
	}
}

// WithUser gắn chủ sở hữu booking
func (b *BookingBuilder) WithUser(userID uint) *BookingBuilder {
	b.booking.UserID = userID
	return b
}

// WithRoom gắn phòng được đặt
func (b *BookingBuilder) WithRoom(roomID uint) *BookingBuilder {
	b.booking.RoomID = roomID
	return b
}

// WithStay thêm ngày nhận và trả phòng, chỉ giữ phần ngày
func (b *BookingBuilder) WithStay(checkIn, checkOut time.Time) *BookingBuilder {
	b.booking.CheckInDate = datatypes.Date(validator.StayDay(checkIn))
	b.booking.CheckOutDate = datatypes.Date(validator.StayDay(checkOut))
	return b
}

// Build tạo booking hoàn chỉnh
func (b *BookingBuilder) Build() *models.Booking {
	return b.booking
}
