package models

import (
	"time"

	"gorm.io/datatypes"
)

// Booking giữ định danh của user và phòng, không giữ tham chiếu tới entity
type Booking struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       uint           `gorm:"index;not null" json:"userId"`
	RoomID       uint           `gorm:"index;not null" json:"roomId"`
	CheckInDate  datatypes.Date `gorm:"not null" json:"checkInDate"`
	CheckOutDate datatypes.Date `gorm:"not null" json:"checkOutDate"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"createdAt"`
}

func (b Booking) CheckIn() time.Time {
	return time.Time(b.CheckInDate)
}

func (b Booking) CheckOut() time.Time {
	return time.Time(b.CheckOutDate)
}

// Nights là số đêm lưu trú
func (b Booking) Nights() int {
	return int(b.CheckOut().Sub(b.CheckIn()).Hours() / 24)
}
