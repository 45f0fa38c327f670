package models

import (
	"time"

	"github.com/lib/pq"
)

type Room struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	RoomNumber string         `gorm:"uniqueIndex;type:varchar(20);not null" json:"roomNumber" validate:"required,max=20"`
	Type       string         `gorm:"type:varchar(50);not null" json:"type" validate:"required,max=50"`
	Price      float64        `gorm:"type:numeric(10,2);not null" json:"price" validate:"gte=0,lte=99999999.99"`
	Available  bool           `gorm:"not null" json:"available"`
	Amenities  pq.StringArray `gorm:"type:text[]" json:"amenities" validate:"omitempty,dive,required,max=50"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Clone trả về bản sao không chia sẻ slice amenities
func (r Room) Clone() Room {
	if r.Amenities != nil {
		r.Amenities = append(pq.StringArray(nil), r.Amenities...)
	}
	return r
}
