package dto

// RoomRequest dùng cho cả thêm và cập nhật phòng (thay thế toàn bộ)
type RoomRequest struct {
	RoomNumber string   `json:"roomNumber" binding:"required,max=20"`
	Type       string   `json:"type" binding:"required,max=50"`
	Price      *float64 `json:"price" binding:"required,gte=0,lte=99999999.99"`
	Available  *bool    `json:"available"`
	Amenities  []string `json:"amenities" binding:"omitempty,dive,required,max=50"`
}

// RoomCounts là số phòng trống trên tổng số phòng
type RoomCounts struct {
	Total     int64 `json:"total"`
	Available int64 `json:"available"`
}
