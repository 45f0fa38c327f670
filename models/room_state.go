package models

import (
	apperrors "hotel/errors"
)

// RoomState định nghĩa các chuyển trạng thái của phòng trong sổ đặt phòng
type RoomState interface {
	Name() string
	Reserve(room *Room) error
	Release(room *Room) error
}

// AvailableState phòng đang trống, có thể đặt
type AvailableState struct{}

func (s *AvailableState) Name() string { return "Available" }

func (s *AvailableState) Reserve(room *Room) error {
	room.Available = false
	return nil
}

// Release trên phòng trống là idempotent, phòng vẫn ở trạng thái available = true
func (s *AvailableState) Release(room *Room) error {
	room.Available = true
	return nil
}

// ReservedState phòng đang được giữ bởi đúng một booking
type ReservedState struct{}

func (s *ReservedState) Name() string { return "Reserved" }

func (s *ReservedState) Reserve(room *Room) error {
	return apperrors.NewAppError(apperrors.ErrCodeRoomUnavailable, "Room "+room.RoomNumber+" is not available", nil)
}

func (s *ReservedState) Release(room *Room) error {
	room.Available = true
	return nil
}

// GetRoomState trả về state tương ứng với cờ available của phòng
func GetRoomState(room *Room) RoomState {
	if room.Available {
		return &AvailableState{}
	}
	return &ReservedState{}
}
