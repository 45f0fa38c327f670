package repositories

import (
	"context"
	"errors"

	"hotel/models"
)

var (
	// ErrNotFound bản ghi không tồn tại
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate vi phạm ràng buộc unique (email, room number)
	ErrDuplicate = errors.New("duplicate record")
	// ErrConflict cập nhật có điều kiện không khớp dòng nào
	ErrConflict = errors.New("conditional update matched no rows")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
}

type RoomRepository interface {
	List(ctx context.Context) ([]models.Room, error)
	ListByAvailability(ctx context.Context, available bool) ([]models.Room, error)
	Get(ctx context.Context, id uint) (*models.Room, error)
	// GetForUpdate khóa dòng của phòng đến hết transaction hiện tại
	GetForUpdate(ctx context.Context, id uint) (*models.Room, error)
	Create(ctx context.Context, room *models.Room) error
	Update(ctx context.Context, room *models.Room) error
	// SetAvailability chỉ ghi khi cờ hiện tại khác giá trị mới, trả về ErrConflict nếu không có dòng nào đổi
	SetAvailability(ctx context.Context, id uint, available bool) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (total int64, available int64, err error)
}

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	Get(ctx context.Context, id uint) (*models.Booking, error)
	GetForUpdate(ctx context.Context, id uint) (*models.Booking, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]models.Booking, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Booking, error)
	ListByRoom(ctx context.Context, roomID uint) ([]models.Booking, error)
}

// Store gom các repository và ranh giới transaction
type Store interface {
	Users() UserRepository
	Rooms() RoomRepository
	Bookings() BookingRepository
	// Transaction commit nếu fn trả về nil, rollback toàn bộ nếu có lỗi
	Transaction(ctx context.Context, fn func(tx Store) error) error
}
