package repositories

import (
	"context"
	"errors"

	"hotel/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore triển khai Store trên gorm (PostgreSQL)
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// AutoMigrate tạo/cập nhật bảng users, rooms, bookings
func (s *GormStore) AutoMigrate() error {
	return s.db.AutoMigrate(&models.User{}, &models.Room{}, &models.Booking{})
}

func (s *GormStore) Users() UserRepository {
	return &gormUserRepository{db: s.db}
}

func (s *GormStore) Rooms() RoomRepository {
	return &gormRoomRepository{db: s.db}
}

func (s *GormStore) Bookings() BookingRepository {
	return &gormBookingRepository{db: s.db}
}

func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}

type gormUserRepository struct {
	db *gorm.DB
}

func (r *gormUserRepository) Create(ctx context.Context, user *models.User) error {
	return translateError(r.db.WithContext(ctx).Create(user).Error)
}

func (r *gormUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *gormUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *gormUserRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, translateError(err)
	}
	return users, nil
}

func (r *gormUserRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("password", passwordHash)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type gormRoomRepository struct {
	db *gorm.DB
}

func (r *gormRoomRepository) List(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rooms).Error; err != nil {
		return nil, translateError(err)
	}
	return rooms, nil
}

func (r *gormRoomRepository) ListByAvailability(ctx context.Context, available bool) ([]models.Room, error) {
	var rooms []models.Room
	if err := r.db.WithContext(ctx).Where("available = ?", available).Order("id ASC").Find(&rooms).Error; err != nil {
		return nil, translateError(err)
	}
	return rooms, nil
}

func (r *gormRoomRepository) Get(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).First(&room, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &room, nil
}

// GetForUpdate: SELECT ... FOR UPDATE, chỉ có tác dụng bên trong Transaction
func (r *gormRoomRepository) GetForUpdate(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&room, id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &room, nil
}

func (r *gormRoomRepository) Create(ctx context.Context, room *models.Room) error {
	return translateError(r.db.WithContext(ctx).Create(room).Error)
}

func (r *gormRoomRepository) Update(ctx context.Context, room *models.Room) error {
	result := r.db.WithContext(ctx).Model(&models.Room{}).Where("id = ?", room.ID).Updates(map[string]interface{}{
		"room_number": room.RoomNumber,
		"type":        room.Type,
		"price":       room.Price,
		"available":   room.Available,
		"amenities":   room.Amenities,
	})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormRoomRepository) SetAvailability(ctx context.Context, id uint, available bool) error {
	result := r.db.WithContext(ctx).Model(&models.Room{}).
		Where("id = ? AND available = ?", id, !available).
		Update("available", available)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}

func (r *gormRoomRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Room{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormRoomRepository) Count(ctx context.Context) (int64, int64, error) {
	var total, available int64
	if err := r.db.WithContext(ctx).Model(&models.Room{}).Count(&total).Error; err != nil {
		return 0, 0, translateError(err)
	}
	if err := r.db.WithContext(ctx).Model(&models.Room{}).Where("available = ?", true).Count(&available).Error; err != nil {
		return 0, 0, translateError(err)
	}
	return total, available, nil
}

type gormBookingRepository struct {
	db *gorm.DB
}

func (r *gormBookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	return translateError(r.db.WithContext(ctx).Create(booking).Error)
}

func (r *gormBookingRepository) Get(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &booking, nil
}

func (r *gormBookingRepository) GetForUpdate(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&booking, id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &booking, nil
}

func (r *gormBookingRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Booking{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormBookingRepository) List(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&bookings).Error; err != nil {
		return nil, translateError(err)
	}
	return bookings, nil
}

func (r *gormBookingRepository) ListByUser(ctx context.Context, userID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&bookings).Error; err != nil {
		return nil, translateError(err)
	}
	return bookings, nil
}

func (r *gormBookingRepository) ListByRoom(ctx context.Context, roomID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.db.WithContext(ctx).Where("room_id = ?", roomID).Order("id ASC").Find(&bookings).Error; err != nil {
		return nil, translateError(err)
	}
	return bookings, nil
}
