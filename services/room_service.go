package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hotel/constants"
	"hotel/dto"
	apperrors "hotel/errors"
	"hotel/models"
	"hotel/repositories"
	"hotel/services/logger"
	"hotel/validator"

	"github.com/lib/pq"
)

// RoomInput là dữ liệu thêm/cập nhật phòng. Available nil nghĩa là giữ nguyên cờ hiện tại.
type RoomInput struct {
	RoomNumber string
	Type       string
	Price      float64
	Available  *bool
	Amenities  []string
}

type RoomService struct {
	store  repositories.Store
	cache  *RoomCache
	logger logger.Logger
}

type RoomServiceOptions struct {
	Store  repositories.Store
	Cache  *RoomCache
	Logger logger.Logger
}

func NewRoomService(opts RoomServiceOptions) *RoomService {
	return &RoomService{
		store:  opts.Store,
		cache:  opts.Cache,
		logger: opts.Logger,
	}
}

func (s *RoomService) List(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	slot, hit := s.cache.Lookup(ctx, constants.CacheKeyRoomsAll, &rooms)
	if hit {
		return rooms, nil
	}
	rooms, err := s.store.Rooms().List(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to load rooms", err)
	}
	s.cache.Store(ctx, slot, rooms)
	return rooms, nil
}

func (s *RoomService) ListAvailable(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	slot, hit := s.cache.Lookup(ctx, constants.CacheKeyRoomsAvailable, &rooms)
	if hit {
		return rooms, nil
	}
	rooms, err := s.store.Rooms().ListByAvailability(ctx, true)
	if err != nil {
		return nil, apperrors.Internal("Failed to load available rooms", err)
	}
	s.cache.Store(ctx, slot, rooms)
	return rooms, nil
}

func (s *RoomService) Get(ctx context.Context, id uint) (*models.Room, error) {
	room, err := s.store.Rooms().Get(ctx, id)
	if err != nil {
		return nil, roomLookupError(err)
	}
	return room, nil
}

// Counts trả về tổng số phòng và số phòng trống
func (s *RoomService) Counts(ctx context.Context) (dto.RoomCounts, error) {
	var counts dto.RoomCounts
	slot, hit := s.cache.Lookup(ctx, constants.CacheKeyRoomCounts, &counts)
	if hit {
		return counts, nil
	}
	total, available, err := s.store.Rooms().Count(ctx)
	if err != nil {
		return counts, apperrors.Internal("Failed to count rooms", err)
	}
	counts = dto.RoomCounts{Total: total, Available: available}
	s.cache.Store(ctx, slot, counts)
	return counts, nil
}

// Add tạo phòng mới, phòng mới luôn ở trạng thái trống
func (s *RoomService) Add(ctx context.Context, identity models.Identity, input RoomInput) (*models.Room, error) {
	if err := RequireRole(identity, models.RoleAdmin); err != nil {
		return nil, err
	}
	if input.Available != nil && !*input.Available {
		return nil, apperrors.Validation("A new room cannot be created as reserved")
	}

	room := &models.Room{Available: true}
	applyRoomInput(room, input)
	if err := validator.ValidateRoom(room); err != nil {
		return nil, err
	}

	if err := s.store.Rooms().Create(ctx, room); err != nil {
		return nil, roomWriteError(err, room.RoomNumber)
	}

	s.cache.Invalidate(ctx)
	s.logger.Info("Admin %d added room %s (id %d)", identity.UserID, room.RoomNumber, room.ID)
	return room, nil
}

// Update thay thế số phòng, loại, giá và tiện nghi. Cờ available chỉ được gửi lên nếu khớp với booking hiện có.
func (s *RoomService) Update(ctx context.Context, identity models.Identity, id uint, input RoomInput) (*models.Room, error) {
	if err := RequireRole(identity, models.RoleAdmin); err != nil {
		return nil, err
	}

	var updated *models.Room
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		room, err := tx.Rooms().GetForUpdate(ctx, id)
		if err != nil {
			return roomLookupError(err)
		}

		if input.Available != nil && *input.Available != room.Available {
			if *input.Available {
				return apperrors.NewAppError(apperrors.ErrCodeRoomUnavailable,
					fmt.Sprintf("Room %s is held by a booking; cancel the booking to release it", room.RoomNumber), nil)
			}
			return apperrors.Validation("A room can only become reserved through a booking")
		}

		applyRoomInput(room, input)
		if err := validator.ValidateRoom(room); err != nil {
			return err
		}
		if err := tx.Rooms().Update(ctx, room); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return apperrors.ErrRoomNotFound
			}
			return roomWriteError(err, room.RoomNumber)
		}
		updated = room
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	s.logger.Info("Admin %d updated room %d", identity.UserID, id)
	return updated, nil
}

// Delete xóa phòng, không cho xóa khi phòng đang có booking
func (s *RoomService) Delete(ctx context.Context, identity models.Identity, id uint) error {
	if err := RequireRole(identity, models.RoleAdmin); err != nil {
		return err
	}

	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		room, err := tx.Rooms().GetForUpdate(ctx, id)
		if err != nil {
			return roomLookupError(err)
		}
		bookings, err := tx.Bookings().ListByRoom(ctx, id)
		if err != nil {
			return apperrors.Internal("Failed to load bookings", err)
		}
		if !room.Available || len(bookings) > 0 {
			return apperrors.NewAppError(apperrors.ErrCodeRoomUnavailable,
				fmt.Sprintf("Room %s has an active booking and cannot be deleted", room.RoomNumber), nil)
		}
		if err := tx.Rooms().Delete(ctx, id); err != nil {
			return roomLookupError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate(ctx)
	s.logger.Info("Admin %d deleted room %d", identity.UserID, id)
	return nil
}

func applyRoomInput(room *models.Room, input RoomInput) {
	room.RoomNumber = strings.TrimSpace(input.RoomNumber)
	room.Type = strings.TrimSpace(input.Type)
	room.Price = input.Price
	room.Amenities = nil
	for _, a := range input.Amenities {
		room.Amenities = append(room.Amenities, strings.TrimSpace(a))
	}
	if room.Amenities == nil {
		room.Amenities = pq.StringArray{}
	}
}

func roomLookupError(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperrors.ErrRoomNotFound
	}
	return apperrors.Internal("Failed to load room", err)
}

func roomWriteError(err error, number string) error {
	if errors.Is(err, repositories.ErrDuplicate) {
		return apperrors.NewAppError(apperrors.ErrCodeRoomNumberExists,
			fmt.Sprintf("Room number %s already exists", number), nil)
	}
	return apperrors.Internal("Failed to save room", err)
}
