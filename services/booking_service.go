package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel/builders"
	apperrors "hotel/errors"
	"hotel/models"
	"hotel/repositories"
	"hotel/services/logger"
	"hotel/services/notification"
	"hotel/validator"
)

// BookingService là sổ đặt phòng: mỗi booking còn sống giữ đúng một phòng ở trạng thái Reserved.
// Mọi thay đổi cờ phòng và bản ghi booking nằm chung một transaction.
type BookingService struct {
	store    repositories.Store
	cache    *RoomCache
	notifier notification.Service
	logger   logger.Logger
}

type BookingServiceOptions struct {
	Store    repositories.Store
	Cache    *RoomCache
	Notifier notification.Service
	Logger   logger.Logger
}

func NewBookingService(opts BookingServiceOptions) *BookingService {
	return &BookingService{
		store:    opts.Store,
		cache:    opts.Cache,
		notifier: opts.Notifier,
		logger:   opts.Logger,
	}
}

// Create đặt phòng cho identity. Phòng phải đang trống; kiểm tra và lật cờ diễn ra dưới khóa dòng của phòng.
func (s *BookingService) Create(ctx context.Context, identity models.Identity, roomID uint, checkIn, checkOut time.Time) (*models.Booking, error) {
	if err := RequireRole(identity, models.RoleCustomer, models.RoleAdmin); err != nil {
		return nil, err
	}
	if err := validator.ValidateStay(checkIn, checkOut); err != nil {
		return nil, err
	}

	var (
		booking *models.Booking
		room    *models.Room
	)
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		var err error
		room, err = tx.Rooms().GetForUpdate(ctx, roomID)
		if err != nil {
			return roomLookupError(err)
		}

		if err := models.GetRoomState(room).Reserve(room); err != nil {
			return err
		}
		if err := tx.Rooms().SetAvailability(ctx, room.ID, false); err != nil {
			if errors.Is(err, repositories.ErrConflict) {
				return unavailable(room)
			}
			return apperrors.Internal("Failed to reserve room", err)
		}

		booking = builders.NewBookingBuilder().
			WithUser(identity.UserID).
			WithRoom(room.ID).
			WithStay(checkIn, checkOut).
			Build()
		if err := tx.Bookings().Create(ctx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		if apperrors.CodeOf(err) == apperrors.ErrCodeRoomUnavailable {
			s.logger.Info("User %d could not book room %d: already reserved", identity.UserID, roomID)
		}
		return nil, err
	}

	s.afterCommit(ctx, notification.Reserved().Room(room.ID, room.RoomNumber).Booking(booking.ID).Build())
	s.logger.Info("User %d booked room %s (booking %d)", identity.UserID, room.RoomNumber, booking.ID)
	return booking, nil
}

// Cancel xóa booking và trả phòng về trạng thái trống. Chỉ chủ booking hoặc Admin được hủy.
func (s *BookingService) Cancel(ctx context.Context, identity models.Identity, bookingID uint) error {
	if err := RequireRole(identity, models.RoleCustomer, models.RoleAdmin); err != nil {
		return err
	}

	var room *models.Room
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		booking, err := tx.Bookings().GetForUpdate(ctx, bookingID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return apperrors.ErrBookingNotFound
			}
			return apperrors.Internal("Failed to load booking", err)
		}
		if booking.UserID != identity.UserID && !identity.IsAdmin() {
			return apperrors.ErrForbidden
		}

		room, err = tx.Rooms().GetForUpdate(ctx, booking.RoomID)
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			room = nil
		case err != nil:
			return apperrors.Internal("Failed to load room", err)
		case !room.Available:
			if err := models.GetRoomState(room).Release(room); err != nil {
				return err
			}
			if err := tx.Rooms().SetAvailability(ctx, room.ID, true); err != nil {
				return apperrors.Internal("Failed to release room", err)
			}
		}

		if err := tx.Bookings().Delete(ctx, booking.ID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return apperrors.ErrBookingNotFound
			}
			return apperrors.Internal("Failed to delete booking", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if room != nil {
		s.afterCommit(ctx, notification.Released().Room(room.ID, room.RoomNumber).Booking(bookingID).Build())
	} else {
		s.cache.Invalidate(ctx)
	}
	s.logger.Info("User %d cancelled booking %d", identity.UserID, bookingID)
	return nil
}

// ListForUser trả về booking của chính identity
func (s *BookingService) ListForUser(ctx context.Context, identity models.Identity) ([]models.Booking, error) {
	if err := RequireRole(identity, models.RoleCustomer, models.RoleAdmin); err != nil {
		return nil, err
	}
	bookings, err := s.store.Bookings().ListByUser(ctx, identity.UserID)
	if err != nil {
		return nil, apperrors.Internal("Failed to load bookings", err)
	}
	return bookings, nil
}

// ListAll chỉ dành cho Admin
func (s *BookingService) ListAll(ctx context.Context, identity models.Identity) ([]models.Booking, error) {
	if err := RequireRole(identity, models.RoleAdmin); err != nil {
		return nil, err
	}
	bookings, err := s.store.Bookings().List(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to load bookings", err)
	}
	return bookings, nil
}

// Mismatch là một phòng có cờ available không khớp với số booking còn sống
type Mismatch struct {
	RoomID     uint
	RoomNumber string
	Available  bool
	Bookings   int
}

func (m Mismatch) String() string {
	return fmt.Sprintf("room %s (id %d): available=%t with %d live booking(s)", m.RoomNumber, m.RoomID, m.Available, m.Bookings)
}

// Audit đối chiếu cờ phòng với booking, chỉ đọc và báo cáo
func (s *BookingService) Audit(ctx context.Context) ([]Mismatch, error) {
	var mismatches []Mismatch
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		rooms, err := tx.Rooms().List(ctx)
		if err != nil {
			return err
		}
		bookings, err := tx.Bookings().List(ctx)
		if err != nil {
			return err
		}

		held := make(map[uint]int, len(bookings))
		for _, b := range bookings {
			held[b.RoomID]++
		}
		for _, room := range rooms {
			n := held[room.ID]
			if (room.Available && n == 0) || (!room.Available && n == 1) {
				continue
			}
			mismatches = append(mismatches, Mismatch{
				RoomID:     room.ID,
				RoomNumber: room.RoomNumber,
				Available:  room.Available,
				Bookings:   n,
			})
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Internal("Failed to audit bookings", err)
	}
	return mismatches, nil
}

func (s *BookingService) afterCommit(ctx context.Context, message string) {
	s.cache.Invalidate(ctx)
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SendMessage(message); err != nil {
		s.logger.Warn("Failed to broadcast room event: %v", err)
	}
}

func unavailable(room *models.Room) error {
	return apperrors.NewAppError(apperrors.ErrCodeRoomUnavailable,
		fmt.Sprintf("Room %s is not available", room.RoomNumber), nil)
}
