package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel/models"
	"hotel/repositories"
	"hotel/services/logger"
	"hotel/validator"

	"github.com/lib/pq"
)

const (
	SampleCustomerEmail    = "customer@hotel.com"
	sampleCustomerPassword = "password"
	sampleBookingRoom      = "101"
)

var sampleRooms = []models.Room{
	{RoomNumber: "101", Type: "Standard", Price: 100.00, Amenities: pq.StringArray{"WiFi", "TV", "AC", "Private bathroom"}},
	{RoomNumber: "102", Type: "Standard", Price: 100.00, Amenities: pq.StringArray{"WiFi", "TV", "AC", "Private bathroom"}},
	{RoomNumber: "201", Type: "Deluxe", Price: 150.00, Amenities: pq.StringArray{"WiFi", "TV", "AC", "Private bathroom", "Mini bar", "City view"}},
	{RoomNumber: "202", Type: "Deluxe", Price: 150.00, Amenities: pq.StringArray{"WiFi", "TV", "AC", "Private bathroom", "Mini bar", "City view"}},
	{RoomNumber: "301", Type: "Suite", Price: 250.00, Amenities: pq.StringArray{"WiFi", "TV", "AC", "Private bathroom", "Balcony", "Room service"}},
}

// SeedService tạo dữ liệu mẫu khi khởi động, chạy lại nhiều lần không tạo trùng
type SeedService struct {
	store  repositories.Store
	auth   *AuthService
	ledger *BookingService
	logger logger.Logger
	now    func() time.Time
}

type SeedServiceOptions struct {
	Store  repositories.Store
	Auth   *AuthService
	Ledger *BookingService
	Logger logger.Logger
}

func NewSeedService(opts SeedServiceOptions) *SeedService {
	return &SeedService{
		store:  opts.Store,
		auth:   opts.Auth,
		ledger: opts.Ledger,
		logger: opts.Logger,
		now:    time.Now,
	}
}

// Seed đảm bảo có tài khoản admin, các phòng mẫu và một booking mẫu đặt qua sổ đặt phòng.
// Email admin được chuẩn hóa giống SignUp/SignIn.
func (s *SeedService) Seed(ctx context.Context, adminEmail, adminPassword string) error {
	adminEmail = validator.NormalizeEmail(adminEmail)
	if _, err := s.ensureUser(ctx, "Admin User", adminEmail, adminPassword, models.RoleAdmin); err != nil {
		return err
	}

	total, _, err := s.store.Rooms().Count(ctx)
	if err != nil {
		return err
	}
	if total == 0 {
		for _, sample := range sampleRooms {
			room := sample.Clone()
			room.Available = true
			if err := s.store.Rooms().Create(ctx, &room); err != nil && !errors.Is(err, repositories.ErrDuplicate) {
				return err
			}
		}
		s.logger.Info("Sample rooms created")
	}

	bookings, err := s.store.Bookings().List(ctx)
	if err != nil {
		return err
	}
	if len(bookings) > 0 {
		return nil
	}

	customer, err := s.ensureUser(ctx, "Sample Customer", SampleCustomerEmail, sampleCustomerPassword, models.RoleCustomer)
	if err != nil {
		return err
	}
	room, err := s.findRoom(ctx, sampleBookingRoom)
	if err != nil || room == nil || !room.Available {
		return err
	}

	today := s.now()
	if _, err := s.ledger.Create(ctx, models.IdentityOf(*customer), room.ID, today.AddDate(0, 0, 1), today.AddDate(0, 0, 3)); err != nil {
		return err
	}
	s.logger.Info("Sample booking created for %s on room %s", customer.Email, room.RoomNumber)
	return nil
}

func (s *SeedService) ensureUser(ctx context.Context, name, email, password string, role models.Role) (*models.User, error) {
	user, err := s.store.Users().GetByEmail(ctx, email)
	if err == nil {
		// không tự nâng quyền một tài khoản đã tồn tại
		if user.Role != role {
			return nil, fmt.Errorf("seed account %s already exists with role %s, expected %s", email, user.Role, role)
		}
		return user, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	hashed, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user = &models.User{Name: name, Email: email, Password: hashed, Role: role}
	if err := s.store.Users().Create(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("Seeded %s account %s", role, email)
	return user, nil
}

func (s *SeedService) findRoom(ctx context.Context, number string) (*models.Room, error) {
	rooms, err := s.store.Rooms().List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range rooms {
		if rooms[i].RoomNumber == number {
			return &rooms[i], nil
		}
	}
	return nil, nil
}
