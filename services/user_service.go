package services

import (
	"context"
	"errors"

	apperrors "hotel/errors"
	"hotel/models"
	"hotel/repositories"
	"hotel/services/logger"
	"hotel/validator"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	store  repositories.Store
	logger logger.Logger
	auth   *AuthService
}

type UserServiceOptions struct {
	Store  repositories.Store
	Logger logger.Logger
	Auth   *AuthService
}

func NewUserService(opts UserServiceOptions) *UserService {
	return &UserService{
		store:  opts.Store,
		logger: opts.Logger,
		auth:   opts.Auth,
	}
}

// Profile trả về user của identity hiện tại
func (s *UserService) Profile(ctx context.Context, identity models.Identity) (*models.User, error) {
	user, err := s.store.Users().GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Internal("Failed to load user", err)
	}
	return user, nil
}

// ChangePassword là thay đổi duy nhất được phép trên user
func (s *UserService) ChangePassword(ctx context.Context, identity models.Identity, oldPassword, newPassword string) error {
	if err := validator.ValidatePassword(newPassword); err != nil {
		return err
	}
	user, err := s.Profile(ctx, identity)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return apperrors.ErrInvalidCredentials
	}

	hashed, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.store.Users().UpdatePassword(ctx, user.ID, hashed); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.Internal("Failed to update password", err)
	}

	s.logger.Info("User %d changed password", user.ID)
	return nil
}

// List chỉ dành cho Admin
func (s *UserService) List(ctx context.Context, identity models.Identity) ([]models.User, error) {
	if err := RequireRole(identity, models.RoleAdmin); err != nil {
		return nil, err
	}
	users, err := s.store.Users().List(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to load users", err)
	}
	return users, nil
}
