package services

import (
	"context"
	"errors"
	"strings"
	"time"

	apperrors "hotel/errors"
	"hotel/models"
	"hotel/repositories"
	"hotel/services/logger"
	"hotel/validator"

	"golang.org/x/crypto/bcrypt"
)

// SignInResult là token đã ký cùng role của user
type SignInResult struct {
	AccessToken string
	ExpiresAt   time.Time
	Identity    models.Identity
}

type AuthService struct {
	store    repositories.Store
	logger   logger.Logger
	tokens   *TokenService
	hashCost int
}

type AuthServiceOptions struct {
	Store    repositories.Store
	Logger   logger.Logger
	Tokens   *TokenService
	HashCost int
}

func NewAuthService(opts AuthServiceOptions) *AuthService {
	cost := opts.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &AuthService{
		store:    opts.Store,
		logger:   opts.Logger,
		tokens:   opts.Tokens,
		hashCost: cost,
	}
}

// HashPassword băm mật khẩu bằng bcrypt
func (s *AuthService) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return "", apperrors.NewAppError(apperrors.ErrCodeValidation, "Failed to hash password", err)
	}
	return string(hashed), nil
}

// SignUp tạo tài khoản Customer, role luôn là Customer
func (s *AuthService) SignUp(ctx context.Context, name, email, password string) (*models.User, error) {
	email = validator.NormalizeEmail(email)
	if err := validator.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validator.ValidatePassword(password); err != nil {
		return nil, err
	}

	user := &models.User{
		Name:  strings.TrimSpace(name),
		Email: email,
		Role:  models.RoleCustomer,
	}
	if err := validator.ValidateUser(user); err != nil {
		return nil, err
	}

	_, err := s.store.Users().GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, apperrors.ErrEmailRegistered
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, apperrors.Internal("Failed to look up user", err)
	}

	hashed, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user.Password = hashed

	if err := s.store.Users().Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperrors.ErrEmailRegistered
		}
		return nil, apperrors.Internal("Failed to create user", err)
	}

	s.logger.Info("Registered user %d (%s)", user.ID, user.Email)
	return user, nil
}

// SignIn kiểm tra email/mật khẩu và cấp access token
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	email = validator.NormalizeEmail(email)

	user, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.logger.Debug("Sign-in for unknown email %s", email)
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Internal("Failed to look up user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.logger.Warn("Invalid password for user %d", user.ID)
		return nil, apperrors.ErrInvalidCredentials
	}

	identity := models.IdentityOf(*user)
	token, expiresAt, err := s.tokens.Issue(identity)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User %d signed in as %s", user.ID, user.Role)
	return &SignInResult{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		Identity:    identity,
	}, nil
}

// Authorize giải mã token của request, dùng cho middleware
func (s *AuthService) Authorize(token string, roles ...models.Role) (models.Identity, error) {
	return s.tokens.Authorize(token, roles...)
}
