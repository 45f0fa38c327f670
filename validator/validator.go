package validator

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"hotel/constants"
	apperrors "hotel/errors"
	"hotel/models"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// NormalizeEmail bỏ khoảng trắng và viết thường
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail kiểm tra email hợp lệ
func ValidateEmail(email string) error {
	if err := instance().Var(email, "required,email"); err != nil {
		return apperrors.Validation("Invalid email address")
	}
	return nil
}

// ValidatePassword kiểm tra độ dài mật khẩu, bcrypt chỉ dùng 72 byte đầu
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return apperrors.Validation("Password must be at least 6 characters")
	}
	if len(password) > 72 {
		return apperrors.Validation("Password must be at most 72 bytes")
	}
	return nil
}

// ValidateUser validate thông tin user trước khi lưu
func ValidateUser(user *models.User) error {
	if err := instance().Struct(user); err != nil {
		return FromValidationError(err)
	}
	if !user.Role.Valid() {
		return apperrors.Validation("Invalid role")
	}
	return nil
}

// ValidateRoom validate số phòng, loại, giá và tiện nghi
func ValidateRoom(room *models.Room) error {
	if err := instance().Struct(room); err != nil {
		return FromValidationError(err)
	}
	return nil
}

// ParseDate đọc ngày theo DateLayout
func ParseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(constants.DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, apperrors.NewAppError(apperrors.ErrCodeValidation,
			fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field), err)
	}
	return t, nil
}

// ValidateStay yêu cầu ngày nhận phòng trước ngày trả phòng, so theo ngày (giờ bị bỏ qua)
func ValidateStay(checkIn, checkOut time.Time) error {
	if checkIn.IsZero() || checkOut.IsZero() {
		return apperrors.Validation("Check-in and check-out dates are required")
	}
	if !StayDay(checkIn).Before(StayDay(checkOut)) {
		return apperrors.Validation("Check-in date must be before check-out date")
	}
	return nil
}

// StayDay cắt thời điểm về 00:00 UTC của ngày đó, đúng như ngày được lưu trong booking
func StayDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FromValidationError chuyển lỗi của go-playground/validator (kể cả lỗi binding của gin) thành VALIDATION_ERROR
func FromValidationError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewAppError(apperrors.ErrCodeValidation, "Invalid request body", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return apperrors.NewAppError(apperrors.ErrCodeValidation, strings.Join(msgs, "; "), err)
}

func describe(fe validator.FieldError) string {
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
