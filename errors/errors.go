package errors

import (
	"errors"
	"fmt"
)

// ErrorCode định danh loại lỗi trả về cho client
type ErrorCode string

const (
	// Auth errors
	ErrCodeUserNotFound       ErrorCode = "USER_NOT_FOUND"
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeEmailRegistered    ErrorCode = "EMAIL_ALREADY_REGISTERED"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
	ErrCodeMissingToken       ErrorCode = "MISSING_TOKEN"
	ErrCodeForbidden          ErrorCode = "FORBIDDEN"

	// Room errors
	ErrCodeRoomNotFound     ErrorCode = "ROOM_NOT_FOUND"
	ErrCodeRoomUnavailable  ErrorCode = "ROOM_UNAVAILABLE"
	ErrCodeRoomNumberExists ErrorCode = "ROOM_NUMBER_EXISTS"

	// Booking errors
	ErrCodeBookingNotFound ErrorCode = "BOOKING_NOT_FOUND"

	// Database errors
	ErrCodeDBError ErrorCode = "DB_ERROR"

	// Validation errors
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
)

// AppError là lỗi nghiệp vụ mang mã lỗi và thông điệp cho người dùng
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is so khớp theo mã lỗi, message có thể khác nhau
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// NewAppError tạo một AppError mới
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation tạo lỗi dữ liệu đầu vào
func Validation(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, nil)
}

// Internal bọc lỗi hạ tầng (database, cache...) thành DB_ERROR
func Internal(message string, err error) *AppError {
	return NewAppError(ErrCodeDBError, message, err)
}

// IsAppError kiểm tra xem error có phải là AppError không
func IsAppError(err error) bool {
	return GetAppError(err) != nil
}

// GetAppError lấy AppError từ chuỗi lỗi
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// CodeOf trả về mã lỗi, rỗng nếu err không phải AppError
func CodeOf(err error) ErrorCode {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code
	}
	return ""
}

var (
	ErrUserNotFound       = NewAppError(ErrCodeUserNotFound, "User not found", nil)
	ErrInvalidCredentials = NewAppError(ErrCodeInvalidCredentials, "Invalid email or password", nil)
	ErrEmailRegistered    = NewAppError(ErrCodeEmailRegistered, "Email address already in use", nil)
	ErrInvalidToken       = NewAppError(ErrCodeInvalidToken, "Invalid token", nil)
	ErrTokenExpired       = NewAppError(ErrCodeTokenExpired, "Token has expired", nil)
	ErrMissingToken       = NewAppError(ErrCodeMissingToken, "Missing bearer token", nil)
	ErrForbidden          = NewAppError(ErrCodeForbidden, "Access denied", nil)

	ErrRoomNotFound     = NewAppError(ErrCodeRoomNotFound, "Room not found", nil)
	ErrRoomUnavailable  = NewAppError(ErrCodeRoomUnavailable, "Room not available", nil)
	ErrRoomNumberExists = NewAppError(ErrCodeRoomNumberExists, "Room number already exists", nil)

	ErrBookingNotFound = NewAppError(ErrCodeBookingNotFound, "Booking not found", nil)
)
