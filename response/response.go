package response

import (
	"net/http"

	apperrors "hotel/errors"

	"github.com/gin-gonic/gin"
)

// Response định nghĩa cấu trúc response
type Response struct {
	Code  int         `json:"code"`
	Mess  string      `json:"mess"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Success trả về response thành công
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: "Success",
		Data: data,
	})
}

// Created trả về 201 cho tài nguyên mới
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code: 1,
		Mess: message,
		Data: data,
	})
}

// Message trả về response thành công chỉ có thông điệp
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: message,
	})
}

// StatusOf ánh xạ mã lỗi sang HTTP status
func StatusOf(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeRoomNotFound, apperrors.ErrCodeBookingNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeUserNotFound, apperrors.ErrCodeInvalidCredentials,
		apperrors.ErrCodeInvalidToken, apperrors.ErrCodeTokenExpired, apperrors.ErrCodeMissingToken:
		return http.StatusUnauthorized
	case apperrors.ErrCodeForbidden:
		return http.StatusForbidden
	case apperrors.ErrCodeEmailRegistered, apperrors.ErrCodeRoomUnavailable, apperrors.ErrCodeRoomNumberExists:
		return http.StatusConflict
	case apperrors.ErrCodeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error trả về response lỗi theo AppError; lỗi không xác định thành 500 và không lộ chi tiết
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	if appErr == nil {
		ServerError(c)
		return
	}
	status := StatusOf(appErr.Code)
	if status == http.StatusInternalServerError {
		ServerError(c)
		return
	}
	c.JSON(status, Response{
		Code:  0,
		Mess:  appErr.Message,
		Error: string(appErr.Code),
	})
}

// ServerError trả về response lỗi server
func ServerError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, Response{
		Code:  0,
		Mess:  "Internal server error",
		Error: "INTERNAL_ERROR",
	})
}

// NotFound trả về response không tìm thấy route
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, Response{
		Code:  0,
		Mess:  "Not found",
		Error: "NOT_FOUND",
	})
}
