package response

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "hotel/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		code   apperrors.ErrorCode
		status int
	}{
		{apperrors.ErrCodeRoomNotFound, http.StatusNotFound},
		{apperrors.ErrCodeBookingNotFound, http.StatusNotFound},
		{apperrors.ErrCodeUserNotFound, http.StatusUnauthorized},
		{apperrors.ErrCodeInvalidCredentials, http.StatusUnauthorized},
		{apperrors.ErrCodeTokenExpired, http.StatusUnauthorized},
		{apperrors.ErrCodeForbidden, http.StatusForbidden},
		{apperrors.ErrCodeRoomUnavailable, http.StatusConflict},
		{apperrors.ErrCodeEmailRegistered, http.StatusConflict},
		{apperrors.ErrCodeRoomNumberExists, http.StatusConflict},
		{apperrors.ErrCodeValidation, http.StatusBadRequest},
		{apperrors.ErrCodeDBError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.status, StatusOf(tt.code))
		})
	}
}

func TestErrorEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, fmt.Errorf("cancel: %w", apperrors.ErrBookingNotFound))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"code":0,"mess":"Booking not found","error":"BOOKING_NOT_FOUND"}`, w.Body.String())
}

func TestErrorHidesInternalDetails(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, apperrors.Internal("Failed to load rooms", errors.New("pq: password authentication failed")))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "pq:")
}
