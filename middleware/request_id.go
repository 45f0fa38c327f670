package middleware

import (
	"hotel/constants"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID tạo request id nếu client chưa gửi và gán vào context
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(constants.HeaderRequestID)
		if requestID == "" || len(requestID) > 64 {
			requestID = uuid.NewString()
		}

		c.Set(constants.ContextRequestID, requestID)
		c.Writer.Header().Set(constants.HeaderRequestID, requestID)

		c.Next()
	}
}
