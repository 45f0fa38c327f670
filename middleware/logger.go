package middleware

import (
	"time"

	"hotel/constants"
	"hotel/services/logger"

	"github.com/gin-gonic/gin"
)

// RequestLogger log method, path, status và latency của mỗi request
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		format := "%s %s %d %v ip=%s rid=%s"
		args := []interface{}{
			c.Request.Method,
			c.Request.URL.Path,
			status,
			time.Since(start),
			c.ClientIP(),
			c.GetString(constants.ContextRequestID),
		}
		switch {
		case status >= 500:
			log.Error(format, args...)
		case status >= 400:
			log.Warn(format, args...)
		default:
			log.Info(format, args...)
		}
	}
}

// Recovery bắt panic trong handler và trả về 500 theo envelope chung
func Recovery(log logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error("Panic recovered on %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		abortWithServerError(c)
	})
}
