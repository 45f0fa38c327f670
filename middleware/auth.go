package middleware

import (
	"strings"

	"hotel/constants"
	apperrors "hotel/errors"
	"hotel/models"
	"hotel/response"

	"github.com/gin-gonic/gin"
)

// Authorizer giải mã bearer token thành identity
type Authorizer interface {
	Authorize(token string, roles ...models.Role) (models.Identity, error)
}

// AuthMiddleware yêu cầu bearer token hợp lệ. Kiểm tra role nằm ở đầu mỗi service.
func AuthMiddleware(auth Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" || !strings.HasPrefix(authHeader, constants.BearerPrefix) {
			response.Error(c, apperrors.ErrMissingToken)
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, constants.BearerPrefix))
		identity, err := auth.Authorize(tokenString)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		// Lưu identity theo giá trị vào context
		c.Set(constants.ContextIdentity, identity)
		c.Next()
	}
}

// CurrentIdentity lấy identity do AuthMiddleware gán
func CurrentIdentity(c *gin.Context) (models.Identity, bool) {
	value, exists := c.Get(constants.ContextIdentity)
	if !exists {
		return models.Identity{}, false
	}
	identity, ok := value.(models.Identity)
	return identity, ok
}

func abortWithServerError(c *gin.Context) {
	response.ServerError(c)
	c.Abort()
}
