package controllers

import (
	"strings"

	"hotel/constants"
	"hotel/dto"
	apperrors "hotel/errors"
	"hotel/middleware"
	"hotel/models"
	"hotel/response"
	"hotel/services"
	"hotel/validator"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) AuthController {
	return AuthController{Auth: auth}
}

func (a AuthController) SignIn(c *gin.Context) {
	var input dto.SignInInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, validator.FromValidationError(err))
		return
	}

	result, err := a.Auth.SignIn(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.SignInResponse{
		AccessToken: result.AccessToken,
		TokenType:   strings.TrimSpace(constants.BearerPrefix),
		Role:        result.Identity.Role.String(),
		ExpiresAt:   result.ExpiresAt,
	})
}

func (a AuthController) SignUp(c *gin.Context) {
	var input dto.SignUpInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, validator.FromValidationError(err))
		return
	}

	user, err := a.Auth.SignUp(c.Request.Context(), input.Name, input.Email, input.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "User registered successfully", dto.ToUserResponse(*user))
}

// identityOrAbort lấy identity đã xác thực, trả MISSING_TOKEN nếu route thiếu AuthMiddleware
func identityOrAbort(c *gin.Context) (models.Identity, bool) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		response.Error(c, apperrors.ErrMissingToken)
		return models.Identity{}, false
	}
	return identity, true
}
