package controllers

import (
	"hotel/dto"
	"hotel/response"
	"hotel/services"
	"hotel/validator"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Users *services.UserService
}

func NewUserController(users *services.UserService) UserController {
	return UserController{Users: users}
}

func (u UserController) GetUsers(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	users, err := u.Users.List(c.Request.Context(), identity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToUserResponses(users))
}

func (u UserController) GetProfile(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	user, err := u.Users.Profile(c.Request.Context(), identity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToUserResponse(*user))
}

func (u UserController) ChangePassword(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, validator.FromValidationError(err))
		return
	}

	if err := u.Users.ChangePassword(c.Request.Context(), identity, req.OldPassword, req.NewPassword); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Password changed successfully")
}
