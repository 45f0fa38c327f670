package dto

import (
	"time"
)

type SignUpInput struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

type SignInInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignInResponse giữ nguyên dạng token response của frontend
type SignInResponse struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	Role        string    `json:"role"`
	ExpiresAt   time.Time `json:"expiresAt"`
}
