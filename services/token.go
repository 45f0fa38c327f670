package services

import (
	"errors"
	"fmt"
	"time"

	apperrors "hotel/errors"
	"hotel/models"

	"github.com/dgrijalva/jwt-go"
)

type UserInfo struct {
	UserId uint        `json:"userid"`
	Role   models.Role `json:"role"`
	Email  string      `json:"email"`
}

type Claims struct {
	UserInfo UserInfo `json:"userinfo"`
	jwt.StandardClaims
}

// TokenService ký và xác thực access token HS256, không truy cập database
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue tạo access token cho identity, trả về token và thời điểm hết hạn
func (s *TokenService) Issue(identity models.Identity) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := &Claims{
		UserInfo: UserInfo{
			UserId: identity.UserID,
			Role:   identity.Role,
			Email:  identity.Email,
		},
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: expiresAt.Unix(),
			Subject:   fmt.Sprint(identity.UserID),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Failed to sign token", err)
	}
	return signed, expiresAt, nil
}

// Parse kiểm tra chữ ký và hạn dùng rồi trả về identity
func (s *TokenService) Parse(tokenString string) (models.Identity, error) {
	if tokenString == "" {
		return models.Identity{}, apperrors.ErrMissingToken
	}

	claims := &Claims{}
	parser := &jwt.Parser{ValidMethods: []string{jwt.SigningMethodHS256.Alg()}}
	_, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		var verr *jwt.ValidationError
		if errors.As(err, &verr) &&
			verr.Errors&jwt.ValidationErrorExpired != 0 &&
			verr.Errors&jwt.ValidationErrorSignatureInvalid == 0 {
			return models.Identity{}, apperrors.ErrTokenExpired
		}
		return models.Identity{}, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Invalid token", err)
	}
	if claims.UserInfo.UserId == 0 || !claims.UserInfo.Role.Valid() {
		return models.Identity{}, apperrors.ErrInvalidToken
	}

	return models.Identity{
		UserID: claims.UserInfo.UserId,
		Email:  claims.UserInfo.Email,
		Role:   claims.UserInfo.Role,
	}, nil
}

// Authorize = Parse + RequireRole
func (s *TokenService) Authorize(tokenString string, roles ...models.Role) (models.Identity, error) {
	identity, err := s.Parse(tokenString)
	if err != nil {
		return models.Identity{}, err
	}
	if err := RequireRole(identity, roles...); err != nil {
		return models.Identity{}, err
	}
	return identity, nil
}

// RequireRole trả về Forbidden nếu identity không có role nào trong roles; roles rỗng là cho qua
func RequireRole(identity models.Identity, roles ...models.Role) error {
	if len(roles) == 0 || identity.HasRole(roles...) {
		return nil
	}
	return apperrors.ErrForbidden
}
