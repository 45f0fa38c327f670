package models

import (
	"time"
)

// Role xác định quyền của người dùng
type Role int

const (
	RoleCustomer Role = 0
	RoleAdmin    Role = 1
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "ROLE_ADMIN"
	case RoleCustomer:
		return "ROLE_CUSTOMER"
	default:
		return "ROLE_UNKNOWN"
	}
}

// Valid kiểm tra role có thuộc tập giá trị hợp lệ
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	Name      string    `gorm:"not null" json:"name" validate:"required,max=100"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email" validate:"required,email"`
	Password  string    `gorm:"not null" json:"-"`
	Role      Role      `gorm:"default:0;not null" json:"role"`
}

// Identity là thông tin người gọi đã xác thực, truyền theo giá trị trong mỗi request
type Identity struct {
	UserID uint
	Email  string
	Role   Role
}

// HasRole trả về true nếu identity có một trong các role yêu cầu
func (i Identity) HasRole(roles ...Role) bool {
	for _, role := range roles {
		if i.Role == role {
			return true
		}
	}
	return false
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// IdentityOf dựng Identity từ bản ghi User
func IdentityOf(user User) Identity {
	return Identity{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}
}
