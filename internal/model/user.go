package model

import (
	"time"

	"github.com/google/uuid"
)

// Role 使用者角色
type Role string

const (
	RoleAdmin     Role = "Admin"
	RoleParkOwner Role = "ParkOwner"
	RoleKeeper    Role = "Keeper"
	RoleCustomer  Role = "Customer"
)

// IsValid 驗證角色是否有效
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleParkOwner, RoleKeeper, RoleCustomer:
		return true
	}
	return false
}

type User struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	Role      Role       `json:"role" db:"role"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time `json:"updated_at" db:"updated_at"`
}

// IsParkOwner reports whether the user may own parking lots.
func (u *User) IsParkOwner() bool {
	return u.Role == RoleParkOwner
}
