package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool { return r == RoleCustomer || r == RoleAdmin }

type User struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	UserID string `gorm:"column:user_id;type:char(32);not null;uniqueIndex:ux_users_user_id" json:"user_id"`
	Email  string `gorm:"column:email;size:255;not null;uniqueIndex:ux_users_email" json:"email"`
	// bcrypt hash, never serialized
	PasswordHash    string    `gorm:"column:password_hash;size:60;not null" json:"-"`
	Role            Role      `gorm:"column:role;size:16;default:'customer'" json:"role"`
	FirstName       string    `gorm:"column:first_name;size:100" json:"first_name,omitempty"`
	LastName        string    `gorm:"column:last_name;size:100" json:"last_name,omitempty"`
	Phone           string    `gorm:"column:phone;size:32" json:"phone,omitempty"`
	IsEmailVerified bool      `gorm:"column:is_email_verified;default:false" json:"is_email_verified"`
	IsActive        bool      `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }
