package user

import (
	"time"

	domain "instantcredit-backend/internal/domain/user"
)

type CreateInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// UpdateInput uses pointers so absent fields are left untouched.
type UpdateInput struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	IsActive  *bool   `json:"is_active"`
}

type UserDTO struct {
	UserID          string    `json:"user_id"`
	Email           string    `json:"email"`
	Role            string    `json:"role"`
	FirstName       string    `json:"first_name,omitempty"`
	LastName        string    `json:"last_name,omitempty"`
	Phone           string    `json:"phone,omitempty"`
	IsEmailVerified bool      `json:"is_email_verified"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}

func toDTO(u *domain.User) *UserDTO {
	return &UserDTO{
		UserID:          u.UserID,
		Email:           u.Email,
		Role:            string(u.Role),
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Phone:           u.Phone,
		IsEmailVerified: u.IsEmailVerified,
		IsActive:        u.IsActive,
		CreatedAt:       u.CreatedAt,
	}
}
