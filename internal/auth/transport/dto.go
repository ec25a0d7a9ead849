package transport

import (
	"time"

	"github.com/google/uuid"
)

// RegisterRequest provisions a new salon together with its admin account.
type RegisterRequest struct {
	SalonName string  `json:"salonName" binding:"required"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required" validate:"strongpassword"`
	FirstName string  `json:"firstName" binding:"required"`
	LastName  string  `json:"lastName" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required" validate:"strongpassword"`
}

// CreateUserRequest adds a staff login, optionally linked to an employee
// record so ownership-scoped permissions apply.
type CreateUserRequest struct {
	Email      string     `json:"email" binding:"required,email"`
	Password   string     `json:"password" binding:"required" validate:"strongpassword"`
	Role       string     `json:"role" binding:"required,oneof=ADMIN COIFFEUR RECEPTIONNISTE"`
	FirstName  string     `json:"firstName" binding:"required"`
	LastName   string     `json:"lastName" binding:"required"`
	EmployeeID *uuid.UUID `json:"employeeId,omitempty"`
}

type UserResponse struct {
	ID         uuid.UUID  `json:"id"`
	SalonID    uuid.UUID  `json:"salonId"`
	EmployeeID *uuid.UUID `json:"employeeId,omitempty"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	FirstName  string     `json:"firstName"`
	LastName   string     `json:"lastName"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type AuthResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         UserResponse `json:"user"`
}
