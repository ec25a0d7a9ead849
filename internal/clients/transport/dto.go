package transport

import (
	"time"

	"github.com/google/uuid"
)

type CreateClientRequest struct {
	FirstName string  `json:"firstName" binding:"required"`
	LastName  string  `json:"lastName" binding:"required"`
	Phone     string  `json:"phone" binding:"required"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
	Notes     *string `json:"notes,omitempty"`
}

type UpdateClientRequest struct {
	FirstName string  `json:"firstName" binding:"required"`
	LastName  string  `json:"lastName" binding:"required"`
	Phone     string  `json:"phone" binding:"required"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
	Notes     *string `json:"notes,omitempty"`
}

type ClientResponse struct {
	ID        uuid.UUID `json:"id"`
	SalonID   uuid.UUID `json:"salonId"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Phone     string    `json:"phone"`
	Email     *string   `json:"email,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ListClientsRequest struct {
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

type ClientListResponse struct {
	Items      []ClientResponse `json:"items"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	TotalPages int              `json:"totalPages"`
}
