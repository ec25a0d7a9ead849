package transport

import (
	"time"

	"github.com/google/uuid"
)

type CreateServiceRequest struct {
	Name            string  `json:"name" binding:"required"`
	Description     *string `json:"description,omitempty"`
	DurationMinutes int     `json:"durationMinutes" binding:"required,gt=0"`
	Price           float64 `json:"price" binding:"gte=0"`
	IsActive        *bool   `json:"isActive,omitempty"`
}

type UpdateServiceRequest struct {
	Name            string  `json:"name" binding:"required"`
	Description     *string `json:"description,omitempty"`
	DurationMinutes int     `json:"durationMinutes" binding:"required,gt=0"`
	Price           float64 `json:"price" binding:"gte=0"`
	IsActive        *bool   `json:"isActive,omitempty"`
}

type ServiceResponse struct {
	ID              uuid.UUID `json:"id"`
	SalonID         uuid.UUID `json:"salonId"`
	Name            string    `json:"name"`
	Description     *string   `json:"description,omitempty"`
	DurationMinutes int       `json:"durationMinutes"`
	Price           float64   `json:"price"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// PublicServiceResponse is the booking-page view of an offering: active
// services only, no timestamps.
type PublicServiceResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description,omitempty"`
	DurationMinutes int       `json:"durationMinutes"`
	Price           float64   `json:"price"`
}
