package transport

import (
	"time"

	"github.com/google/uuid"
)

type SalonResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone,omitempty"`
	Address   *string   `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type UpdateSalonRequest struct {
	Name    string  `json:"name" binding:"required"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

// OpeningHourEntry is one weekday of the salon's hours. Weekday counts
// from Monday = 0; Open and Close use "HH:MM".
type OpeningHourEntry struct {
	Weekday int    `json:"weekday"`
	Open    string `json:"open"`
	Close   string `json:"close"`
	Closed  bool   `json:"closed"`
}

// UpdateOpeningHoursRequest replaces the whole weekly table. All seven
// weekdays must be present exactly once.
type UpdateOpeningHoursRequest struct {
	Hours []OpeningHourEntry `json:"hours" binding:"required"`
}

type OpeningHoursResponse struct {
	Hours []OpeningHourEntry `json:"hours"`
}
