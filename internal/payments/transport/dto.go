package transport

import (
	"time"

	"github.com/google/uuid"
)

// RecordPaymentRequest registers money received for an appointment.
type RecordPaymentRequest struct {
	AppointmentID uuid.UUID `json:"appointmentId" binding:"required"`
	Amount        float64   `json:"amount" binding:"required,gt=0"`
	Method        string    `json:"method" binding:"required,oneof=CASH CARD MOBILE_MONEY"`
	Notes         *string   `json:"notes,omitempty"`
}

type PaymentResponse struct {
	ID            uuid.UUID  `json:"id"`
	AppointmentID uuid.UUID  `json:"appointmentId"`
	Amount        float64    `json:"amount"`
	Method        string     `json:"method"`
	Notes         *string    `json:"notes,omitempty"`
	RecordedBy    *uuid.UUID `json:"recordedBy,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// DayPaymentsResponse is the till view for one calendar day: every payment
// plus totals per method.
type DayPaymentsResponse struct {
	Date     string             `json:"date"`
	Total    float64            `json:"total"`
	ByMethod map[string]float64 `json:"byMethod"`
	Payments []PaymentResponse  `json:"payments"`
}
