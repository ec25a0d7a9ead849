// Package transport defines the request and response shapes of the
// scheduling API. Dates travel as "2006-01-02" and times of day as "HH:MM".
package transport

import (
	"time"

	"github.com/google/uuid"
)

// DateFormat is the wire format for calendar dates.
const DateFormat = "2006-01-02"

// CreateAppointmentRequest books a new appointment for an existing client.
// Payment optionally records an upfront payment with the booking.
type CreateAppointmentRequest struct {
	ClientID   uuid.UUID     `json:"clientId" binding:"required"`
	EmployeeID uuid.UUID     `json:"employeeId" binding:"required"`
	ServiceID  uuid.UUID     `json:"serviceId" binding:"required"`
	Date       string        `json:"date" binding:"required"`
	StartTime  string        `json:"startTime" binding:"required"`
	Notes      *string       `json:"notes,omitempty"`
	Payment    *PaymentInput `json:"payment,omitempty"`
}

// PaymentInput is an upfront payment attached to a booking request.
type PaymentInput struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Method string  `json:"method" binding:"required,oneof=CASH CARD MOBILE_MONEY"`
}

// UpdateAppointmentRequest edits appointment notes.
type UpdateAppointmentRequest struct {
	Notes *string `json:"notes"`
}

// CancelAppointmentRequest carries the optional cancellation reason, which
// is appended to the appointment notes.
type CancelAppointmentRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// RescheduleAppointmentRequest moves an appointment to a new slot with the
// same employee. The appointment returns to PENDING.
type RescheduleAppointmentRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
}

// ReassignAppointmentRequest hands an appointment to another employee at
// the same slot. The status is preserved.
type ReassignAppointmentRequest struct {
	EmployeeID uuid.UUID `json:"employeeId" binding:"required"`
}

// AppointmentResponse is the API shape of an appointment.
type AppointmentResponse struct {
	ID              uuid.UUID `json:"id"`
	SalonID         uuid.UUID `json:"salonId"`
	ClientID        uuid.UUID `json:"clientId"`
	EmployeeID      uuid.UUID `json:"employeeId"`
	ServiceID       uuid.UUID `json:"serviceId"`
	Date            string    `json:"date"`
	StartTime       string    `json:"startTime"`
	EndTime         string    `json:"endTime"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ListAppointmentsRequest filters the appointment list.
type ListAppointmentsRequest struct {
	EmployeeID string `form:"employeeId"`
	ClientID   string `form:"clientId"`
	Status     string `form:"status"`
	DateFrom   string `form:"dateFrom"`
	DateTo     string `form:"dateTo"`
	Page       int    `form:"page"`
	PageSize   int    `form:"pageSize"`
}

// AppointmentListResponse is a page of appointments.
type AppointmentListResponse struct {
	Items      []AppointmentResponse `json:"items"`
	Total      int                   `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"pageSize"`
	TotalPages int                   `json:"totalPages"`
}

// AvailabilityCheckRequest asks whether one specific slot is bookable.
type AvailabilityCheckRequest struct {
	EmployeeID uuid.UUID `form:"employeeId" json:"employeeId" binding:"required"`
	ServiceID  uuid.UUID `form:"serviceId" json:"serviceId" binding:"required"`
	Date       string    `form:"date" json:"date" binding:"required"`
	StartTime  string    `form:"startTime" json:"startTime" binding:"required"`
}

// AvailabilityCheckResponse reports the result of a slot check.
type AvailabilityCheckResponse struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// AvailableSlotsRequest enumerates bookable start times for an employee,
// service and date.
type AvailableSlotsRequest struct {
	EmployeeID uuid.UUID `form:"employeeId" binding:"required"`
	ServiceID  uuid.UUID `form:"serviceId" binding:"required"`
	Date       string    `form:"date" binding:"required"`
}

// AvailableSlotsResponse lists bookable "HH:MM" start times in order.
type AvailableSlotsResponse struct {
	Date       string    `json:"date"`
	EmployeeID uuid.UUID `json:"employeeId"`
	Slots      []string  `json:"slots"`
}

// AvailableEmployeesRequest finds employees free for a slot.
type AvailableEmployeesRequest struct {
	ServiceID uuid.UUID `form:"serviceId" binding:"required"`
	Date      string    `form:"date" binding:"required"`
	StartTime string    `form:"startTime" binding:"required"`
}

// EmployeeSummary identifies a bookable employee.
type EmployeeSummary struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
}

// AvailableEmployeesResponse lists employees free for the requested slot.
type AvailableEmployeesResponse struct {
	Employees []EmployeeSummary `json:"employees"`
}

// PublicClientCheckRequest asks whether a phone number is registered.
type PublicClientCheckRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// PublicClientCheckResponse avoids leaking client data to anonymous
// callers: only existence and the first name for a greeting.
type PublicClientCheckResponse struct {
	Exists    bool   `json:"exists"`
	FirstName string `json:"firstName,omitempty"`
}

// PublicBookingRequest books an appointment from the public page. The
// client is matched by phone or registered on the fly.
type PublicBookingRequest struct {
	FirstName  string    `json:"firstName" binding:"required"`
	LastName   string    `json:"lastName" binding:"required"`
	Phone      string    `json:"phone" binding:"required"`
	Email      *string   `json:"email,omitempty"`
	EmployeeID uuid.UUID `json:"employeeId" binding:"required"`
	ServiceID  uuid.UUID `json:"serviceId" binding:"required"`
	Date       string    `json:"date" binding:"required"`
	StartTime  string    `json:"startTime" binding:"required"`
	Notes      *string   `json:"notes,omitempty"`
}

// DayStatsResponse is the dashboard summary for one calendar day.
type DayStatsResponse struct {
	Date      string         `json:"date"`
	Total     int            `json:"total"`
	ByStatus  map[string]int `json:"byStatus"`
	Revenue   float64        `json:"revenue"`
	Completed int            `json:"completed"`
}
