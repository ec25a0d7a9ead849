// Package events provides the domain event bus and the event definitions
// modules use for decoupled communication, such as sending booking emails
// without the scheduling service knowing about SMTP.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event is the base interface all domain events must implement.
type Event interface {
	// EventName returns a unique identifier for the event type.
	EventName() string
	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time
}

// BaseEvent provides common fields for all events.
type BaseEvent struct {
	Timestamp time.Time `json:"timestamp"`
}

// OccurredAt returns when the event occurred.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// NewBaseEvent creates a new base event with the current timestamp.
func NewBaseEvent() BaseEvent {
	return BaseEvent{Timestamp: time.Now()}
}

// Handler processes events of a specific type.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc is an adapter to allow ordinary functions to be used as handlers.
type HandlerFunc func(ctx context.Context, event Event) error

// Handle calls the underlying function.
func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Bus is the interface for publishing and subscribing to domain events.
type Bus interface {
	// Publish sends an event to all registered handlers for that event
	// type. Handlers run asynchronously.
	Publish(ctx context.Context, event Event)

	// PublishSync sends an event and waits for all handlers to complete.
	PublishSync(ctx context.Context, event Event) error

	// Subscribe registers a handler for a specific event type.
	Subscribe(eventName string, handler Handler)
}

// AppointmentBooked is published when a new appointment lands on the
// calendar, whether staff-created or through the public booking page.
type AppointmentBooked struct {
	BaseEvent
	AppointmentID uuid.UUID `json:"appointmentId"`
	SalonID       uuid.UUID `json:"salonId"`
	ClientID      uuid.UUID `json:"clientId"`
	EmployeeID    uuid.UUID `json:"employeeId"`
	ServiceName   string    `json:"serviceName"`
	ClientName    string    `json:"clientName"`
	ClientEmail   string    `json:"clientEmail,omitempty"`
	Date          string    `json:"date"`
	StartTime     string    `json:"startTime"`
	PublicBooking bool      `json:"publicBooking"`
}

func (e AppointmentBooked) EventName() string { return "scheduling.appointment.booked" }

// AppointmentStatusChanged is published on every lifecycle transition.
type AppointmentStatusChanged struct {
	BaseEvent
	AppointmentID uuid.UUID `json:"appointmentId"`
	SalonID       uuid.UUID `json:"salonId"`
	ClientID      uuid.UUID `json:"clientId"`
	EmployeeID    uuid.UUID `json:"employeeId"`
	OldStatus     string    `json:"oldStatus"`
	NewStatus     string    `json:"newStatus"`
}

func (e AppointmentStatusChanged) EventName() string { return "scheduling.appointment.status_changed" }

// AppointmentMoved is published when an appointment is rescheduled to a
// new slot or reassigned to another employee.
type AppointmentMoved struct {
	BaseEvent
	AppointmentID uuid.UUID `json:"appointmentId"`
	SalonID       uuid.UUID `json:"salonId"`
	EmployeeID    uuid.UUID `json:"employeeId"`
	Date          string    `json:"date"`
	StartTime     string    `json:"startTime"`
	Reassigned    bool      `json:"reassigned"`
}

func (e AppointmentMoved) EventName() string { return "scheduling.appointment.moved" }

// SalonRegistered is published when a new salon signs up with its admin
// account.
type SalonRegistered struct {
	BaseEvent
	SalonID    uuid.UUID `json:"salonId"`
	AdminEmail string    `json:"adminEmail"`
	SalonName  string    `json:"salonName"`
}

func (e SalonRegistered) EventName() string { return "salons.registered" }
