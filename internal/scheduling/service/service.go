// Package service implements the scheduling engine's orchestration: it
// combines the pure domain rules with persistence, authorization, events
// and reminders.
package service

import (
	"context"
	"time"

	"salon_backend/internal/email"
	"salon_backend/internal/events"
	"salon_backend/internal/scheduler"
	"salon_backend/internal/scheduling/domain"
	"salon_backend/internal/scheduling/repository"
	"salon_backend/platform/apperr"
	"salon_backend/platform/config"
	"salon_backend/platform/logger"

	"github.com/google/uuid"
)

// Store is the persistence surface the service depends on. *repository.
// Repository satisfies it through the pgStore adapter; tests substitute an
// in-memory fake.
type Store interface {
	Create(ctx context.Context, appt *repository.Appointment) error
	GetByID(ctx context.Context, id, salonID uuid.UUID) (*repository.Appointment, error)
	UpdateStatus(ctx context.Context, id, salonID uuid.UUID, fromStatus, toStatus string, notes *string) error
	UpdateSlot(ctx context.Context, id, salonID, employeeID uuid.UUID, date time.Time, startMinutes int, fromStatus, toStatus string, notes *string) error
	UpdateNotes(ctx context.Context, id, salonID uuid.UUID, notes *string) error
	Delete(ctx context.Context, id, salonID uuid.UUID) error
	List(ctx context.Context, params repository.ListParams) (*repository.ListResult, error)
	ListForDate(ctx context.Context, salonID uuid.UUID, date time.Time) ([]repository.Appointment, error)
	ListUpcoming(ctx context.Context, salonID uuid.UUID, from time.Time, limit int) ([]repository.Appointment, error)
	ListEmployeeDay(ctx context.Context, salonID, employeeID uuid.UUID, date time.Time, excludeID uuid.UUID) ([]repository.Appointment, error)

	GetEmployee(ctx context.Context, id, salonID uuid.UUID) (*repository.Employee, error)
	LockEmployee(ctx context.Context, id, salonID uuid.UUID) (*repository.Employee, error)
	ListBookableEmployees(ctx context.Context, salonID uuid.UUID) ([]repository.Employee, error)
	ListOpeningHours(ctx context.Context, salonID uuid.UUID) ([]domain.OpeningHour, error)
	GetService(ctx context.Context, id, salonID uuid.UUID) (*repository.ServiceInfo, error)
	GetClient(ctx context.Context, id, salonID uuid.UUID) (*repository.ClientInfo, error)
	GetSalonName(ctx context.Context, salonID uuid.UUID) (string, error)
	GetPermissionOverrides(ctx context.Context, employeeID, salonID uuid.UUID) (*domain.PermissionOverrides, error)
	CountByStatusForDay(ctx context.Context, salonID uuid.UUID, date time.Time) (repository.StatusCounts, error)
	SumRevenueForDay(ctx context.Context, salonID uuid.UUID, date time.Time) (float64, error)

	// InTx runs fn against a transaction-bound Store. LockEmployee calls
	// inside fn take row locks that hold until the transaction ends.
	InTx(ctx context.Context, fn func(tx Store) error) error
}

// pgStore adapts *repository.Repository to Store, rewrapping InTx so the
// callback receives the interface rather than the concrete type.
type pgStore struct {
	*repository.Repository
}

// NewStore wraps the repository for use by the service.
func NewStore(repo *repository.Repository) Store {
	return pgStore{Repository: repo}
}

func (s pgStore) InTx(ctx context.Context, fn func(tx Store) error) error {
	return s.Repository.InTx(ctx, func(tx *repository.Repository) error {
		return fn(pgStore{Repository: tx})
	})
}

// Actor is the authenticated (or anonymous) principal performing an
// operation. EmployeeID is set for staff accounts linked to an employee
// record and drives ownership checks.
type Actor struct {
	UserID     uuid.UUID
	Role       domain.Role
	SalonID    uuid.UUID
	EmployeeID *uuid.UUID
}

// PaymentRecorder records a payment against an appointment. Implemented by
// the payments module; wired in by the composition root.
type PaymentRecorder interface {
	RecordForAppointment(ctx context.Context, salonID, appointmentID uuid.UUID, recordedBy *uuid.UUID, amount float64, method string) error
}

// Service provides the scheduling business logic.
type Service struct {
	store     Store
	bus       events.Bus
	sender    email.Sender
	reminders scheduler.ReminderScheduler
	clients   ClientDirectory
	payments  PaymentRecorder
	log       *logger.Logger
	cfg       config.BookingConfig
	now       func() time.Time
}

// SetPaymentRecorder wires the payments module in. Bookings carrying a
// payment fail softly when no recorder is configured.
func (s *Service) SetPaymentRecorder(rec PaymentRecorder) {
	s.payments = rec
}

// New creates the scheduling service. bus, sender and reminders may be nil;
// the corresponding side effects are then skipped.
func New(store Store, bus events.Bus, sender email.Sender, reminders scheduler.ReminderScheduler, log *logger.Logger, cfg config.BookingConfig) *Service {
	return &Service{
		store:     store,
		bus:       bus,
		sender:    sender,
		reminders: reminders,
		log:       log,
		cfg:       cfg,
		now:       time.Now,
	}
}

// authorize runs the permission matrix for the actor, loading per-employee
// overrides when the actor is linked to an employee record.
func (s *Service) authorize(ctx context.Context, actor Actor, action domain.Action, ownsTarget bool) error {
	var overrides *domain.PermissionOverrides
	if actor.EmployeeID != nil && actor.Role != domain.RoleAdmin {
		loaded, err := s.store.GetPermissionOverrides(ctx, *actor.EmployeeID, actor.SalonID)
		if err != nil {
			return err
		}
		overrides = loaded
	}

	if !domain.Authorize(actor.Role, action, ownsTarget, overrides) {
		return apperr.PermissionDenied("not allowed to " + string(action) + " appointments")
	}
	return nil
}

// ownsAppointment reports whether the appointment is assigned to the
// actor's own employee record.
func ownsAppointment(actor Actor, appt *repository.Appointment) bool {
	return actor.EmployeeID != nil && *actor.EmployeeID == appt.EmployeeID
}

// parseDate parses a wire date, truncating to midnight UTC so equality
// against the stored DATE column is exact.
func parseDate(raw string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, apperr.BadRequest("invalid date format, expected YYYY-MM-DD")
	}
	return date, nil
}

func parseStartTime(raw string) (domain.TimeOfDay, error) {
	start, err := domain.ParseClock(raw)
	if err != nil {
		return 0, apperr.BadRequest("invalid startTime format, expected HH:MM")
	}
	return start, nil
}

// parseUUIDFilter parses an optional UUID query filter.
func parseUUIDFilter(raw, fieldName string) (*uuid.UUID, error) {
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperr.BadRequest("invalid " + fieldName + " format")
	}
	return &parsed, nil
}

// slotGranularity returns the configured candidate step.
func (s *Service) slotGranularity() int {
	if s.cfg == nil {
		return domain.DefaultSlotGranularityMinutes
	}
	if g := s.cfg.GetSlotGranularityMinutes(); g > 0 {
		return g
	}
	return domain.DefaultSlotGranularityMinutes
}
