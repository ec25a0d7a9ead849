package service

import (
	"context"
	"strings"
	"time"

	"salon_backend/internal/events"
	"salon_backend/internal/scheduler"
	"salon_backend/internal/scheduling/domain"
	"salon_backend/internal/scheduling/repository"
	"salon_backend/internal/scheduling/transport"
	"salon_backend/platform/apperr"
	"salon_backend/platform/sanitize"

	"github.com/google/uuid"
)

// Create books a new appointment. The slot is validated and written inside
// a transaction that locks the employee row, so two concurrent bookings
// for the same employee cannot both pass the conflict check.
func (s *Service) Create(ctx context.Context, actor Actor, req transport.CreateAppointmentRequest) (*transport.AppointmentResponse, error) {
	return s.create(ctx, actor, req, false)
}

func (s *Service) create(ctx context.Context, actor Actor, req transport.CreateAppointmentRequest, publicBooking bool) (*transport.AppointmentResponse, error) {
	if err := s.authorize(ctx, actor, domain.ActionCreate, false); err != nil {
		return nil, err
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	start, err := parseStartTime(req.StartTime)
	if err != nil {
		return nil, err
	}

	client, err := s.store.GetClient(ctx, req.ClientID, actor.SalonID)
	if err != nil {
		return nil, err
	}
	svc, err := s.store.GetService(ctx, req.ServiceID, actor.SalonID)
	if err != nil {
		return nil, err
	}
	if !svc.IsActive {
		return nil, apperr.Validation("service is no longer offered")
	}

	if err := verifySameSalon(actor.SalonID, client.SalonID, svc.SalonID); err != nil {
		return nil, err
	}

	now := time.Now()
	appt := &repository.Appointment{
		ID:              uuid.New(),
		SalonID:         actor.SalonID,
		ClientID:        client.ID,
		EmployeeID:      req.EmployeeID,
		ServiceID:       svc.ID,
		Date:            date,
		StartMinutes:    int(start),
		DurationMinutes: svc.DurationMinutes,
		Status:          string(domain.StatusPending),
		Notes:           sanitize.TextPtr(req.Notes),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if actor.UserID != uuid.Nil {
		userID := actor.UserID
		appt.CreatedBy = &userID
	}

	err = s.store.InTx(ctx, func(tx Store) error {
		emp, err := tx.LockEmployee(ctx, req.EmployeeID, actor.SalonID)
		if err != nil {
			return err
		}
		if err := verifySameSalon(actor.SalonID, emp.SalonID); err != nil {
			return err
		}
		if !emp.IsAvailable {
			return apperr.SlotUnavailable("employee is not accepting bookings")
		}

		if err := s.checkSlot(ctx, tx, emp, date, start, svc.DurationMinutes, uuid.Nil); err != nil {
			return err
		}

		return tx.Create(ctx, appt)
	})
	if err != nil {
		return nil, err
	}

	s.afterBooking(ctx, appt, client, svc, publicBooking)
	if req.Payment != nil {
		s.recordPayment(ctx, actor, appt, req.Payment)
	}

	resp := toResponse(appt)
	return &resp, nil
}

// recordPayment stores the upfront payment attached to a booking. The
// appointment itself is already committed, so failures here only log.
func (s *Service) recordPayment(ctx context.Context, actor Actor, appt *repository.Appointment, in *transport.PaymentInput) {
	if s.payments == nil {
		s.log.Error("payment recorder not configured, dropping booking payment", "appointment_id", appt.ID.String())
		return
	}
	var recordedBy *uuid.UUID
	if actor.UserID != uuid.Nil {
		userID := actor.UserID
		recordedBy = &userID
	}
	if err := s.payments.RecordForAppointment(ctx, appt.SalonID, appt.ID, recordedBy, in.Amount, in.Method); err != nil {
		s.log.Error("failed to record booking payment", "appointment_id", appt.ID.String(), "error", err)
	}
}

// afterBooking runs the post-commit side effects: the booked event, the
// confirmation email and the reminder task. All are best effort.
func (s *Service) afterBooking(ctx context.Context, appt *repository.Appointment, client *repository.ClientInfo, svc *repository.ServiceInfo, publicBooking bool) {
	clientName := strings.TrimSpace(client.FirstName + " " + client.LastName)
	date := appt.Date.Format(transport.DateFormat)
	startTime := domain.TimeOfDay(appt.StartMinutes).String()

	if s.bus != nil {
		evt := events.AppointmentBooked{
			BaseEvent:     events.NewBaseEvent(),
			AppointmentID: appt.ID,
			SalonID:       appt.SalonID,
			ClientID:      appt.ClientID,
			EmployeeID:    appt.EmployeeID,
			ServiceName:   svc.Name,
			ClientName:    clientName,
			Date:          date,
			StartTime:     startTime,
			PublicBooking: publicBooking,
		}
		if client.Email != nil {
			evt.ClientEmail = *client.Email
		}
		s.bus.Publish(ctx, evt)
	}

	if s.sender != nil && client.Email != nil && *client.Email != "" {
		salonName, err := s.store.GetSalonName(ctx, appt.SalonID)
		if err != nil {
			salonName = "votre salon"
		}
		withEmployee := ""
		if emp, err := s.store.GetEmployee(ctx, appt.EmployeeID, appt.SalonID); err == nil {
			withEmployee = employeeName(emp)
		}
		displayDate := appt.Date.Format("02/01/2006")
		if err := s.sender.SendBookingConfirmation(ctx, *client.Email, clientName, salonName, svc.Name, withEmployee, displayDate, startTime); err != nil {
			s.log.Error("booking confirmation email failed", "appointment_id", appt.ID.String(), "error", err)
		}
	}

	s.scheduleReminder(ctx, appt)
}

// scheduleReminder enqueues the client reminder ahead of the start time.
// Nothing is scheduled when the reminder moment is already in the past.
func (s *Service) scheduleReminder(ctx context.Context, appt *repository.Appointment) {
	if s.reminders == nil || s.cfg == nil {
		return
	}
	lead := s.cfg.GetReminderLead()
	if lead <= 0 {
		return
	}

	startAt := time.Date(
		appt.Date.Year(), appt.Date.Month(), appt.Date.Day(),
		appt.StartMinutes/60, appt.StartMinutes%60, 0, 0, time.Local,
	)
	remindAt := startAt.Add(-lead)
	if !remindAt.After(s.now()) {
		return
	}

	err := s.reminders.ScheduleAppointmentReminder(ctx, scheduler.AppointmentReminderPayload{
		AppointmentID: appt.ID.String(),
		SalonID:       appt.SalonID.String(),
	}, remindAt)
	if err != nil {
		s.log.Error("failed to schedule reminder", "appointment_id", appt.ID.String(), "error", err)
	}
}

// verifySameSalon guards the tenant-consistency invariant: every entity an
// appointment references must belong to the same salon. Queries are already
// salon-scoped, so a mismatch here means a caller passed inconsistent IDs.
func verifySameSalon(salonID uuid.UUID, others ...uuid.UUID) error {
	for _, other := range others {
		if other != salonID {
			return apperr.CrossTenantMismatch("referenced entity belongs to a different salon")
		}
	}
	return nil
}

func toResponse(appt *repository.Appointment) transport.AppointmentResponse {
	start := domain.TimeOfDay(appt.StartMinutes)
	return transport.AppointmentResponse{
		ID:              appt.ID,
		SalonID:         appt.SalonID,
		ClientID:        appt.ClientID,
		EmployeeID:      appt.EmployeeID,
		ServiceID:       appt.ServiceID,
		Date:            appt.Date.Format(transport.DateFormat),
		StartTime:       start.String(),
		EndTime:         start.Add(appt.DurationMinutes).String(),
		DurationMinutes: appt.DurationMinutes,
		Status:          appt.Status,
		Notes:           appt.Notes,
		CreatedAt:       appt.CreatedAt,
		UpdatedAt:       appt.UpdatedAt,
	}
}
