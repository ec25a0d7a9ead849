package service

import (
	"context"
	"strings"
	"time"

	"salon_backend/internal/events"
	"salon_backend/internal/scheduling/domain"
	"salon_backend/internal/scheduling/repository"
	"salon_backend/internal/scheduling/transport"
	"salon_backend/platform/apperr"
	"salon_backend/platform/sanitize"

	"github.com/google/uuid"
)

// Confirm moves a pending appointment to CONFIRMED.
func (s *Service) Confirm(ctx context.Context, actor Actor, id uuid.UUID) (*transport.AppointmentResponse, error) {
	return s.transition(ctx, actor, id, domain.ActionConfirm, nil)
}

// Start marks an appointment as IN_PROGRESS.
func (s *Service) Start(ctx context.Context, actor Actor, id uuid.UUID) (*transport.AppointmentResponse, error) {
	return s.transition(ctx, actor, id, domain.ActionStart, nil)
}

// Complete marks an appointment as COMPLETED.
func (s *Service) Complete(ctx context.Context, actor Actor, id uuid.UUID) (*transport.AppointmentResponse, error) {
	return s.transition(ctx, actor, id, domain.ActionComplete, nil)
}

// MarkNoShow records that the client did not show up.
func (s *Service) MarkNoShow(ctx context.Context, actor Actor, id uuid.UUID) (*transport.AppointmentResponse, error) {
	return s.transition(ctx, actor, id, domain.ActionMarkNoShow, nil)
}

// Cancel cancels an appointment. The reason, when given, is appended to
// the appointment notes so the history survives.
func (s *Service) Cancel(ctx context.Context, actor Actor, id uuid.UUID, req transport.CancelAppointmentRequest) (*transport.AppointmentResponse, error) {
	return s.transition(ctx, actor, id, domain.ActionCancel, sanitize.TextPtr(req.Reason))
}

// transition applies a lifecycle action: authorization first, then the
// state machine, then the status write.
func (s *Service) transition(ctx context.Context, actor Actor, id uuid.UUID, action domain.Action, reason *string) (*transport.AppointmentResponse, error) {
	appt, err := s.store.GetByID(ctx, id, actor.SalonID)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(ctx, actor, action, ownsAppointment(actor, appt)); err != nil {
		return nil, err
	}

	next, err := domain.Next(domain.Status(appt.Status), action)
	if err != nil {
		return nil, apperr.InvalidTransition(err.Error())
	}

	var notes *string
	if action == domain.ActionCancel && reason != nil && *reason != "" {
		merged := appendNote(appt.Notes, "Annulation: "+*reason)
		notes = &merged
	}

	if err := s.store.UpdateStatus(ctx, id, actor.SalonID, appt.Status, string(next), notes); err != nil {
		return nil, err
	}

	oldStatus := appt.Status
	appt.Status = string(next)
	if notes != nil {
		appt.Notes = notes
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.AppointmentStatusChanged{
			BaseEvent:     events.NewBaseEvent(),
			AppointmentID: appt.ID,
			SalonID:       appt.SalonID,
			ClientID:      appt.ClientID,
			EmployeeID:    appt.EmployeeID,
			OldStatus:     oldStatus,
			NewStatus:     appt.Status,
		})
	}

	resp := toResponse(appt)
	return &resp, nil
}

// appendNote folds an audit line into the existing notes.
func appendNote(notes *string, line string) string {
	if notes == nil || strings.TrimSpace(*notes) == "" {
		return line
	}
	return *notes + "\n" + line
}

// Reschedule moves an appointment to a new date and time with the same
// employee. The new slot is validated under the employee row lock, exactly
// like a fresh booking; on failure the appointment is left untouched. The
// appointment returns to PENDING for re-confirmation.
func (s *Service) Reschedule(ctx context.Context, actor Actor, id uuid.UUID, req transport.RescheduleAppointmentRequest) (*transport.AppointmentResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	start, err := parseStartTime(req.StartTime)
	if err != nil {
		return nil, err
	}

	appt, err := s.store.GetByID(ctx, id, actor.SalonID)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(ctx, actor, domain.ActionReschedule, ownsAppointment(actor, appt)); err != nil {
		return nil, err
	}

	next, err := domain.Next(domain.Status(appt.Status), domain.ActionReschedule)
	if err != nil {
		return nil, apperr.InvalidTransition(err.Error())
	}

	note := "Reprogrammé: " + appt.Date.Format(transport.DateFormat) + " " +
		domain.TimeOfDay(appt.StartMinutes).String() + " -> " +
		date.Format(transport.DateFormat) + " " + start.String()

	updated, err := s.moveSlot(ctx, appt, appt.EmployeeID, date, int(start), string(next), note)
	if err != nil {
		return nil, err
	}

	s.afterMove(ctx, updated, false)

	resp := toResponse(updated)
	return &resp, nil
}

// Reassign hands an appointment to another employee at its current slot.
// The status is preserved.
func (s *Service) Reassign(ctx context.Context, actor Actor, id uuid.UUID, req transport.ReassignAppointmentRequest) (*transport.AppointmentResponse, error) {
	appt, err := s.store.GetByID(ctx, id, actor.SalonID)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(ctx, actor, domain.ActionReassign, ownsAppointment(actor, appt)); err != nil {
		return nil, err
	}

	next, err := domain.Next(domain.Status(appt.Status), domain.ActionReassign)
	if err != nil {
		return nil, apperr.InvalidTransition(err.Error())
	}

	if req.EmployeeID == appt.EmployeeID {
		resp := toResponse(appt)
		return &resp, nil
	}

	from, err := s.store.GetEmployee(ctx, appt.EmployeeID, actor.SalonID)
	if err != nil {
		return nil, err
	}
	to, err := s.store.GetEmployee(ctx, req.EmployeeID, actor.SalonID)
	if err != nil {
		return nil, err
	}
	note := "Réassigné: " + employeeName(from) + " -> " + employeeName(to)

	updated, err := s.moveSlot(ctx, appt, req.EmployeeID, appt.Date, appt.StartMinutes, string(next), note)
	if err != nil {
		return nil, err
	}

	s.afterMove(ctx, updated, true)

	resp := toResponse(updated)
	return &resp, nil
}

// moveSlot re-validates the target slot inside the locking transaction and
// applies the move, folding the audit line into the notes. The moved
// appointment itself is excluded from conflict detection so it never
// collides with its own old slot.
func (s *Service) moveSlot(ctx context.Context, appt *repository.Appointment, employeeID uuid.UUID, date time.Time, startMinutes int, status, auditLine string) (*repository.Appointment, error) {
	merged := appendNote(appt.Notes, auditLine)

	err := s.store.InTx(ctx, func(tx Store) error {
		emp, err := tx.LockEmployee(ctx, employeeID, appt.SalonID)
		if err != nil {
			return err
		}
		if err := verifySameSalon(appt.SalonID, emp.SalonID); err != nil {
			return err
		}
		if !emp.IsAvailable {
			return apperr.SlotUnavailable("employee is not accepting bookings")
		}

		if err := s.checkSlot(ctx, tx, emp, date, domain.TimeOfDay(startMinutes), appt.DurationMinutes, appt.ID); err != nil {
			return err
		}

		return tx.UpdateSlot(ctx, appt.ID, appt.SalonID, employeeID, date, startMinutes, appt.Status, status, &merged)
	})
	if err != nil {
		return nil, err
	}

	moved := *appt
	moved.EmployeeID = employeeID
	moved.Date = date
	moved.StartMinutes = startMinutes
	moved.Status = status
	moved.Notes = &merged
	return &moved, nil
}

func employeeName(emp *repository.Employee) string {
	return strings.TrimSpace(emp.FirstName + " " + emp.LastName)
}

// afterMove publishes the moved event and schedules a fresh reminder for
// the new slot.
func (s *Service) afterMove(ctx context.Context, appt *repository.Appointment, reassigned bool) {
	if s.bus != nil {
		s.bus.Publish(ctx, events.AppointmentMoved{
			BaseEvent:     events.NewBaseEvent(),
			AppointmentID: appt.ID,
			SalonID:       appt.SalonID,
			EmployeeID:    appt.EmployeeID,
			Date:          appt.Date.Format(transport.DateFormat),
			StartTime:     domain.TimeOfDay(appt.StartMinutes).String(),
			Reassigned:    reassigned,
		})
	}

	if !reassigned {
		s.scheduleReminder(ctx, appt)
	}
}
