package service

import (
	"context"
	"time"

	"salon_backend/internal/scheduling/domain"
	"salon_backend/internal/scheduling/repository"
	"salon_backend/internal/scheduling/transport"
	"salon_backend/platform/apperr"
	"salon_backend/platform/sanitize"

	"github.com/google/uuid"
)

const upcomingLimit = 50

// GetByID retrieves one appointment.
func (s *Service) GetByID(ctx context.Context, actor Actor, id uuid.UUID) (*transport.AppointmentResponse, error) {
	appt, err := s.store.GetByID(ctx, id, actor.SalonID)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(ctx, actor, domain.ActionView, ownsAppointment(actor, appt)); err != nil {
		return nil, err
	}

	resp := toResponse(appt)
	return &resp, nil
}

// List retrieves appointments with filtering and pagination.
func (s *Service) List(ctx context.Context, actor Actor, req transport.ListAppointmentsRequest) (*transport.AppointmentListResponse, error) {
	if err := s.authorize(ctx, actor, domain.ActionList, false); err != nil {
		return nil, err
	}

	params := repository.ListParams{
		SalonID:  actor.SalonID,
		Page:     max(req.Page, 1),
		PageSize: clampPageSize(req.PageSize),
	}

	if req.EmployeeID != "" {
		id, err := parseUUIDFilter(req.EmployeeID, "employeeId")
		if err != nil {
			return nil, err
		}
		params.EmployeeID = id
	}
	if req.ClientID != "" {
		id, err := parseUUIDFilter(req.ClientID, "clientId")
		if err != nil {
			return nil, err
		}
		params.ClientID = id
	}
	if req.Status != "" {
		status, err := domain.ParseStatus(req.Status)
		if err != nil {
			return nil, apperr.BadRequest("invalid status filter")
		}
		value := string(status)
		params.Status = &value
	}
	if req.DateFrom != "" {
		from, err := parseDate(req.DateFrom)
		if err != nil {
			return nil, err
		}
		params.DateFrom = &from
	}
	if req.DateTo != "" {
		to, err := parseDate(req.DateTo)
		if err != nil {
			return nil, err
		}
		params.DateTo = &to
	}

	result, err := s.store.List(ctx, params)
	if err != nil {
		return nil, err
	}

	return &transport.AppointmentListResponse{
		Items:      toResponses(result.Items),
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	}, nil
}

// Today retrieves all of a salon's appointments for the current date.
func (s *Service) Today(ctx context.Context, actor Actor) ([]transport.AppointmentResponse, error) {
	if err := s.authorize(ctx, actor, domain.ActionList, false); err != nil {
		return nil, err
	}

	items, err := s.store.ListForDate(ctx, actor.SalonID, dateOnly(s.now()))
	if err != nil {
		return nil, err
	}
	return toResponses(items), nil
}

// Upcoming retrieves the next active appointments from today onward.
func (s *Service) Upcoming(ctx context.Context, actor Actor) ([]transport.AppointmentResponse, error) {
	if err := s.authorize(ctx, actor, domain.ActionList, false); err != nil {
		return nil, err
	}

	items, err := s.store.ListUpcoming(ctx, actor.SalonID, dateOnly(s.now()), upcomingLimit)
	if err != nil {
		return nil, err
	}
	return toResponses(items), nil
}

// DayStats builds the dashboard summary for a date: totals per status plus
// revenue from completed appointments.
func (s *Service) DayStats(ctx context.Context, actor Actor, rawDate string) (*transport.DayStatsResponse, error) {
	if err := s.authorize(ctx, actor, domain.ActionList, false); err != nil {
		return nil, err
	}

	date := dateOnly(s.now())
	if rawDate != "" {
		parsed, err := parseDate(rawDate)
		if err != nil {
			return nil, err
		}
		date = parsed
	}

	counts, err := s.store.CountByStatusForDay(ctx, actor.SalonID, date)
	if err != nil {
		return nil, err
	}
	revenue, err := s.store.SumRevenueForDay(ctx, actor.SalonID, date)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	return &transport.DayStatsResponse{
		Date:      date.Format(transport.DateFormat),
		Total:     total,
		ByStatus:  counts,
		Revenue:   revenue,
		Completed: counts[string(domain.StatusCompleted)],
	}, nil
}

// Update edits appointment notes.
func (s *Service) Update(ctx context.Context, actor Actor, id uuid.UUID, req transport.UpdateAppointmentRequest) (*transport.AppointmentResponse, error) {
	appt, err := s.store.GetByID(ctx, id, actor.SalonID)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(ctx, actor, domain.ActionUpdate, ownsAppointment(actor, appt)); err != nil {
		return nil, err
	}

	notes := sanitize.TextPtr(req.Notes)
	if err := s.store.UpdateNotes(ctx, id, actor.SalonID, notes); err != nil {
		return nil, err
	}

	appt.Notes = notes
	resp := toResponse(appt)
	return &resp, nil
}

// Delete removes an appointment record entirely. Cancelling is the normal
// flow; deletion is for records created in error.
func (s *Service) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	appt, err := s.store.GetByID(ctx, id, actor.SalonID)
	if err != nil {
		return err
	}

	if err := s.authorize(ctx, actor, domain.ActionDelete, ownsAppointment(actor, appt)); err != nil {
		return err
	}

	return s.store.Delete(ctx, id, actor.SalonID)
}

func toResponses(items []repository.Appointment) []transport.AppointmentResponse {
	out := make([]transport.AppointmentResponse, len(items))
	for i := range items {
		out[i] = toResponse(&items[i])
	}
	return out
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func clampPageSize(size int) int {
	if size < 1 || size > 100 {
		return 50
	}
	return size
}
