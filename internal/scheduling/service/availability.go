package service

import (
	"context"
	"errors"
	"time"

	"salon_backend/internal/scheduling/domain"
	"salon_backend/internal/scheduling/repository"
	"salon_backend/internal/scheduling/transport"
	"salon_backend/platform/apperr"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// defaultWindow builds the fallback salon window from configuration,
// falling back to the engine default when the configuration is unusable.
func (s *Service) defaultWindow() domain.Window {
	if s.cfg == nil {
		return domain.DefaultSalonWindow
	}
	open, err1 := domain.ParseClock(s.cfg.GetDefaultOpenTime())
	closeAt, err2 := domain.ParseClock(s.cfg.GetDefaultCloseTime())
	if err1 != nil || err2 != nil || open >= closeAt {
		return domain.DefaultSalonWindow
	}
	return domain.Window{Start: open, End: closeAt}
}

// dayWindow resolves the effective bookable window for an employee on a
// date: salon opening hours intersected with the employee's own schedule.
// Returns working=false when the salon is closed, the employee is off, or
// the employee's schedule entry is malformed (which is logged and treated
// as a day off, never as extra availability).
func (s *Service) dayWindow(ctx context.Context, store Store, emp *repository.Employee, date time.Time) (salonWin, empWin domain.Window, working bool, err error) {
	hours, err := store.ListOpeningHours(ctx, emp.SalonID)
	if err != nil {
		return domain.Window{}, domain.Window{}, false, err
	}

	weekday := domain.WeekdayIndex(date)
	salonWin, open := domain.SalonDayWindowWithDefault(hours, weekday, s.defaultWindow())
	if !open {
		return domain.Window{}, domain.Window{}, false, nil
	}

	empWin, working, scheduleErr := domain.EmployeeDayWindow(emp.WorkSchedule, weekday, salonWin)
	if scheduleErr != nil {
		var malformed *domain.MalformedScheduleError
		if errors.As(scheduleErr, &malformed) {
			s.log.MalformedSchedule(emp.ID.String(), malformed.Weekday, malformed.Raw)
		}
		return domain.Window{}, domain.Window{}, false, nil
	}
	if !working {
		return domain.Window{}, domain.Window{}, false, nil
	}

	return salonWin, empWin, true, nil
}

// busyIntervals converts an employee's active appointments to intervals.
func busyIntervals(appointments []repository.Appointment) []domain.Interval {
	intervals := make([]domain.Interval, 0, len(appointments))
	for _, appt := range appointments {
		intervals = append(intervals, domain.NewInterval(domain.TimeOfDay(appt.StartMinutes), appt.DurationMinutes))
	}
	return intervals
}

// checkSlot validates one candidate slot against windows and existing
// bookings. Returns nil when bookable, or a typed slot-unavailable error
// naming the reason. excludeID skips the appointment being moved.
func (s *Service) checkSlot(ctx context.Context, store Store, emp *repository.Employee, date time.Time, start domain.TimeOfDay, durationMinutes int, excludeID uuid.UUID) error {
	salonWin, empWin, working, err := s.dayWindow(ctx, store, emp, date)
	if err != nil {
		return err
	}
	if !working {
		return apperr.SlotUnavailable("employee is not working on this date")
	}

	effective := salonWin.Intersect(empWin)
	candidate := domain.NewInterval(start, durationMinutes)
	if start < effective.Start || candidate.End > effective.End {
		return apperr.SlotUnavailable("slot is outside working hours")
	}

	existing, err := store.ListEmployeeDay(ctx, emp.SalonID, emp.ID, date, excludeID)
	if err != nil {
		return err
	}
	if domain.AnyOverlap(candidate, busyIntervals(existing)) {
		return apperr.SlotUnavailable("slot conflicts with an existing appointment")
	}

	return nil
}

// CheckAvailability reports whether one specific slot is bookable.
func (s *Service) CheckAvailability(ctx context.Context, salonID uuid.UUID, req transport.AvailabilityCheckRequest) (*transport.AvailabilityCheckResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	start, err := parseStartTime(req.StartTime)
	if err != nil {
		return nil, err
	}

	emp, err := s.store.GetEmployee(ctx, req.EmployeeID, salonID)
	if err != nil {
		return nil, err
	}
	svc, err := s.store.GetService(ctx, req.ServiceID, salonID)
	if err != nil {
		return nil, err
	}

	if !emp.IsAvailable {
		return &transport.AvailabilityCheckResponse{Available: false, Reason: "employee is not accepting bookings"}, nil
	}

	if err := s.checkSlot(ctx, s.store, emp, date, start, svc.DurationMinutes, uuid.Nil); err != nil {
		if code := apperr.GetCode(err); code != "" {
			return &transport.AvailabilityCheckResponse{Available: false, Reason: err.Error()}, nil
		}
		return nil, err
	}

	return &transport.AvailabilityCheckResponse{Available: true}, nil
}

// AvailableSlots enumerates bookable start times for an employee, service
// and date. When filterPast is set and the date is today, start times that
// have already passed are removed; the public booking page uses this.
func (s *Service) AvailableSlots(ctx context.Context, salonID uuid.UUID, req transport.AvailableSlotsRequest, filterPast bool) (*transport.AvailableSlotsResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	emp, err := s.store.GetEmployee(ctx, req.EmployeeID, salonID)
	if err != nil {
		return nil, err
	}
	svc, err := s.store.GetService(ctx, req.ServiceID, salonID)
	if err != nil {
		return nil, err
	}

	resp := &transport.AvailableSlotsResponse{
		Date:       req.Date,
		EmployeeID: emp.ID,
		Slots:      []string{},
	}

	if !emp.IsAvailable {
		return resp, nil
	}

	salonWin, empWin, working, err := s.dayWindow(ctx, s.store, emp, date)
	if err != nil {
		return nil, err
	}
	if !working {
		return resp, nil
	}

	existing, err := s.store.ListEmployeeDay(ctx, salonID, emp.ID, date, uuid.Nil)
	if err != nil {
		return nil, err
	}

	slots := domain.AvailableSlots(salonWin, empWin, busyIntervals(existing), svc.DurationMinutes, s.slotGranularity())

	cutoff := domain.TimeOfDay(-1)
	if filterPast {
		now := s.now()
		if sameDate(date, now) {
			cutoff = domain.FromTime(now)
		}
	}

	for _, slot := range slots {
		if slot <= cutoff {
			continue
		}
		resp.Slots = append(resp.Slots, slot.String())
	}

	return resp, nil
}

// AvailableEmployees finds the employees of a salon free to take a service
// at a given slot.
func (s *Service) AvailableEmployees(ctx context.Context, salonID uuid.UUID, req transport.AvailableEmployeesRequest) (*transport.AvailableEmployeesResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	start, err := parseStartTime(req.StartTime)
	if err != nil {
		return nil, err
	}
	svc, err := s.store.GetService(ctx, req.ServiceID, salonID)
	if err != nil {
		return nil, err
	}

	employees, err := s.store.ListBookableEmployees(ctx, salonID)
	if err != nil {
		return nil, err
	}

	// The per-employee checks are independent reads; run them in parallel
	// and keep the listing order.
	free := make([]bool, len(employees))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i := range employees {
		i := i
		g.Go(func() error {
			err := s.checkSlot(gctx, s.store, &employees[i], date, start, svc.DurationMinutes, uuid.Nil)
			if err != nil {
				if apperr.GetCode(err) != "" {
					return nil
				}
				return err
			}
			free[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp := &transport.AvailableEmployeesResponse{Employees: []transport.EmployeeSummary{}}
	for i := range employees {
		if !free[i] {
			continue
		}
		resp.Employees = append(resp.Employees, transport.EmployeeSummary{
			ID:        employees[i].ID,
			FirstName: employees[i].FirstName,
			LastName:  employees[i].LastName,
		})
	}

	return resp, nil
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
