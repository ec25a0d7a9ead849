// Package service implements staff management: employee records, weekly
// work schedules and per-employee permission overrides.
package service

import (
	"context"
	"strings"

	"salon_backend/internal/employees/repository"
	"salon_backend/internal/employees/transport"
	"salon_backend/internal/scheduling/domain"
	"salon_backend/platform/apperr"
	"salon_backend/platform/sanitize"

	"github.com/google/uuid"
)

// Store is the persistence surface the service depends on.
// *repository.Repository satisfies it; tests substitute an in-memory fake.
type Store interface {
	Create(ctx context.Context, emp *repository.Employee) error
	GetByID(ctx context.Context, id, salonID uuid.UUID) (*repository.Employee, error)
	List(ctx context.Context, salonID uuid.UUID) ([]repository.Employee, error)
	Update(ctx context.Context, emp *repository.Employee) error
	Delete(ctx context.Context, id, salonID uuid.UUID) error
	GetPermissionOverrides(ctx context.Context, employeeID, salonID uuid.UUID) (*domain.PermissionOverrides, error)
	UpsertPermissionOverrides(ctx context.Context, employeeID, salonID uuid.UUID, o *domain.PermissionOverrides) error
	DeletePermissionOverrides(ctx context.Context, employeeID, salonID uuid.UUID) error
}

type Service struct {
	repo Store
}

func New(repo Store) *Service {
	return &Service{repo: repo}
}

// Create adds an employee to the salon. The work schedule is validated
// strictly on write; tolerant parsing only applies to data already stored.
func (s *Service) Create(ctx context.Context, salonID uuid.UUID, req transport.CreateEmployeeRequest) (*transport.EmployeeResponse, error) {
	if err := validateSchedule(req.WorkSchedule); err != nil {
		return nil, err
	}

	emp := &repository.Employee{
		SalonID:      salonID,
		FirstName:    sanitize.Text(req.FirstName),
		LastName:     sanitize.Text(req.LastName),
		Role:         req.Role,
		WorkSchedule: req.WorkSchedule,
		IsAvailable:  true,
	}
	if req.IsAvailable != nil {
		emp.IsAvailable = *req.IsAvailable
	}

	if err := s.repo.Create(ctx, emp); err != nil {
		return nil, err
	}

	resp := toResponse(emp)
	return &resp, nil
}

func (s *Service) GetByID(ctx context.Context, salonID, id uuid.UUID) (*transport.EmployeeResponse, error) {
	emp, err := s.repo.GetByID(ctx, id, salonID)
	if err != nil {
		return nil, err
	}
	resp := toResponse(emp)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, salonID uuid.UUID) ([]transport.EmployeeResponse, error) {
	employees, err := s.repo.List(ctx, salonID)
	if err != nil {
		return nil, err
	}

	out := make([]transport.EmployeeResponse, len(employees))
	for i := range employees {
		out[i] = toResponse(&employees[i])
	}
	return out, nil
}

func (s *Service) Update(ctx context.Context, salonID, id uuid.UUID, req transport.UpdateEmployeeRequest) (*transport.EmployeeResponse, error) {
	if err := validateSchedule(req.WorkSchedule); err != nil {
		return nil, err
	}

	emp, err := s.repo.GetByID(ctx, id, salonID)
	if err != nil {
		return nil, err
	}

	emp.FirstName = sanitize.Text(req.FirstName)
	emp.LastName = sanitize.Text(req.LastName)
	emp.Role = req.Role
	emp.WorkSchedule = req.WorkSchedule
	if req.IsAvailable != nil {
		emp.IsAvailable = *req.IsAvailable
	}

	if err := s.repo.Update(ctx, emp); err != nil {
		return nil, err
	}

	resp := toResponse(emp)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, salonID, id uuid.UUID) error {
	return s.repo.Delete(ctx, id, salonID)
}

// GetPermissions returns the employee's overrides, creating the all-unset
// row on first access. An all-unset row means the role defaults apply
// untouched.
func (s *Service) GetPermissions(ctx context.Context, salonID, id uuid.UUID) (*transport.PermissionOverridesResponse, error) {
	if _, err := s.repo.GetByID(ctx, id, salonID); err != nil {
		return nil, err
	}

	overrides, err := s.repo.GetPermissionOverrides(ctx, id, salonID)
	if err != nil {
		return nil, err
	}
	if overrides == nil {
		overrides = &domain.PermissionOverrides{}
		if err := s.repo.UpsertPermissionOverrides(ctx, id, salonID, overrides); err != nil {
			return nil, err
		}
	}

	return &transport.PermissionOverridesResponse{
		EmployeeID:                 id,
		PermissionOverridesRequest: fromOverrides(overrides),
	}, nil
}

// SetPermissions stores per-employee overrides.
func (s *Service) SetPermissions(ctx context.Context, salonID, id uuid.UUID, req transport.PermissionOverridesRequest) (*transport.PermissionOverridesResponse, error) {
	if _, err := s.repo.GetByID(ctx, id, salonID); err != nil {
		return nil, err
	}

	overrides := toOverrides(req)
	if err := s.repo.UpsertPermissionOverrides(ctx, id, salonID, overrides); err != nil {
		return nil, err
	}

	return &transport.PermissionOverridesResponse{
		EmployeeID:                 id,
		PermissionOverridesRequest: req,
	}, nil
}

// ResetPermissions removes the overrides so role defaults apply again.
func (s *Service) ResetPermissions(ctx context.Context, salonID, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id, salonID); err != nil {
		return err
	}
	return s.repo.DeletePermissionOverrides(ctx, id, salonID)
}

// validateSchedule rejects malformed schedule entries on write. Keys must
// be French weekday names and values "HH:MM-HH:MM" with start before end.
func validateSchedule(schedule map[string]string) error {
	for day, rawRange := range schedule {
		if !validWeekday(day) {
			return apperr.Validation("unknown weekday: " + day)
		}

		parts := strings.Split(rawRange, "-")
		if len(parts) != 2 {
			return apperr.Validation("invalid schedule range for " + day + ", expected HH:MM-HH:MM")
		}
		start, err := domain.ParseClock(strings.TrimSpace(parts[0]))
		if err != nil {
			return apperr.Validation("invalid start time for " + day)
		}
		end, err := domain.ParseClock(strings.TrimSpace(parts[1]))
		if err != nil {
			return apperr.Validation("invalid end time for " + day)
		}
		if start >= end {
			return apperr.Validation("start must be before end for " + day)
		}
	}
	return nil
}

func validWeekday(day string) bool {
	for weekday := 0; weekday < 7; weekday++ {
		if domain.WeekdayName(weekday) == day {
			return true
		}
	}
	return false
}

func toResponse(emp *repository.Employee) transport.EmployeeResponse {
	return transport.EmployeeResponse{
		ID:           emp.ID,
		SalonID:      emp.SalonID,
		FirstName:    emp.FirstName,
		LastName:     emp.LastName,
		Role:         emp.Role,
		WorkSchedule: emp.WorkSchedule,
		IsAvailable:  emp.IsAvailable,
		CreatedAt:    emp.CreatedAt,
		UpdatedAt:    emp.UpdatedAt,
	}
}

func toOverrides(req transport.PermissionOverridesRequest) *domain.PermissionOverrides {
	return &domain.PermissionOverrides{
		CanCreate:     req.CanCreate,
		CanViewAll:    req.CanViewAll,
		CanConfirm:    req.CanConfirm,
		CanStart:      req.CanStart,
		CanComplete:   req.CanComplete,
		CanCancel:     req.CanCancel,
		CanMarkNoShow: req.CanMarkNoShow,
		CanReschedule: req.CanReschedule,
		CanReassign:   req.CanReassign,
		CanUpdate:     req.CanUpdate,
		CanDelete:     req.CanDelete,
	}
}

func fromOverrides(o *domain.PermissionOverrides) transport.PermissionOverridesRequest {
	return transport.PermissionOverridesRequest{
		CanCreate:     o.CanCreate,
		CanViewAll:    o.CanViewAll,
		CanConfirm:    o.CanConfirm,
		CanStart:      o.CanStart,
		CanComplete:   o.CanComplete,
		CanCancel:     o.CanCancel,
		CanMarkNoShow: o.CanMarkNoShow,
		CanReschedule: o.CanReschedule,
		CanReassign:   o.CanReassign,
		CanUpdate:     o.CanUpdate,
		CanDelete:     o.CanDelete,
	}
}
