package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salon_backend/internal/scheduling/domain"
	"salon_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Employee is the scheduling module's view of an employee: identity,
// tenant, weekly schedule and bookability.
type Employee struct {
	ID           uuid.UUID
	SalonID      uuid.UUID
	FirstName    string
	LastName     string
	Role         string
	WorkSchedule map[string]string
	IsAvailable  bool
}

// ServiceInfo is the scheduling module's view of a catalog service.
type ServiceInfo struct {
	ID              uuid.UUID
	SalonID         uuid.UUID
	Name            string
	DurationMinutes int
	Price           float64
	IsActive        bool
}

// ClientInfo is the scheduling module's view of a client.
type ClientInfo struct {
	ID        uuid.UUID
	SalonID   uuid.UUID
	FirstName string
	LastName  string
	Phone     string
	Email     *string
}

const employeeQuery = `SELECT id, salon_id, first_name, last_name, role, work_schedule, is_available
	FROM employees WHERE id = $1 AND salon_id = $2`

// GetEmployee retrieves an employee's schedule data within a salon.
func (r *Repository) GetEmployee(ctx context.Context, id uuid.UUID, salonID uuid.UUID) (*Employee, error) {
	return r.scanEmployee(r.db.QueryRow(ctx, employeeQuery, id, salonID))
}

// LockEmployee retrieves an employee with SELECT ... FOR UPDATE. Called on
// a transaction-bound repository, it serializes concurrent bookings for the
// same employee: the second writer blocks until the first commits and then
// re-checks the slot against the committed calendar.
func (r *Repository) LockEmployee(ctx context.Context, id uuid.UUID, salonID uuid.UUID) (*Employee, error) {
	return r.scanEmployee(r.db.QueryRow(ctx, employeeQuery+` FOR UPDATE`, id, salonID))
}

func (r *Repository) scanEmployee(row pgx.Row) (*Employee, error) {
	var emp Employee
	var rawSchedule []byte
	err := row.Scan(&emp.ID, &emp.SalonID, &emp.FirstName, &emp.LastName, &emp.Role, &rawSchedule, &emp.IsAvailable)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("employee not found")
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	emp.WorkSchedule = decodeWorkSchedule(rawSchedule)
	return &emp, nil
}

// ListBookableEmployees retrieves the employees of a salon that are open
// for booking.
func (r *Repository) ListBookableEmployees(ctx context.Context, salonID uuid.UUID) ([]Employee, error) {
	query := `SELECT id, salon_id, first_name, last_name, role, work_schedule, is_available
		FROM employees WHERE salon_id = $1 AND is_available = true
		ORDER BY first_name, last_name`

	rows, err := r.db.Query(ctx, query, salonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var items []Employee
	for rows.Next() {
		var emp Employee
		var rawSchedule []byte
		if err := rows.Scan(&emp.ID, &emp.SalonID, &emp.FirstName, &emp.LastName, &emp.Role, &rawSchedule, &emp.IsAvailable); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		emp.WorkSchedule = decodeWorkSchedule(rawSchedule)
		items = append(items, emp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return items, nil
}

// ListOpeningHours retrieves a salon's configured weekly opening hours.
// Weekdays without a row fall back to the engine's default window.
func (r *Repository) ListOpeningHours(ctx context.Context, salonID uuid.UUID) ([]domain.OpeningHour, error) {
	query := `SELECT weekday, open_minutes, close_minutes, is_closed
		FROM salon_opening_hours WHERE salon_id = $1 ORDER BY weekday`

	rows, err := r.db.Query(ctx, query, salonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list opening hours: %w", err)
	}
	defer rows.Close()

	var hours []domain.OpeningHour
	for rows.Next() {
		var entry domain.OpeningHour
		var openMin, closeMin int
		if err := rows.Scan(&entry.Weekday, &openMin, &closeMin, &entry.Closed); err != nil {
			return nil, fmt.Errorf("failed to scan opening hour: %w", err)
		}
		entry.Open = domain.TimeOfDay(openMin)
		entry.Close = domain.TimeOfDay(closeMin)
		hours = append(hours, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate opening hours: %w", err)
	}

	return hours, nil
}

// GetService retrieves a catalog service within a salon.
func (r *Repository) GetService(ctx context.Context, id uuid.UUID, salonID uuid.UUID) (*ServiceInfo, error) {
	query := `SELECT id, salon_id, name, duration_minutes, price, is_active
		FROM services WHERE id = $1 AND salon_id = $2`

	var svc ServiceInfo
	err := r.db.QueryRow(ctx, query, id, salonID).Scan(
		&svc.ID, &svc.SalonID, &svc.Name, &svc.DurationMinutes, &svc.Price, &svc.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("service not found")
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}

	return &svc, nil
}

// GetClient retrieves a client within a salon.
func (r *Repository) GetClient(ctx context.Context, id uuid.UUID, salonID uuid.UUID) (*ClientInfo, error) {
	query := `SELECT id, salon_id, first_name, last_name, phone, email
		FROM clients WHERE id = $1 AND salon_id = $2`

	var client ClientInfo
	err := r.db.QueryRow(ctx, query, id, salonID).Scan(
		&client.ID, &client.SalonID, &client.FirstName, &client.LastName, &client.Phone, &client.Email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("client not found")
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	return &client, nil
}

// GetSalonName retrieves a salon's display name.
func (r *Repository) GetSalonName(ctx context.Context, salonID uuid.UUID) (string, error) {
	var name string
	err := r.db.QueryRow(ctx, `SELECT name FROM salons WHERE id = $1`, salonID).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperr.NotFound("salon not found")
		}
		return "", fmt.Errorf("failed to get salon: %w", err)
	}
	return name, nil
}

// GetPermissionOverrides retrieves an employee's per-action overrides.
// Returns nil when no row exists, meaning every action defers to the role
// default.
func (r *Repository) GetPermissionOverrides(ctx context.Context, employeeID uuid.UUID, salonID uuid.UUID) (*domain.PermissionOverrides, error) {
	query := `SELECT can_create, can_view_all, can_confirm, can_start, can_complete,
		can_cancel, can_mark_no_show, can_reschedule, can_reassign, can_update, can_delete
		FROM employee_permissions WHERE employee_id = $1 AND salon_id = $2`

	var o domain.PermissionOverrides
	err := r.db.QueryRow(ctx, query, employeeID, salonID).Scan(
		&o.CanCreate, &o.CanViewAll, &o.CanConfirm, &o.CanStart, &o.CanComplete,
		&o.CanCancel, &o.CanMarkNoShow, &o.CanReschedule, &o.CanReassign, &o.CanUpdate, &o.CanDelete,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get permission overrides: %w", err)
	}

	return &o, nil
}

// StatusCounts is the per-status appointment tally for a dashboard day.
type StatusCounts map[string]int

// CountByStatusForDay tallies a salon's appointments on a date by status.
func (r *Repository) CountByStatusForDay(ctx context.Context, salonID uuid.UUID, date time.Time) (StatusCounts, error) {
	query := `SELECT status, COUNT(*) FROM appointments
		WHERE salon_id = $1 AND date = $2 GROUP BY status`

	rows, err := r.db.Query(ctx, query, salonID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to count appointments: %w", err)
	}
	defer rows.Close()

	counts := make(StatusCounts)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[status] = n
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate status counts: %w", err)
	}

	return counts, nil
}

// SumRevenueForDay totals the price of completed appointments on a date.
func (r *Repository) SumRevenueForDay(ctx context.Context, salonID uuid.UUID, date time.Time) (float64, error) {
	query := `SELECT COALESCE(SUM(s.price), 0)
		FROM appointments a
		JOIN services s ON s.id = a.service_id
		WHERE a.salon_id = $1 AND a.date = $2 AND a.status = 'COMPLETED'`

	var total float64
	if err := r.db.QueryRow(ctx, query, salonID, date).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum revenue: %w", err)
	}
	return total, nil
}
