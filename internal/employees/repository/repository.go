package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"salon_backend/internal/scheduling/domain"
	"salon_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const employeeColumns = `id, salon_id, first_name, last_name, role, work_schedule, is_available, created_at, updated_at`

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Employee is a bookable staff member. WorkSchedule maps French weekday
// names to "HH:MM-HH:MM" ranges; absent days fall back to salon hours.
type Employee struct {
	ID           uuid.UUID
	SalonID      uuid.UUID
	FirstName    string
	LastName     string
	Role         string
	WorkSchedule map[string]string
	IsAvailable  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (r *Repository) Create(ctx context.Context, emp *Employee) error {
	schedule, err := json.Marshal(emp.WorkSchedule)
	if err != nil {
		return fmt.Errorf("failed to encode work schedule: %w", err)
	}

	return r.pool.QueryRow(ctx, `
		INSERT INTO employees (salon_id, first_name, last_name, role, work_schedule, is_available)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, emp.SalonID, emp.FirstName, emp.LastName, emp.Role, schedule, emp.IsAvailable).
		Scan(&emp.ID, &emp.CreatedAt, &emp.UpdatedAt)
}

func (r *Repository) GetByID(ctx context.Context, id, salonID uuid.UUID) (*Employee, error) {
	return r.scanEmployee(r.pool.QueryRow(ctx, `
		SELECT `+employeeColumns+` FROM employees
		WHERE id = $1 AND salon_id = $2
	`, id, salonID))
}

func (r *Repository) List(ctx context.Context, salonID uuid.UUID) ([]Employee, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+employeeColumns+` FROM employees
		WHERE salon_id = $1
		ORDER BY last_name, first_name
	`, salonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]Employee, 0)
	for rows.Next() {
		emp, err := r.scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, *emp)
	}
	return employees, rows.Err()
}

func (r *Repository) Update(ctx context.Context, emp *Employee) error {
	schedule, err := json.Marshal(emp.WorkSchedule)
	if err != nil {
		return fmt.Errorf("failed to encode work schedule: %w", err)
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE employees
		SET first_name = $3, last_name = $4, role = $5, work_schedule = $6, is_available = $7, updated_at = now()
		WHERE id = $1 AND salon_id = $2
	`, emp.ID, emp.SalonID, emp.FirstName, emp.LastName, emp.Role, schedule, emp.IsAvailable)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("employee not found")
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id, salonID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM employees WHERE id = $1 AND salon_id = $2
	`, id, salonID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("employee not found")
	}
	return nil
}

func (r *Repository) scanEmployee(row pgx.Row) (*Employee, error) {
	var emp Employee
	var rawSchedule []byte
	err := row.Scan(&emp.ID, &emp.SalonID, &emp.FirstName, &emp.LastName, &emp.Role,
		&rawSchedule, &emp.IsAvailable, &emp.CreatedAt, &emp.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("employee not found")
		}
		return nil, fmt.Errorf("failed to scan employee: %w", err)
	}

	if len(rawSchedule) > 0 {
		if err := json.Unmarshal(rawSchedule, &emp.WorkSchedule); err != nil {
			emp.WorkSchedule = nil
		}
	}
	return &emp, nil
}

// GetPermissionOverrides returns the per-employee overrides, or nil when
// the employee runs on role defaults.
func (r *Repository) GetPermissionOverrides(ctx context.Context, employeeID, salonID uuid.UUID) (*domain.PermissionOverrides, error) {
	var o domain.PermissionOverrides
	err := r.pool.QueryRow(ctx, `
		SELECT can_create, can_view_all, can_confirm, can_start, can_complete,
			can_cancel, can_mark_no_show, can_reschedule, can_reassign, can_update, can_delete
		FROM employee_permissions
		WHERE employee_id = $1 AND salon_id = $2
	`, employeeID, salonID).Scan(
		&o.CanCreate, &o.CanViewAll, &o.CanConfirm, &o.CanStart, &o.CanComplete,
		&o.CanCancel, &o.CanMarkNoShow, &o.CanReschedule, &o.CanReassign, &o.CanUpdate, &o.CanDelete,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// UpsertPermissionOverrides stores the employee's overrides, replacing any
// previous row.
func (r *Repository) UpsertPermissionOverrides(ctx context.Context, employeeID, salonID uuid.UUID, o *domain.PermissionOverrides) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO employee_permissions (
			employee_id, salon_id, can_create, can_view_all, can_confirm, can_start,
			can_complete, can_cancel, can_mark_no_show, can_reschedule, can_reassign, can_update, can_delete
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (employee_id) DO UPDATE SET
			can_create = EXCLUDED.can_create,
			can_view_all = EXCLUDED.can_view_all,
			can_confirm = EXCLUDED.can_confirm,
			can_start = EXCLUDED.can_start,
			can_complete = EXCLUDED.can_complete,
			can_cancel = EXCLUDED.can_cancel,
			can_mark_no_show = EXCLUDED.can_mark_no_show,
			can_reschedule = EXCLUDED.can_reschedule,
			can_reassign = EXCLUDED.can_reassign,
			can_update = EXCLUDED.can_update,
			can_delete = EXCLUDED.can_delete,
			updated_at = now()
	`, employeeID, salonID, o.CanCreate, o.CanViewAll, o.CanConfirm, o.CanStart,
		o.CanComplete, o.CanCancel, o.CanMarkNoShow, o.CanReschedule, o.CanReassign, o.CanUpdate, o.CanDelete)
	return err
}

// DeletePermissionOverrides resets the employee to role defaults.
func (r *Repository) DeletePermissionOverrides(ctx context.Context, employeeID, salonID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM employee_permissions WHERE employee_id = $1 AND salon_id = $2
	`, employeeID, salonID)
	return err
}
