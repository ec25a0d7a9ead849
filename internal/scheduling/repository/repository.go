// Package repository persists appointments and loads the calendar inputs
// the scheduling engine needs: opening hours, employee schedules, service
// durations and permission overrides. All queries are scoped by salon_id.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"salon_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx, so the
// same queries run inside and outside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository provides database operations for the scheduling module.
type Repository struct {
	pool *pgxpool.Pool
	db   Querier
}

const appointmentNotFoundMsg = "appointment not found"

// New creates a scheduling repository backed by the pool.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool, db: pool}
}

// withTx returns a repository whose queries run on the given transaction.
func (r *Repository) withTx(tx pgx.Tx) *Repository {
	return &Repository{pool: r.pool, db: tx}
}

// InTx runs fn inside a database transaction. The booking write path uses
// this together with LockEmployee so concurrent bookings for the same
// employee serialize instead of double-booking.
func (r *Repository) InTx(ctx context.Context, fn func(tx *Repository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(r.withTx(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Appointment represents the appointment database model. Times of day are
// stored as minutes since midnight, matching the engine's representation.
type Appointment struct {
	ID              uuid.UUID  `db:"id"`
	SalonID         uuid.UUID  `db:"salon_id"`
	ClientID        uuid.UUID  `db:"client_id"`
	EmployeeID      uuid.UUID  `db:"employee_id"`
	ServiceID       uuid.UUID  `db:"service_id"`
	Date            time.Time  `db:"date"`
	StartMinutes    int        `db:"start_minutes"`
	DurationMinutes int        `db:"duration_minutes"`
	Status          string     `db:"status"`
	Notes           *string    `db:"notes"`
	CreatedBy       *uuid.UUID `db:"created_by"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

const appointmentColumns = `id, salon_id, client_id, employee_id, service_id, date,
	start_minutes, duration_minutes, status, notes, created_by, created_at, updated_at`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var appt Appointment
	err := row.Scan(
		&appt.ID, &appt.SalonID, &appt.ClientID, &appt.EmployeeID, &appt.ServiceID, &appt.Date,
		&appt.StartMinutes, &appt.DurationMinutes, &appt.Status, &appt.Notes,
		&appt.CreatedBy, &appt.CreatedAt, &appt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

// Create inserts a new appointment.
func (r *Repository) Create(ctx context.Context, appt *Appointment) error {
	query := `
		INSERT INTO appointments (
			id, salon_id, client_id, employee_id, service_id, date,
			start_minutes, duration_minutes, status, notes, created_by, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)`

	_, err := r.db.Exec(ctx, query,
		appt.ID, appt.SalonID, appt.ClientID, appt.EmployeeID, appt.ServiceID, appt.Date,
		appt.StartMinutes, appt.DurationMinutes, appt.Status, appt.Notes,
		appt.CreatedBy, appt.CreatedAt, appt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}

	return nil
}

// GetByID retrieves an appointment by its ID within a salon.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID, salonID uuid.UUID) (*Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1 AND salon_id = $2`

	appt, err := scanAppointment(r.db.QueryRow(ctx, query, id, salonID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(appointmentNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	return appt, nil
}

// UpdateStatus advances the appointment status and optionally replaces
// notes. The write is guarded on the status the caller read, so two racing
// transitions cannot both apply.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, salonID uuid.UUID, fromStatus, toStatus string, notes *string) error {
	query := `UPDATE appointments SET status = $4, notes = COALESCE($5, notes), updated_at = $6
		WHERE id = $1 AND salon_id = $2 AND status = $3`

	result, err := r.db.Exec(ctx, query, id, salonID, fromStatus, toStatus, notes, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return r.guardedWriteMiss(ctx, id, salonID)
	}

	return nil
}

// UpdateSlot moves an appointment to a new employee, date and start time,
// setting its status and merged notes. Guarded on the status the caller
// read, like UpdateStatus. Used by reschedule and reassign inside the
// booking transaction.
func (r *Repository) UpdateSlot(ctx context.Context, id uuid.UUID, salonID uuid.UUID, employeeID uuid.UUID, date time.Time, startMinutes int, fromStatus, toStatus string, notes *string) error {
	query := `UPDATE appointments SET employee_id = $4, date = $5, start_minutes = $6, status = $7, notes = COALESCE($8, notes), updated_at = $9
		WHERE id = $1 AND salon_id = $2 AND status = $3`

	result, err := r.db.Exec(ctx, query, id, salonID, fromStatus, employeeID, date, startMinutes, toStatus, notes, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update appointment slot: %w", err)
	}
	if result.RowsAffected() == 0 {
		return r.guardedWriteMiss(ctx, id, salonID)
	}

	return nil
}

// guardedWriteMiss disambiguates a status-guarded write that matched no
// row: the appointment is either gone or its status changed under the
// caller.
func (r *Repository) guardedWriteMiss(ctx context.Context, id, salonID uuid.UUID) error {
	var status string
	err := r.db.QueryRow(ctx, `SELECT status FROM appointments WHERE id = $1 AND salon_id = $2`, id, salonID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(appointmentNotFoundMsg)
	}
	if err != nil {
		return fmt.Errorf("failed to re-read appointment: %w", err)
	}
	return apperr.InvalidTransition("appointment was moved to " + status + " by another request")
}

// UpdateNotes replaces the appointment notes.
func (r *Repository) UpdateNotes(ctx context.Context, id uuid.UUID, salonID uuid.UUID, notes *string) error {
	query := `UPDATE appointments SET notes = $3, updated_at = $4 WHERE id = $1 AND salon_id = $2`

	result, err := r.db.Exec(ctx, query, id, salonID, notes, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update appointment notes: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(appointmentNotFoundMsg)
	}

	return nil
}

// Delete removes an appointment.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID, salonID uuid.UUID) error {
	query := `DELETE FROM appointments WHERE id = $1 AND salon_id = $2`

	result, err := r.db.Exec(ctx, query, id, salonID)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(appointmentNotFoundMsg)
	}

	return nil
}

// ListParams contains filters for listing appointments.
type ListParams struct {
	SalonID    uuid.UUID
	EmployeeID *uuid.UUID
	ClientID   *uuid.UUID
	Status     *string
	DateFrom   *time.Time
	DateTo     *time.Time
	Page       int
	PageSize   int
}

// ListResult contains a page of appointments.
type ListResult struct {
	Items      []Appointment
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// List retrieves appointments with optional filtering, ordered by date and
// start time.
func (r *Repository) List(ctx context.Context, params ListParams) (*ListResult, error) {
	baseQuery := `FROM appointments WHERE salon_id = $1`
	args := []any{params.SalonID}
	argIndex := 2

	addFilter(&baseQuery, &args, &argIndex, params.EmployeeID != nil, " AND employee_id = $%d", derefUUID(params.EmployeeID))
	addFilter(&baseQuery, &args, &argIndex, params.ClientID != nil, " AND client_id = $%d", derefUUID(params.ClientID))
	addFilter(&baseQuery, &args, &argIndex, params.Status != nil, " AND status = $%d", derefString(params.Status))
	addFilter(&baseQuery, &args, &argIndex, params.DateFrom != nil, " AND date >= $%d", derefTime(params.DateFrom))
	addFilter(&baseQuery, &args, &argIndex, params.DateTo != nil, " AND date <= $%d", derefTime(params.DateTo))

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) "+baseQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count appointments: %w", err)
	}

	totalPages := (total + params.PageSize - 1) / params.PageSize
	offset := (params.Page - 1) * params.PageSize

	selectQuery := fmt.Sprintf(`SELECT %s %s ORDER BY date ASC, start_minutes ASC LIMIT $%d OFFSET $%d`,
		appointmentColumns, baseQuery, argIndex, argIndex+1)
	args = append(args, params.PageSize, offset)

	items, err := r.queryAppointments(ctx, selectQuery, args...)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Items:      items,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages,
	}, nil
}

const listEmployeeDayQuery = `SELECT ` + appointmentColumns + `
	FROM appointments
	WHERE salon_id = $1 AND employee_id = $2 AND date = $3
	AND status IN ('PENDING', 'CONFIRMED', 'IN_PROGRESS')
	AND id != $4
	ORDER BY start_minutes ASC`

// ListEmployeeDay retrieves the active appointments occupying an employee's
// calendar on a date. excludeID skips the appointment being moved so a
// reschedule does not conflict with itself.
func (r *Repository) ListEmployeeDay(ctx context.Context, salonID, employeeID uuid.UUID, date time.Time, excludeID uuid.UUID) ([]Appointment, error) {
	return r.queryAppointments(ctx, listEmployeeDayQuery, salonID, employeeID, date, excludeID)
}

// ListForDate retrieves all appointments in a salon on a date.
func (r *Repository) ListForDate(ctx context.Context, salonID uuid.UUID, date time.Time) ([]Appointment, error) {
	query := `SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE salon_id = $1 AND date = $2
		ORDER BY start_minutes ASC`

	return r.queryAppointments(ctx, query, salonID, date)
}

// ListUpcoming retrieves active appointments from a date onward.
func (r *Repository) ListUpcoming(ctx context.Context, salonID uuid.UUID, from time.Time, limit int) ([]Appointment, error) {
	query := `SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE salon_id = $1 AND date >= $2
		AND status IN ('PENDING', 'CONFIRMED', 'IN_PROGRESS')
		ORDER BY date ASC, start_minutes ASC
		LIMIT $3`

	return r.queryAppointments(ctx, query, salonID, from, limit)
}

func (r *Repository) queryAppointments(ctx context.Context, query string, args ...any) ([]Appointment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer rows.Close()

	var items []Appointment
	for rows.Next() {
		var appt Appointment
		if err := rows.Scan(
			&appt.ID, &appt.SalonID, &appt.ClientID, &appt.EmployeeID, &appt.ServiceID, &appt.Date,
			&appt.StartMinutes, &appt.DurationMinutes, &appt.Status, &appt.Notes,
			&appt.CreatedBy, &appt.CreatedAt, &appt.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan appointment: %w", err)
		}
		items = append(items, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate appointments: %w", err)
	}

	return items, nil
}

func addFilter(baseQuery *string, args *[]any, argIndex *int, apply bool, clause string, value any) {
	if !apply {
		return
	}
	*baseQuery += fmt.Sprintf(clause, *argIndex)
	*args = append(*args, value)
	*argIndex++
}

func derefUUID(value *uuid.UUID) uuid.UUID {
	if value == nil {
		return uuid.UUID{}
	}
	return *value
}

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func derefTime(value *time.Time) time.Time {
	if value == nil {
		return time.Time{}
	}
	return *value
}

// decodeWorkSchedule converts a jsonb work_schedule payload into the
// weekday-keyed range map the engine consumes. Values that are not strings
// are carried through as their raw JSON, which the engine then rejects as
// a malformed entry (day off) rather than failing the whole schedule.
func decodeWorkSchedule(raw []byte) map[string]string {
	if len(raw) == 0 {
		return nil
	}

	var typed map[string]string
	if err := json.Unmarshal(raw, &typed); err == nil {
		return typed
	}

	var loose map[string]json.RawMessage
	if err := json.Unmarshal(raw, &loose); err != nil {
		return nil
	}
	out := make(map[string]string, len(loose))
	for k, v := range loose {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			out[k] = s
		} else {
			out[k] = string(v)
		}
	}
	return out
}
