package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salon_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const paymentColumns = `id, salon_id, appointment_id, amount, method, notes, recorded_by, created_at`

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Payment is money received for an appointment. Several payments may be
// attached to one appointment (deposit at booking, rest at the desk).
type Payment struct {
	ID            uuid.UUID
	SalonID       uuid.UUID
	AppointmentID uuid.UUID
	Amount        float64
	Method        string
	Notes         *string
	RecordedBy    *uuid.UUID
	CreatedAt     time.Time
}

func (r *Repository) Create(ctx context.Context, p *Payment) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO payments (salon_id, appointment_id, amount, method, notes, recorded_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, p.SalonID, p.AppointmentID, p.Amount, p.Method, p.Notes, p.RecordedBy).
		Scan(&p.ID, &p.CreatedAt)
}

// GetAppointmentStatus returns the status of the referenced appointment,
// scoped to the salon. Used to refuse payments on cancelled bookings.
func (r *Repository) GetAppointmentStatus(ctx context.Context, appointmentID, salonID uuid.UUID) (string, error) {
	var status string
	err := r.pool.QueryRow(ctx, `
		SELECT status FROM appointments WHERE id = $1 AND salon_id = $2
	`, appointmentID, salonID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperr.NotFound("appointment not found")
		}
		return "", fmt.Errorf("failed to load appointment status: %w", err)
	}
	return status, nil
}

func (r *Repository) ListByAppointment(ctx context.Context, appointmentID, salonID uuid.UUID) ([]Payment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+paymentColumns+` FROM payments
		WHERE appointment_id = $1 AND salon_id = $2
		ORDER BY created_at
	`, appointmentID, salonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()
	return scanPayments(rows)
}

// ListForDay returns the payments recorded on a calendar day, oldest first.
func (r *Repository) ListForDay(ctx context.Context, salonID uuid.UUID, date time.Time) ([]Payment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+paymentColumns+` FROM payments
		WHERE salon_id = $1 AND created_at >= $2 AND created_at < $3
		ORDER BY created_at
	`, salonID, date, date.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()
	return scanPayments(rows)
}

// SumForDay totals what came in on a calendar day, per method.
func (r *Repository) SumForDay(ctx context.Context, salonID uuid.UUID, date time.Time) (map[string]float64, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT method, COALESCE(SUM(amount), 0) FROM payments
		WHERE salon_id = $1 AND created_at >= $2 AND created_at < $3
		GROUP BY method
	`, salonID, date, date.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to sum payments: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]float64)
	for rows.Next() {
		var method string
		var sum float64
		if err := rows.Scan(&method, &sum); err != nil {
			return nil, fmt.Errorf("failed to scan payment total: %w", err)
		}
		totals[method] = sum
	}
	return totals, rows.Err()
}

func scanPayments(rows pgx.Rows) ([]Payment, error) {
	payments := make([]Payment, 0)
	for rows.Next() {
		var p Payment
		err := rows.Scan(&p.ID, &p.SalonID, &p.AppointmentID, &p.Amount,
			&p.Method, &p.Notes, &p.RecordedBy, &p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
