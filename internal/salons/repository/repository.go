package repository

import (
	"context"
	"errors"
	"time"

	"salon_backend/internal/scheduling/domain"
	"salon_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Salon struct {
	ID        uuid.UUID
	Name      string
	Phone     *string
	Address   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Salon, error) {
	var salon Salon
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, phone, address, created_at, updated_at
		FROM salons WHERE id = $1
	`, id).Scan(&salon.ID, &salon.Name, &salon.Phone, &salon.Address, &salon.CreatedAt, &salon.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("salon not found")
	}
	if err != nil {
		return nil, err
	}
	return &salon, nil
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, name string, phone, address *string) (*Salon, error) {
	var salon Salon
	err := r.pool.QueryRow(ctx, `
		UPDATE salons
		SET name = $2, phone = $3, address = $4, updated_at = now()
		WHERE id = $1
		RETURNING id, name, phone, address, created_at, updated_at
	`, id, name, phone, address).Scan(&salon.ID, &salon.Name, &salon.Phone, &salon.Address, &salon.CreatedAt, &salon.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("salon not found")
	}
	if err != nil {
		return nil, err
	}
	return &salon, nil
}

// ListOpeningHours returns the salon's weekly hours ordered by weekday.
func (r *Repository) ListOpeningHours(ctx context.Context, salonID uuid.UUID) ([]domain.OpeningHour, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT weekday, open_minutes, close_minutes, is_closed
		FROM salon_opening_hours
		WHERE salon_id = $1
		ORDER BY weekday
	`, salonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hours := make([]domain.OpeningHour, 0, 7)
	for rows.Next() {
		var entry domain.OpeningHour
		var openMin, closeMin int
		if err := rows.Scan(&entry.Weekday, &openMin, &closeMin, &entry.Closed); err != nil {
			return nil, err
		}
		entry.Open = domain.TimeOfDay(openMin)
		entry.Close = domain.TimeOfDay(closeMin)
		hours = append(hours, entry)
	}
	return hours, rows.Err()
}

// ReplaceOpeningHours swaps the salon's whole weekly table in one
// transaction, so a partial update can never leave mixed hours behind.
func (r *Repository) ReplaceOpeningHours(ctx context.Context, salonID uuid.UUID, hours []domain.OpeningHour) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		DELETE FROM salon_opening_hours WHERE salon_id = $1
	`, salonID); err != nil {
		return err
	}

	for _, entry := range hours {
		if _, err := tx.Exec(ctx, `
			INSERT INTO salon_opening_hours (salon_id, weekday, open_minutes, close_minutes, is_closed)
			VALUES ($1, $2, $3, $4, $5)
		`, salonID, entry.Weekday, int(entry.Open), int(entry.Close), entry.Closed); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
