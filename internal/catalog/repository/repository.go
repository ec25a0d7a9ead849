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

const serviceColumns = `id, salon_id, name, description, duration_minutes, price, is_active, created_at, updated_at`

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Service is a bookable offering: a haircut, coloring, treatment. Price
// is in the salon's currency; DurationMinutes drives slot length.
type Service struct {
	ID              uuid.UUID
	SalonID         uuid.UUID
	Name            string
	Description     *string
	DurationMinutes int
	Price           float64
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (r *Repository) Create(ctx context.Context, svc *Service) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO services (salon_id, name, description, duration_minutes, price, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, svc.SalonID, svc.Name, svc.Description, svc.DurationMinutes, svc.Price, svc.IsActive).
		Scan(&svc.ID, &svc.CreatedAt, &svc.UpdatedAt)
}

func (r *Repository) GetByID(ctx context.Context, id, salonID uuid.UUID) (*Service, error) {
	return r.scanService(r.pool.QueryRow(ctx, `
		SELECT `+serviceColumns+` FROM services
		WHERE id = $1 AND salon_id = $2
	`, id, salonID))
}

// List returns the salon's services. When activeOnly is set, retired
// offerings are filtered out.
func (r *Repository) List(ctx context.Context, salonID uuid.UUID, activeOnly bool) ([]Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE salon_id = $1`
	if activeOnly {
		query += ` AND is_active = true`
	}
	query += ` ORDER BY name`

	rows, err := r.pool.Query(ctx, query, salonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer rows.Close()

	services := make([]Service, 0)
	for rows.Next() {
		svc, err := r.scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, *svc)
	}
	return services, rows.Err()
}

func (r *Repository) Update(ctx context.Context, svc *Service) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE services
		SET name = $3, description = $4, duration_minutes = $5, price = $6, is_active = $7, updated_at = now()
		WHERE id = $1 AND salon_id = $2
	`, svc.ID, svc.SalonID, svc.Name, svc.Description, svc.DurationMinutes, svc.Price, svc.IsActive)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("service not found")
	}
	return nil
}

// Deactivate retires a service instead of deleting it, so history stays
// intact for past appointments.
func (r *Repository) Deactivate(ctx context.Context, id, salonID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE services SET is_active = false, updated_at = now()
		WHERE id = $1 AND salon_id = $2
	`, id, salonID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("service not found")
	}
	return nil
}

func (r *Repository) scanService(row pgx.Row) (*Service, error) {
	var svc Service
	err := row.Scan(&svc.ID, &svc.SalonID, &svc.Name, &svc.Description,
		&svc.DurationMinutes, &svc.Price, &svc.IsActive, &svc.CreatedAt, &svc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("service not found")
		}
		return nil, fmt.Errorf("failed to scan service: %w", err)
	}
	return &svc, nil
}
