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

const clientColumns = `id, salon_id, first_name, last_name, phone, email, notes, created_at, updated_at`

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Client is a salon customer. Phone is stored in E.164 and unique within
// the salon; it is the lookup key for the public booking page.
type Client struct {
	ID        uuid.UUID
	SalonID   uuid.UUID
	FirstName string
	LastName  string
	Phone     string
	Email     *string
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r *Repository) Create(ctx context.Context, client *Client) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO clients (salon_id, first_name, last_name, phone, email, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, client.SalonID, client.FirstName, client.LastName, client.Phone, client.Email, client.Notes).
		Scan(&client.ID, &client.CreatedAt, &client.UpdatedAt)
}

func (r *Repository) GetByID(ctx context.Context, id, salonID uuid.UUID) (*Client, error) {
	return r.scanClient(r.pool.QueryRow(ctx, `
		SELECT `+clientColumns+` FROM clients
		WHERE id = $1 AND salon_id = $2
	`, id, salonID))
}

// FindByPhone looks a client up by normalized phone. Returns nil, nil
// when no client matches; absence is not an error on the booking path.
func (r *Repository) FindByPhone(ctx context.Context, salonID uuid.UUID, phoneE164 string) (*Client, error) {
	client, err := r.scanClient(r.pool.QueryRow(ctx, `
		SELECT `+clientColumns+` FROM clients
		WHERE salon_id = $1 AND phone = $2
	`, salonID, phoneE164))
	if err != nil {
		if apperr.GetKind(err) == apperr.KindNotFound {
			return nil, nil
		}
		return nil, err
	}
	return client, nil
}

// ListParams filters the client list. Search matches name or phone.
type ListParams struct {
	SalonID  uuid.UUID
	Search   string
	Page     int
	PageSize int
}

type ListResult struct {
	Items      []Client
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

func (r *Repository) List(ctx context.Context, params ListParams) (*ListResult, error) {
	where := `WHERE salon_id = $1`
	args := []interface{}{params.SalonID}
	if params.Search != "" {
		where += ` AND (first_name ILIKE $2 OR last_name ILIKE $2 OR phone LIKE $2)`
		args = append(args, "%"+params.Search+"%")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM clients `+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count clients: %w", err)
	}

	offset := (params.Page - 1) * params.PageSize
	args = append(args, params.PageSize, offset)
	query := fmt.Sprintf(`
		SELECT %s FROM clients %s
		ORDER BY last_name, first_name
		LIMIT $%d OFFSET $%d
	`, clientColumns, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	items := make([]Client, 0)
	for rows.Next() {
		client, err := r.scanClient(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *client)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	totalPages := (total + params.PageSize - 1) / params.PageSize
	return &ListResult{
		Items:      items,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages,
	}, nil
}

func (r *Repository) Update(ctx context.Context, client *Client) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE clients
		SET first_name = $3, last_name = $4, phone = $5, email = $6, notes = $7, updated_at = now()
		WHERE id = $1 AND salon_id = $2
	`, client.ID, client.SalonID, client.FirstName, client.LastName, client.Phone, client.Email, client.Notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("client not found")
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id, salonID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM clients WHERE id = $1 AND salon_id = $2
	`, id, salonID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("client not found")
	}
	return nil
}

func (r *Repository) scanClient(row pgx.Row) (*Client, error) {
	var client Client
	err := row.Scan(&client.ID, &client.SalonID, &client.FirstName, &client.LastName,
		&client.Phone, &client.Email, &client.Notes, &client.CreatedAt, &client.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("client not found")
		}
		return nil, fmt.Errorf("failed to scan client: %w", err)
	}
	return &client, nil
}
