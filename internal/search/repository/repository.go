// Package repository runs the cross-entity search query. Clients match on
// name and phone, services on name and description, appointments through
// their client's name on upcoming days.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type SearchResult struct {
	ID           uuid.UUID
	Type         string
	Title        string
	Subtitle     string
	Status       string
	MatchedField string
	Score        float32
	CreatedAt    time.Time
	Total        int64
}

// GlobalSearch matches clients, services and upcoming appointments within a
// salon. Prefix matches rank above substring matches; ties break on recency.
func (r *Repository) GlobalSearch(ctx context.Context, salonID uuid.UUID, query string, limit int) ([]SearchResult, error) {
	querySQL := `
		WITH needle AS (
			SELECT '%' || $2 || '%' AS contains, $2 || '%' AS prefix
		),
		matches AS (
			SELECT
				c.id,
				'client' AS type,
				c.first_name || ' ' || c.last_name AS title,
				c.phone AS subtitle,
				'' AS status,
				CASE
					WHEN c.phone ILIKE n.contains THEN 'phone'
					ELSE 'name'
				END AS matched_field,
				CASE
					WHEN c.first_name ILIKE n.prefix OR c.last_name ILIKE n.prefix THEN 1.0
					ELSE 0.5
				END::real AS score,
				c.created_at
			FROM clients c, needle n
			WHERE c.salon_id = $1
			AND (c.first_name ILIKE n.contains OR c.last_name ILIKE n.contains OR c.phone ILIKE n.contains)

			UNION ALL

			SELECT
				s.id,
				'service' AS type,
				s.name AS title,
				coalesce(s.description, '') AS subtitle,
				CASE WHEN s.is_active THEN 'ACTIVE' ELSE 'INACTIVE' END AS status,
				'name' AS matched_field,
				CASE WHEN s.name ILIKE n.prefix THEN 1.0 ELSE 0.5 END::real AS score,
				s.created_at
			FROM services s, needle n
			WHERE s.salon_id = $1
			AND (s.name ILIKE n.contains OR s.description ILIKE n.contains)

			UNION ALL

			SELECT
				a.id,
				'appointment' AS type,
				c.first_name || ' ' || c.last_name AS title,
				to_char(a.date, 'YYYY-MM-DD') || ' ' ||
					lpad((a.start_minutes / 60)::text, 2, '0') || ':' ||
					lpad((a.start_minutes % 60)::text, 2, '0') AS subtitle,
				a.status,
				'client' AS matched_field,
				0.8::real AS score,
				a.created_at
			FROM appointments a
			JOIN clients c ON c.id = a.client_id
			CROSS JOIN needle n
			WHERE a.salon_id = $1
			AND a.date >= CURRENT_DATE
			AND (c.first_name ILIKE n.contains OR c.last_name ILIKE n.contains OR c.phone ILIKE n.contains)
		)
		SELECT id, type, title, subtitle, status, matched_field, score, created_at,
			COUNT(*) OVER() AS total
		FROM matches
		ORDER BY score DESC, created_at DESC
		LIMIT $3`

	rows, err := r.pool.Query(ctx, querySQL, salonID, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to run search: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var res SearchResult
		if err := rows.Scan(&res.ID, &res.Type, &res.Title, &res.Subtitle, &res.Status,
			&res.MatchedField, &res.Score, &res.CreatedAt, &res.Total); err != nil {
			return nil, fmt.Errorf("failed to scan search result: %w", err)
		}
		results = append(results, res)
	}

	return results, rows.Err()
}
