package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("not found")
var ErrEmailTaken = errors.New("email already registered")

const userColumns = `id, salon_id, employee_id, email, password_hash, role, first_name, last_name, created_at, updated_at`

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// User is a staff login. Every user belongs to exactly one salon; stylists
// and receptionists are linked to their employee record through EmployeeID.
type User struct {
	ID           uuid.UUID
	SalonID      uuid.UUID
	EmployeeID   *uuid.UUID
	Email        string
	PasswordHash string
	Role         string
	FirstName    string
	LastName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewSalon carries the fields needed to provision a salon with its admin
// account in one transaction.
type NewSalon struct {
	Name          string
	Phone         *string
	Address       *string
	AdminEmail    string
	AdminPassword string
	AdminFirst    string
	AdminLast     string
	// Default opening hours applied to every weekday on creation.
	OpenMinutes  int
	CloseMinutes int
	ClosedDays   []int
}

// RegisterSalon creates the salon, its default opening hours and the admin
// user in a single transaction, so a half-provisioned salon can never exist.
func (r *Repository) RegisterSalon(ctx context.Context, input NewSalon) (uuid.UUID, User, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, User{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var salonID uuid.UUID
	err = tx.QueryRow(ctx, `
		INSERT INTO salons (name, phone, address)
		VALUES ($1, $2, $3)
		RETURNING id
	`, input.Name, input.Phone, input.Address).Scan(&salonID)
	if err != nil {
		return uuid.Nil, User{}, err
	}

	closed := make(map[int]bool, len(input.ClosedDays))
	for _, day := range input.ClosedDays {
		closed[day] = true
	}
	for weekday := 0; weekday < 7; weekday++ {
		if _, err := tx.Exec(ctx, `
			INSERT INTO salon_opening_hours (salon_id, weekday, open_minutes, close_minutes, is_closed)
			VALUES ($1, $2, $3, $4, $5)
		`, salonID, weekday, input.OpenMinutes, input.CloseMinutes, closed[weekday]); err != nil {
			return uuid.Nil, User{}, err
		}
	}

	var user User
	err = tx.QueryRow(ctx, `
		INSERT INTO users (salon_id, email, password_hash, role, first_name, last_name)
		VALUES ($1, $2, $3, 'ADMIN', $4, $5)
		RETURNING `+userColumns+`
	`, salonID, input.AdminEmail, input.AdminPassword, input.AdminFirst, input.AdminLast).Scan(
		&user.ID, &user.SalonID, &user.EmployeeID, &user.Email, &user.PasswordHash,
		&user.Role, &user.FirstName, &user.LastName, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return uuid.Nil, User{}, mapUniqueViolation(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, User{}, err
	}

	return salonID, user, nil
}

// CreateUser adds a staff login to an existing salon, optionally linked to
// an employee record.
func (r *Repository) CreateUser(ctx context.Context, salonID uuid.UUID, employeeID *uuid.UUID, email, passwordHash, role, firstName, lastName string) (User, error) {
	var user User
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (salon_id, employee_id, email, password_hash, role, first_name, last_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+userColumns+`
	`, salonID, employeeID, email, passwordHash, role, firstName, lastName).Scan(
		&user.ID, &user.SalonID, &user.EmployeeID, &user.Email, &user.PasswordHash,
		&user.Role, &user.FirstName, &user.LastName, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return User{}, mapUniqueViolation(err)
	}
	return user, nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return r.scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE email = $1
	`, email))
}

func (r *Repository) GetUserByID(ctx context.Context, userID uuid.UUID) (User, error) {
	return r.scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = $1
	`, userID))
}

func (r *Repository) scanUser(row pgx.Row) (User, error) {
	var user User
	err := row.Scan(
		&user.ID, &user.SalonID, &user.EmployeeID, &user.Email, &user.PasswordHash,
		&user.Role, &user.FirstName, &user.LastName, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return user, err
}

func (r *Repository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users SET password_hash = $2, updated_at = now()
		WHERE id = $1
	`, userID, passwordHash)
	return err
}

// ListUsers returns every login of one salon.
func (r *Repository) ListUsers(ctx context.Context, salonID uuid.UUID) ([]User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE salon_id = $1
		ORDER BY email
	`, salonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		var user User
		if err := rows.Scan(
			&user.ID, &user.SalonID, &user.EmployeeID, &user.Email, &user.PasswordHash,
			&user.Role, &user.FirstName, &user.LastName, &user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *Repository) CreateRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
	`, userID, tokenHash, expiresAt)
	return err
}

func (r *Repository) GetRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, time.Time, error) {
	var userID uuid.UUID
	var expiresAt time.Time
	err := r.pool.QueryRow(ctx, `
		SELECT user_id, expires_at FROM refresh_tokens
		WHERE token_hash = $1 AND revoked_at IS NULL
	`, tokenHash).Scan(&userID, &expiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.UUID{}, time.Time{}, ErrNotFound
	}
	return userID, expiresAt, err
}

func (r *Repository) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE refresh_tokens SET revoked_at = now()
		WHERE token_hash = $1 AND revoked_at IS NULL
	`, tokenHash)
	return err
}

func (r *Repository) RevokeAllRefreshTokens(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE refresh_tokens SET revoked_at = now()
		WHERE user_id = $1 AND revoked_at IS NULL
	`, userID)
	return err
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrEmailTaken
	}
	return err
}
