package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"salon_backend/internal/auth/password"
	"salon_backend/internal/auth/repository"
	"salon_backend/internal/auth/token"
	"salon_backend/internal/auth/transport"
	"salon_backend/internal/email"
	"salon_backend/internal/events"
	"salon_backend/platform/config"
	"salon_backend/platform/logger"
	"salon_backend/platform/phone"
	"salon_backend/platform/sanitize"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrTokenExpired = errors.New("token expired")
var ErrTokenInvalid = errors.New("token invalid")
var ErrEmailTaken = repository.ErrEmailTaken

const (
	accessTokenType  = "access"
	refreshTokenType = "refresh"

	// Sunday is closed by default for newly registered salons.
	defaultClosedWeekday = 6
)

// Config combines the settings the auth service needs.
type Config interface {
	config.AuthServiceConfig
	config.BookingConfig
}

type Service struct {
	repo *repository.Repository
	cfg  Config
	bus  events.Bus
	mail email.Sender
	log  *logger.Logger
}

func New(repo *repository.Repository, cfg Config, bus events.Bus, mail email.Sender, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, bus: bus, mail: mail, log: log}
}

// Register provisions a new salon with its admin account and signs the
// admin in. The salon starts with the default opening hours on every day
// except Sunday.
func (s *Service) Register(ctx context.Context, req transport.RegisterRequest) (*transport.AuthResponse, error) {
	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	input := repository.NewSalon{
		Name:          sanitize.Text(req.SalonName),
		AdminEmail:    strings.ToLower(strings.TrimSpace(req.Email)),
		AdminPassword: hash,
		AdminFirst:    sanitize.Text(req.FirstName),
		AdminLast:     sanitize.Text(req.LastName),
		OpenMinutes:   parseMinutes(s.cfg.GetDefaultOpenTime(), 8*60),
		CloseMinutes:  parseMinutes(s.cfg.GetDefaultCloseTime(), 18*60),
		ClosedDays:    []int{defaultClosedWeekday},
	}
	if req.Phone != nil {
		normalized := phone.NormalizeE164(*req.Phone)
		input.Phone = &normalized
	}
	if req.Address != nil {
		input.Address = sanitize.TextPtr(req.Address)
	}

	salonID, user, err := s.repo.RegisterSalon(ctx, input)
	if err != nil {
		return nil, err
	}

	s.log.AuthEvent("salon_registered", user.Email, true, "")

	if s.bus != nil {
		s.bus.Publish(ctx, events.SalonRegistered{
			BaseEvent:  events.NewBaseEvent(),
			SalonID:    salonID,
			SalonName:  input.Name,
			AdminEmail: user.Email,
		})
	}
	if s.mail != nil {
		if err := s.mail.SendSalonWelcome(ctx, user.Email, input.Name); err != nil {
			s.log.Error("welcome email failed", "salon_id", salonID.String(), "error", err)
		}
	}

	return s.issueTokens(ctx, user)
}

// Login authenticates a staff member by email and password.
func (s *Service) Login(ctx context.Context, email, plainPassword string) (*transport.AuthResponse, error) {
	user, err := s.repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		s.log.AuthEvent("login", user.Email, false, "wrong password")
		return nil, ErrInvalidCredentials
	}

	s.log.AuthEvent("login", user.Email, true, "")
	return s.issueTokens(ctx, user)
}

// Refresh rotates a refresh token: the presented token is revoked and a
// fresh pair is issued.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*transport.AuthResponse, error) {
	hash := token.HashSHA256(refreshToken)
	userID, expiresAt, err := s.repo.GetRefreshToken(ctx, hash)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	if time.Now().After(expiresAt) {
		_ = s.repo.RevokeRefreshToken(ctx, hash)
		return nil, ErrTokenExpired
	}

	_ = s.repo.RevokeRefreshToken(ctx, hash)

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, ErrTokenInvalid
	}
	return s.issueTokens(ctx, user)
}

// Logout revokes the presented refresh token.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	hash := token.HashSHA256(refreshToken)
	return s.repo.RevokeRefreshToken(ctx, hash)
}

// CreateStaffUser adds a login for a salon employee. Admin only; enforced
// at the routing layer.
func (s *Service) CreateStaffUser(ctx context.Context, salonID uuid.UUID, req transport.CreateUserRequest) (*transport.UserResponse, error) {
	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.CreateUser(ctx, salonID, req.EmployeeID,
		strings.ToLower(strings.TrimSpace(req.Email)), hash, req.Role,
		sanitize.Text(req.FirstName), sanitize.Text(req.LastName))
	if err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// ListUsers returns the salon's staff logins.
func (s *Service) ListUsers(ctx context.Context, salonID uuid.UUID) ([]transport.UserResponse, error) {
	users, err := s.repo.ListUsers(ctx, salonID)
	if err != nil {
		return nil, err
	}
	out := make([]transport.UserResponse, len(users))
	for i, user := range users {
		out[i] = toUserResponse(user)
	}
	return out, nil
}

// GetMe returns the authenticated user's profile.
func (s *Service) GetMe(ctx context.Context, userID uuid.UUID) (*transport.UserResponse, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// ChangePassword verifies the current password before storing the new one
// and revokes every outstanding refresh token.
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := password.Compare(user.PasswordHash, current); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := password.Hash(next)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	return s.repo.RevokeAllRefreshTokens(ctx, userID)
}

func (s *Service) issueTokens(ctx context.Context, user repository.User) (*transport.AuthResponse, error) {
	accessToken, err := s.signJWT(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := token.GenerateRandomToken(48)
	if err != nil {
		return nil, err
	}

	hash := token.HashSHA256(refreshToken)
	expiresAt := time.Now().Add(s.cfg.GetRefreshTokenTTL())
	if err := s.repo.CreateRefreshToken(ctx, user.ID, hash, expiresAt); err != nil {
		return nil, err
	}

	return &transport.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         toUserResponse(user),
	}, nil
}

func (s *Service) signJWT(user repository.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":       user.ID.String(),
		"type":      accessTokenType,
		"role":      user.Role,
		"tenant_id": user.SalonID.String(),
		"exp":       now.Add(s.cfg.GetAccessTokenTTL()).Unix(),
		"iat":       now.Unix(),
	}
	if user.EmployeeID != nil {
		claims["employee_id"] = user.EmployeeID.String()
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenObj.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
}

func toUserResponse(user repository.User) transport.UserResponse {
	return transport.UserResponse{
		ID:         user.ID,
		SalonID:    user.SalonID,
		EmployeeID: user.EmployeeID,
		Email:      user.Email,
		Role:       user.Role,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		CreatedAt:  user.CreatedAt,
	}
}

// parseMinutes converts "HH:MM" to minutes since midnight, falling back
// when the configured value is unparseable.
func parseMinutes(clock string, fallback int) int {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return fallback
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return fallback
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return fallback
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return fallback
	}
	return hours*60 + minutes
}
