// Package auth provides the authentication bounded context module: salon
// registration, staff login and token management.
package auth

import (
	"salon_backend/internal/auth/handler"
	"salon_backend/internal/auth/repository"
	"salon_backend/internal/auth/service"
	authvalidator "salon_backend/internal/auth/validator"
	"salon_backend/internal/email"
	"salon_backend/internal/events"
	apphttp "salon_backend/internal/http"
	"salon_backend/platform/logger"
	"salon_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the auth bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the auth module with all its dependencies.
func NewModule(pool *pgxpool.Pool, cfg service.Config, bus events.Bus, mail email.Sender, val *validator.Validator, log *logger.Logger) (*Module, error) {
	if err := authvalidator.Register(val); err != nil {
		return nil, err
	}

	repo := repository.New(pool)
	svc := service.New(repo, cfg, bus, mail, log)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "auth"
}

// Service returns the auth service for cross-module wiring.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts auth routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Public auth routes with stricter rate limiting
	authGroup := ctx.V1.Group("/auth")
	authGroup.Use(ctx.AuthRateLimiter.RateLimit())
	m.handler.RegisterRoutes(authGroup)

	// Protected user routes
	ctx.Protected.GET("/users/me", m.handler.GetMe)
	ctx.Protected.POST("/users/me/password", m.handler.ChangePassword)

	// Admin routes
	ctx.Admin.GET("/users", m.handler.ListUsers)
	ctx.Admin.POST("/users", m.handler.CreateUser)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
