// Package scheduling provides the appointment booking bounded context:
// availability calculation, conflict-free booking, status transitions and
// the public booking page endpoints.
package scheduling

import (
	"salon_backend/internal/email"
	"salon_backend/internal/events"
	apphttp "salon_backend/internal/http"
	"salon_backend/internal/scheduler"
	"salon_backend/internal/scheduling/handler"
	"salon_backend/internal/scheduling/repository"
	"salon_backend/internal/scheduling/service"
	"salon_backend/platform/config"
	"salon_backend/platform/logger"
	"salon_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the scheduling bounded context module implementing http.Module.
type Module struct {
	handler       *handler.Handler
	publicHandler *handler.PublicHandler
	service       *service.Service
}

// NewModule creates and initializes the scheduling module with all its
// dependencies. sender and reminders may be nil; the related side effects
// are then skipped.
func NewModule(pool *pgxpool.Pool, cfg config.BookingConfig, bus events.Bus, sender email.Sender, reminders scheduler.ReminderScheduler, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(service.NewStore(repo), bus, sender, reminders, log, cfg)

	return &Module{
		handler:       handler.New(svc, val),
		publicHandler: handler.NewPublic(svc, val),
		service:       svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "scheduling"
}

// Service returns the scheduling service for cross-module wiring.
func (m *Module) Service() *service.Service {
	return m.service
}

// SetClientDirectory wires the clients module into the public booking flow.
func (m *Module) SetClientDirectory(dir service.ClientDirectory) {
	m.service.SetClientDirectory(dir)
}

// SetPaymentRecorder wires the payments module into the booking flow.
func (m *Module) SetPaymentRecorder(rec service.PaymentRecorder) {
	m.service.SetPaymentRecorder(rec)
}

// RegisterRoutes mounts the scheduling routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/appointments"))

	// Public booking page routes with stricter rate limiting
	public := ctx.V1.Group("/public/salons/:salonId")
	public.Use(ctx.PublicRateLimiter.RateLimit())
	m.publicHandler.RegisterRoutes(public)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
