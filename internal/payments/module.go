// Package payments provides payment records attached to appointments:
// deposits taken at booking and settlements at the desk.
package payments

import (
	apphttp "salon_backend/internal/http"
	"salon_backend/internal/payments/handler"
	"salon_backend/internal/payments/repository"
	"salon_backend/internal/payments/service"
	schedservice "salon_backend/internal/scheduling/service"
	"salon_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the payments bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the payments module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator) *Module {
	svc := service.New(repository.New(pool))

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "payments"
}

// Recorder exposes the booking-flow hook for the scheduling module.
func (m *Module) Recorder() schedservice.PaymentRecorder {
	return m.service
}

// RegisterRoutes mounts the payment routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	payments := ctx.Protected.Group("/payments")
	payments.POST("", m.handler.Record)
	payments.GET("/day", m.handler.DaySummary)
	payments.GET("/appointment/:id", m.handler.ListByAppointment)
}

// Compile-time checks
var (
	_ apphttp.Module               = (*Module)(nil)
	_ schedservice.PaymentRecorder = (*service.Service)(nil)
)
