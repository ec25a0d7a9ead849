// Package catalog provides the service catalog bounded context: the
// offerings clients book, with durations and prices.
package catalog

import (
	"salon_backend/internal/catalog/handler"
	"salon_backend/internal/catalog/repository"
	"salon_backend/internal/catalog/service"
	apphttp "salon_backend/internal/http"
	"salon_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the catalog module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)

	return &Module{handler: handler.New(svc, val)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// RegisterRoutes mounts the catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/services", m.handler.List)
	ctx.Protected.GET("/services/:id", m.handler.GetByID)

	ctx.Admin.POST("/services", m.handler.Create)
	ctx.Admin.PUT("/services/:id", m.handler.Update)
	ctx.Admin.DELETE("/services/:id", m.handler.Deactivate)

	// Booking-page listing, rate limited like the other public routes
	public := ctx.V1.Group("/public/salons/:salonId")
	public.Use(ctx.PublicRateLimiter.RateLimit())
	public.GET("/services", m.handler.ListPublic)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
