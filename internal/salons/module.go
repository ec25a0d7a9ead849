// Package salons provides the salon profile bounded context: the tenant's
// public details and its weekly opening hours.
package salons

import (
	apphttp "salon_backend/internal/http"
	"salon_backend/internal/salons/handler"
	"salon_backend/internal/salons/repository"
	"salon_backend/internal/salons/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the salons bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the salons module.
func NewModule(pool *pgxpool.Pool) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)

	return &Module{handler: handler.New(svc)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "salons"
}

// RegisterRoutes mounts the salon routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/salon", m.handler.Get)
	ctx.Protected.GET("/salon/opening-hours", m.handler.GetOpeningHours)

	ctx.Admin.PUT("/salon", m.handler.Update)
	ctx.Admin.PUT("/salon/opening-hours", m.handler.UpdateOpeningHours)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
