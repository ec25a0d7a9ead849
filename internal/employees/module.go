// Package employees provides the staff management bounded context:
// employee records, weekly work schedules and permission overrides.
package employees

import (
	"salon_backend/internal/employees/handler"
	"salon_backend/internal/employees/repository"
	"salon_backend/internal/employees/service"
	apphttp "salon_backend/internal/http"
	"salon_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the employees bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the employees module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)

	return &Module{handler: handler.New(svc, val)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "employees"
}

// RegisterRoutes mounts the employee routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/employees", m.handler.List)
	ctx.Protected.GET("/employees/:id", m.handler.GetByID)

	ctx.Admin.POST("/employees", m.handler.Create)
	ctx.Admin.PUT("/employees/:id", m.handler.Update)
	ctx.Admin.DELETE("/employees/:id", m.handler.Delete)
	ctx.Admin.GET("/employees/:id/permissions", m.handler.GetPermissions)
	ctx.Admin.PUT("/employees/:id/permissions", m.handler.SetPermissions)
	ctx.Admin.DELETE("/employees/:id/permissions", m.handler.ResetPermissions)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
