// Package clients provides the client directory bounded context.
package clients

import (
	"salon_backend/internal/clients/adapter"
	"salon_backend/internal/clients/handler"
	"salon_backend/internal/clients/repository"
	"salon_backend/internal/clients/service"
	apphttp "salon_backend/internal/http"
	schedservice "salon_backend/internal/scheduling/service"
	"salon_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the clients bounded context module implementing http.Module.
type Module struct {
	handler   *handler.Handler
	directory *adapter.Directory
}

// NewModule creates and initializes the clients module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)

	return &Module{
		handler:   handler.New(svc, val),
		directory: adapter.NewDirectory(repo),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "clients"
}

// Directory returns the adapter the scheduling module uses for public
// bookings.
func (m *Module) Directory() schedservice.ClientDirectory {
	return m.directory
}

// RegisterRoutes mounts the client routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/clients"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
