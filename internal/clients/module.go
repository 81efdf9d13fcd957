// Package clients provides the client management bounded context.
package clients

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"estate_crm_backend/internal/clients/handler"
	"estate_crm_backend/internal/clients/repository"
	"estate_crm_backend/internal/clients/service"
	"estate_crm_backend/internal/events"
	apphttp "estate_crm_backend/internal/http"
	"estate_crm_backend/platform/logger"
	"estate_crm_backend/platform/validator"
)

// Module is the clients bounded context implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule wires the client repository, service and handler.
func NewModule(pool *pgxpool.Pool, bus events.Bus, validate *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, log)
	h := handler.New(svc, validate)

	return &Module{handler: h}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "clients"
}

// RegisterRoutes mounts the client routes.
func (m *Module) RegisterRoutes(rc *apphttp.RouterContext) {
	rc.Protected.POST("/clients", m.handler.Create)
	rc.Protected.GET("/clients", m.handler.List)
	rc.Protected.GET("/clients/:id", m.handler.Get)
	rc.Protected.PATCH("/clients/:id", m.handler.Update)
	rc.Protected.DELETE("/clients/:id", m.handler.Delete)
	rc.Protected.POST("/clients/:id/log", m.handler.AddLogEntry)
	rc.Protected.GET("/clients/:id/log", m.handler.ListLogEntries)
}

var _ apphttp.Module = (*Module)(nil)
