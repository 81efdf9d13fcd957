// Package properties provides the property portfolio bounded context.
package properties

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"estate_crm_backend/internal/adapters/storage"
	apphttp "estate_crm_backend/internal/http"
	"estate_crm_backend/internal/properties/handler"
	"estate_crm_backend/internal/properties/repository"
	"estate_crm_backend/internal/properties/service"
	"estate_crm_backend/platform/logger"
	"estate_crm_backend/platform/validator"
)

// Module is the properties bounded context implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule wires the property repository, service and handler.
func NewModule(pool *pgxpool.Pool, store storage.Service, validate *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, store, log)
	h := handler.New(svc, validate)

	return &Module{handler: h}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "properties"
}

// RegisterRoutes mounts the property routes.
func (m *Module) RegisterRoutes(rc *apphttp.RouterContext) {
	rc.Protected.POST("/properties", m.handler.Create)
	rc.Protected.GET("/properties", m.handler.List)
	rc.Protected.GET("/properties/stats", m.handler.Stats)
	rc.Protected.GET("/properties/:id", m.handler.Get)
	rc.Protected.PATCH("/properties/:id", m.handler.Update)
	rc.Protected.DELETE("/properties/:id", m.handler.Delete)
	rc.Protected.POST("/properties/:id/media", m.handler.MediaUploadURL)
	rc.Protected.GET("/properties/:id/media", m.handler.ListMedia)
	rc.Protected.DELETE("/properties/:id/media/:mediaId", m.handler.DeleteMedia)
}

var _ apphttp.Module = (*Module)(nil)
