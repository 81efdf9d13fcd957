package reports

import (
	"estate_crm_backend/internal/adapters/storage"
	apphttp "estate_crm_backend/internal/http"
	leadssvc "estate_crm_backend/internal/leads/service"
	"estate_crm_backend/platform/config"
	"estate_crm_backend/platform/logger"
)

// Module is the report generation bounded context implementing http.Module.
type Module struct {
	handler *Handler
}

func NewModule(leads *leadssvc.Service, store storage.Service, cfg *config.Config, log *logger.Logger) *Module {
	svc := New(leads, NewGotenbergClient(cfg.Gotenberg), store, log)
	return &Module{handler: NewHandler(svc)}
}

func (m *Module) Name() string {
	return "reports"
}

func (m *Module) RegisterRoutes(rc *apphttp.RouterContext) {
	rc.Protected.GET("/clients/:id/report", m.handler.ClientReport)
}

var _ apphttp.Module = (*Module)(nil)
