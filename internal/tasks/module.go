// Package tasks provides the task tracking bounded context.
package tasks

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"estate_crm_backend/internal/events"
	apphttp "estate_crm_backend/internal/http"
	"estate_crm_backend/internal/tasks/handler"
	"estate_crm_backend/internal/tasks/repository"
	"estate_crm_backend/internal/tasks/service"
	"estate_crm_backend/platform/logger"
	"estate_crm_backend/platform/validator"
)

// Module is the tasks bounded context implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule wires the task repository, service and handler. reminders may be
// nil when no scheduler is attached (tests, backfill commands).
func NewModule(pool *pgxpool.Pool, bus events.Bus, reminders service.ReminderScheduler, validate *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, reminders, log)
	h := handler.New(svc, validate)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "tasks"
}

// Service exposes the task service for the scheduler worker.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the task routes.
func (m *Module) RegisterRoutes(rc *apphttp.RouterContext) {
	rc.Protected.POST("/tasks", m.handler.Record)
	rc.Protected.GET("/tasks", m.handler.Board)
	rc.Protected.PATCH("/tasks/:id", m.handler.UpdateStatus)
	rc.Protected.GET("/clients/:id/latest-event", m.handler.LatestEvent)
}

var _ apphttp.Module = (*Module)(nil)
