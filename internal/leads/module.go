// Package leads provides the lead scoring and recommendation bounded
// context.
package leads

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"estate_crm_backend/internal/events"
	apphttp "estate_crm_backend/internal/http"
	"estate_crm_backend/internal/leads/handler"
	"estate_crm_backend/internal/leads/repository"
	"estate_crm_backend/internal/leads/service"
	"estate_crm_backend/platform/config"
	"estate_crm_backend/platform/logger"
)

// Module is the leads bounded context implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule wires the lead repository, service and handler, and subscribes
// to the client lifecycle events that invalidate score snapshots.
func NewModule(pool *pgxpool.Pool, cfg *config.Config, bus events.Bus, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, bus, log)
	h := handler.New(svc)

	m := &Module{handler: h, service: svc}
	m.subscribe(bus)
	return m
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service exposes the lead service for cross-module wiring in main.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the lead routes.
func (m *Module) RegisterRoutes(rc *apphttp.RouterContext) {
	rc.Protected.GET("/leads", m.handler.ListRanked)
	rc.Protected.POST("/leads/rescore", m.handler.Rescore)
	rc.Protected.GET("/clients/:id/recommendations", m.handler.Recommendations)
}

// subscribe refreshes a client's score snapshot whenever something that
// feeds the score changes.
func (m *Module) subscribe(bus events.Bus) {
	refresh := events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		switch e := event.(type) {
		case events.ClientChanged:
			return m.service.RescoreClient(ctx, e.ClientID)
		case events.InteractionLogged:
			return m.service.RescoreClient(ctx, e.ClientID)
		case events.TaskRecorded:
			return m.service.RescoreClient(ctx, e.ClientID)
		}
		return nil
	})

	bus.Subscribe(events.ClientChanged{}.EventName(), refresh)
	bus.Subscribe(events.InteractionLogged{}.EventName(), refresh)
	bus.Subscribe(events.TaskRecorded{}.EventName(), refresh)
}

var _ apphttp.Module = (*Module)(nil)
