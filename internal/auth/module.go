// Package auth provides the agent authentication bounded context.
package auth

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"estate_crm_backend/internal/auth/handler"
	"estate_crm_backend/internal/auth/repository"
	"estate_crm_backend/internal/auth/service"
	apphttp "estate_crm_backend/internal/http"
	"estate_crm_backend/platform/config"
	"estate_crm_backend/platform/httpkit"
	"estate_crm_backend/platform/logger"
	"estate_crm_backend/platform/validator"
)

// Module is the auth bounded context implementing http.Module.
type Module struct {
	handler *handler.Handler
	cfg     *config.Config
	log     *logger.Logger
}

// NewModule wires the auth repository, service and handler.
func NewModule(pool *pgxpool.Pool, cfg *config.Config, validate *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, log)
	h := handler.New(svc, validate)

	return &Module{handler: h, cfg: cfg, log: log}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "auth"
}

// RegisterRoutes mounts auth routes. Credential endpoints get a stricter
// rate limit than the rest of the API.
func (m *Module) RegisterRoutes(rc *apphttp.RouterContext) {
	authGroup := rc.V1.Group("/auth")
	authGroup.Use(httpkit.AuthRateLimiter(m.cfg.RateLimit.AuthPerMinute, m.log))
	m.handler.RegisterRoutes(authGroup)

	rc.Protected.GET("/agents/me", m.handler.Me)
}

var _ apphttp.Module = (*Module)(nil)
