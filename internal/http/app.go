package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"estate_crm_backend/internal/http/router"
	"estate_crm_backend/platform/config"
	"estate_crm_backend/platform/logger"
)

// App owns the HTTP server and the registered modules.
type App struct {
	cfg     *config.Config
	log     *logger.Logger
	router  *router.Router
	server  *http.Server
	modules []Module
}

// NewApp builds the router and registers all modules' routes.
func NewApp(cfg *config.Config, log *logger.Logger, modules []Module) *App {
	r := router.New(cfg, log)

	rc := &RouterContext{
		Engine:    r.Engine,
		V1:        r.V1,
		Protected: r.Protected,
	}
	for _, m := range modules {
		m.RegisterRoutes(rc)
		log.Info("registered module", "module", m.Name())
	}

	return &App{
		cfg:    cfg,
		log:    log,
		router: r,
		server: &http.Server{
			Addr:              ":" + cfg.App.Port,
			Handler:           r.Engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		modules: modules,
	}
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.log.Info("http server listening", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	a.log.Info("shutting down http server")
	return a.server.Shutdown(shutdownCtx)
}
