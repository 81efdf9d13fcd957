// Command score-backfill recomputes the stored lead score snapshot for every
// client. Run it after changing scoring weights or importing historical data.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"estate_crm_backend/internal/events"
	leadsrepo "estate_crm_backend/internal/leads/repository"
	leadssvc "estate_crm_backend/internal/leads/service"
	"estate_crm_backend/platform/config"
	"estate_crm_backend/platform/db"
	"estate_crm_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	bus := events.NewInMemoryBus(log)
	defer bus.Drain()

	svc := leadssvc.New(leadsrepo.New(pool), cfg, bus, log)

	start := time.Now()
	count, err := svc.RescoreAll(ctx)
	if err != nil {
		log.Error("rescore failed", "error", err)
		os.Exit(1)
	}

	log.Info("rescore complete", "clients", count, "took", time.Since(start).String())
}
