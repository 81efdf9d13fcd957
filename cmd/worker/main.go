package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"estate_crm_backend/internal/email"
	"estate_crm_backend/internal/events"
	leadsrepo "estate_crm_backend/internal/leads/repository"
	leadssvc "estate_crm_backend/internal/leads/service"
	"estate_crm_backend/internal/scheduler"
	tasksrepo "estate_crm_backend/internal/tasks/repository"
	taskssvc "estate_crm_backend/internal/tasks/service"
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
	log.Info("starting worker", "env", cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	bus := events.NewInMemoryBus(log)
	defer bus.Drain()

	var sender email.Sender = email.NoopSender{}
	if cfg.SMTP.Host != "" {
		sender = email.NewSMTPSender(cfg.SMTP)
	} else {
		log.Warn("SMTP_HOST not configured; reminder emails disabled")
	}

	client, err := scheduler.NewClient(cfg.Scheduler)
	if err != nil {
		log.Error("failed to initialize scheduler client", "error", err)
		panic("failed to initialize scheduler client: " + err.Error())
	}
	defer client.Close()

	tasksService := taskssvc.New(tasksrepo.New(pool), bus, nil, log)
	leadsService := leadssvc.New(leadsrepo.New(pool), cfg, bus, log)

	worker, err := scheduler.NewWorker(cfg, tasksService, leadsService, sender, client, log)
	if err != nil {
		log.Error("failed to initialize worker", "error", err)
		panic("failed to initialize worker: " + err.Error())
	}

	worker.Run(ctx)
	log.Info("worker stopped")
}
