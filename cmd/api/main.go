package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"estate_crm_backend/internal/adapters/storage"
	"estate_crm_backend/internal/auth"
	"estate_crm_backend/internal/clients"
	"estate_crm_backend/internal/email"
	"estate_crm_backend/internal/events"
	apphttp "estate_crm_backend/internal/http"
	"estate_crm_backend/internal/leads"
	"estate_crm_backend/internal/notification"
	"estate_crm_backend/internal/properties"
	"estate_crm_backend/internal/reports"
	"estate_crm_backend/internal/scheduler"
	"estate_crm_backend/internal/tasks"
	taskssvc "estate_crm_backend/internal/tasks/service"
	"estate_crm_backend/platform/config"
	"estate_crm_backend/platform/db"
	"estate_crm_backend/platform/logger"
	"estate_crm_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.App.Environment)
	log.Info("starting api", "env", cfg.App.Environment, "port", cfg.App.Port)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.Migrate(cfg.Database.URL, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg.Database.URL)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	bus := events.NewInMemoryBus(log)
	defer bus.Drain()

	val := validator.New()

	storageSvc, err := storage.NewMinIOService(cfg.MinIO)
	if err != nil {
		log.Error("failed to initialize storage service", "error", err)
		panic("failed to initialize storage service: " + err.Error())
	}
	if err := withRetry(ctx, log, "ensure storage bucket", 5, 2*time.Second, func() error {
		return storageSvc.EnsureBucket(ctx)
	}); err != nil {
		log.Error("failed to ensure storage bucket", "error", err, "bucket", cfg.MinIO.Bucket)
		panic("failed to ensure storage bucket: " + err.Error())
	}
	log.Info("storage service initialized", "bucket", cfg.MinIO.Bucket)

	schedClient, closeScheduler := initScheduler(cfg.Scheduler, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}
	var reminders taskssvc.ReminderScheduler
	if schedClient != nil {
		reminders = schedClient
	}

	sender := initSender(cfg, log)

	notification.NewModule(pool, cfg, bus, sender, log)

	authModule := auth.NewModule(pool, cfg, val, log)
	clientsModule := clients.NewModule(pool, bus, val, log)
	propertiesModule := properties.NewModule(pool, storageSvc, val, log)
	tasksModule := tasks.NewModule(pool, bus, reminders, val, log)
	leadsModule := leads.NewModule(pool, cfg, bus, log)
	reportsModule := reports.NewModule(leadsModule.Service(), storageSvc, cfg, log)

	app := apphttp.NewApp(cfg, log, []apphttp.Module{
		authModule,
		clientsModule,
		propertiesModule,
		tasksModule,
		leadsModule,
		reportsModule,
	})

	if err := app.Run(ctx); err != nil {
		log.Error("server error", "error", err)
		panic("server error: " + err.Error())
	}
	log.Info("server stopped")
}

func initScheduler(cfg config.SchedulerConfig, log *logger.Logger) (*scheduler.Client, func()) {
	if cfg.RedisURL == "" {
		log.Warn("REDIS_URL not configured; task reminders disabled")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize scheduler client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func initSender(cfg *config.Config, log *logger.Logger) email.Sender {
	if cfg.SMTP.Host == "" {
		log.Warn("SMTP_HOST not configured; outbound email disabled")
		return email.NoopSender{}
	}
	return email.NewSMTPSender(cfg.SMTP)
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
