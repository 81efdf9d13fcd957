package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"estate_crm_backend/internal/email"
	leadssvc "estate_crm_backend/internal/leads/service"
	taskssvc "estate_crm_backend/internal/tasks/service"
	"estate_crm_backend/platform/apperr"
	"estate_crm_backend/platform/config"
	"estate_crm_backend/platform/logger"
)

type Worker struct {
	server     *asynq.Server
	mux        *asynq.ServeMux
	client     *Client
	tasks      *taskssvc.Service
	leads      *leadssvc.Service
	sender     email.Sender
	alertEmail string
	log        *logger.Logger

	pollInterval time.Duration
	reminderLead time.Duration
}

func NewWorker(cfg *config.Config, tasks *taskssvc.Service, leads *leadssvc.Service, sender email.Sender, client *Client, log *logger.Logger) (*Worker, error) {
	if cfg.Scheduler.RedisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(cfg.Scheduler.RedisURL)
	if err != nil {
		return nil, err
	}

	concurrency := cfg.Scheduler.Concurrency
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			"default": 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:       server,
		mux:          mux,
		client:       client,
		tasks:        tasks,
		leads:        leads,
		sender:       sender,
		alertEmail:   cfg.App.AlertEmail,
		log:          log,
		pollInterval: cfg.Scheduler.PollInterval,
		reminderLead: cfg.Scheduler.ReminderLead,
	}

	mux.HandleFunc(TaskDueReminder, w.handleDueReminder)
	mux.HandleFunc(TaskRescoreLeads, w.handleRescoreLeads)

	return w, nil
}

func (w *Worker) handleDueReminder(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseDueReminderPayload(task)
	if err != nil {
		return err
	}

	taskID, err := uuid.Parse(payload.TaskID)
	if err != nil {
		return err
	}

	clientID, err := uuid.Parse(payload.ClientID)
	if err != nil {
		return err
	}

	rec, err := w.tasks.Get(ctx, taskID)
	if err != nil {
		if apperr.GetKind(err) == apperr.KindNotFound {
			return nil
		}
		return err
	}

	// Completed or cancelled tasks no longer need a nudge.
	if rec.Status != "Pending" {
		return nil
	}

	if w.alertEmail == "" {
		return nil
	}

	info, err := w.tasks.ClientInfo(ctx, clientID)
	if err != nil {
		if apperr.GetKind(err) == apperr.KindNotFound {
			return nil
		}
		return err
	}

	due := rec.DueDate.Format("02 Jan 2006")
	if err := w.sender.SendTaskReminderEmail(ctx, w.alertEmail, info.Name, rec.TaskType, due); err != nil {
		return fmt.Errorf("send task reminder: %w", err)
	}

	w.log.Info("task reminder sent", "task_id", taskID, "client_code", info.Code)
	return nil
}

func (w *Worker) handleRescoreLeads(ctx context.Context, _ *asynq.Task) error {
	n, err := w.leads.RescoreAll(ctx)
	if err != nil {
		return err
	}
	w.log.Info("lead scores refreshed", "clients", n)
	return nil
}

// Run serves jobs until the context is cancelled. A periodic sweep re-schedules
// reminders for pending tasks so nothing is lost when Redis was unreachable at
// record time.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go w.sweepLoop(ctx)

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

func (w *Worker) sweepLoop(ctx context.Context) {
	if w.pollInterval <= 0 {
		return
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *Worker) sweep(ctx context.Context) {
	now := time.Now()
	due, err := w.tasks.DueWithin(ctx, now, now.Add(w.reminderLead+24*time.Hour))
	if err != nil {
		w.log.Error("reminder sweep failed", "error", err)
		return
	}

	for _, t := range due {
		if err := w.client.ScheduleTaskReminder(ctx, t.ID, t.ClientID, t.DueDate); err != nil {
			w.log.Error("failed to schedule reminder", "task_id", t.ID, "error", err)
		}
	}

	if err := w.client.EnqueueRescore(ctx); err != nil {
		w.log.Error("failed to enqueue rescore", "error", err)
	}
}
