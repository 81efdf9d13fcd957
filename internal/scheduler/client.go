package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"estate_crm_backend/platform/config"
)

// Client enqueues background jobs. A nil Client silently drops jobs, which
// lets commands run without Redis attached.
type Client struct {
	client       *asynq.Client
	reminderLead time.Duration
}

// NewClient connects to Redis using the configured URL.
func NewClient(cfg config.SchedulerConfig) (*Client, error) {
	if cfg.RedisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(cfg.RedisURL)
	if err != nil {
		return nil, err
	}

	return &Client{
		client:       asynq.NewClient(opt),
		reminderLead: cfg.ReminderLead,
	}, nil
}

// Close releases the Redis connection.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// ScheduleTaskReminder enqueues a reminder to fire one lead interval before
// the task's due date. Reminders already in the past fire immediately.
func (c *Client) ScheduleTaskReminder(ctx context.Context, taskID, clientID uuid.UUID, dueDate time.Time) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewDueReminderTask(DueReminderPayload{
		TaskID:   taskID.String(),
		ClientID: clientID.String(),
	})
	if err != nil {
		return err
	}

	runAt := dueDate.Add(-c.reminderLead)
	if runAt.Before(time.Now()) {
		runAt = time.Now()
	}

	// The task ID keeps the periodic sweep from double-booking a reminder
	// that was already scheduled when the task was recorded.
	_, err = c.client.EnqueueContext(ctx, task,
		asynq.ProcessAt(runAt),
		asynq.TaskID("tasks:reminder:"+taskID.String()),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	return err
}

// EnqueueRescore enqueues an immediate full lead rescore.
func (c *Client) EnqueueRescore(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewRescoreLeadsTask()
	if err != nil {
		return err
	}
	_, err = c.client.EnqueueContext(ctx, task)
	return err
}

func redisClientOpt(redisURL string) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: opt.TLSConfig,
	}, nil
}
