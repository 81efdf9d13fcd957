// Package service implements task recording and the client status
// projection.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"estate_crm_backend/internal/events"
	"estate_crm_backend/internal/tasks/repository"
	"estate_crm_backend/platform/apperr"
	"estate_crm_backend/platform/logger"
)

// validTypes are the task kinds agents can record.
var validTypes = map[string]bool{
	repository.TypeNegotiation: true,
	repository.TypeSiteVisit:   true,
	"Follow-up Call":           true,
	"Document Collection":      true,
}

// ReminderScheduler enqueues a due-date reminder for a task. Implemented by
// the scheduler client; nil disables reminders.
type ReminderScheduler interface {
	ScheduleTaskReminder(ctx context.Context, taskID, clientID uuid.UUID, dueDate time.Time) error
}

type Service struct {
	repo      *repository.Repository
	bus       events.Bus
	reminders ReminderScheduler
	log       *logger.Logger
}

func New(repo *repository.Repository, bus events.Bus, reminders ReminderScheduler, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, reminders: reminders, log: log}
}

// RecordInput carries the fields for a new task. PropertyID links the task
// to a listing when the follow-up concerns one.
type RecordInput struct {
	ClientID   uuid.UUID
	PropertyID *uuid.UUID
	TaskType   string
	Notes      string
	Details    string
	DueDate    time.Time
}

// RecordResult is the outcome of recording a task.
type RecordResult struct {
	Task *repository.Task
	// ClientStatus is the status the client was moved to, empty when the
	// task type has no status side effect.
	ClientStatus string
}

// Record validates and stores a task. The task insert and the client status
// side effect commit atomically; the recorded event and the due-date
// reminder follow only after the commit.
func (s *Service) Record(ctx context.Context, in RecordInput) (*RecordResult, error) {
	if !validTypes[in.TaskType] {
		return nil, apperr.Validation("invalid task type")
	}
	if in.DueDate.IsZero() {
		return nil, apperr.Validation("due date is required")
	}

	client, err := s.repo.GetClientInfo(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}

	task, newStatus, err := s.repo.Record(ctx, repository.RecordParams{
		ClientID:   in.ClientID,
		PropertyID: in.PropertyID,
		TaskType:   in.TaskType,
		Notes:      in.Notes,
		Details:    in.Details,
		DueDate:    in.DueDate,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("task recorded",
		"task_id", task.ID.String(),
		"client", client.Code,
		"task_type", task.TaskType,
		"client_status", newStatus,
	)

	s.bus.Publish(ctx, events.TaskRecorded{
		BaseEvent:  events.NewBaseEvent(),
		TaskID:     task.ID,
		ClientID:   client.ID,
		ClientName: client.Name,
		TaskType:   task.TaskType,
		DueDate:    task.DueDate,
	})

	if s.reminders != nil {
		if err := s.reminders.ScheduleTaskReminder(ctx, task.ID, client.ID, task.DueDate); err != nil {
			// The reminder is best effort; the periodic sweep picks up
			// anything the enqueue missed.
			s.log.Warn("failed to schedule task reminder", "task_id", task.ID.String(), "error", err.Error())
		}
	}

	return &RecordResult{Task: task, ClientStatus: newStatus}, nil
}

// LatestPendingEvent returns the client's most significant pending pipeline
// task, or nil when there is none.
func (s *Service) LatestPendingEvent(ctx context.Context, clientID uuid.UUID) (*repository.Task, error) {
	if _, err := s.repo.GetClientInfo(ctx, clientID); err != nil {
		return nil, err
	}
	return s.repo.LatestPendingEvent(ctx, clientID)
}

// UpdateStatus moves a task between Pending, Completed and Cancelled.
func (s *Service) UpdateStatus(ctx context.Context, taskID uuid.UUID, status string) (*repository.Task, error) {
	switch status {
	case repository.StatusPending, repository.StatusCompleted, repository.StatusCancelled:
	default:
		return nil, apperr.Validation("invalid task status")
	}

	task, err := s.repo.UpdateStatus(ctx, taskID, status)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, events.TaskStatusChanged{
		BaseEvent: events.NewBaseEvent(),
		TaskID:    task.ID,
		ClientID:  task.ClientID,
		Status:    task.Status,
	})
	return task, nil
}

// Board returns all tasks joined with their clients.
func (s *Service) Board(ctx context.Context, status *string) ([]repository.BoardTask, error) {
	return s.repo.ListBoard(ctx, status)
}

// DueWithin returns pending tasks due inside the window. Used by the
// reminder sweep.
func (s *Service) DueWithin(ctx context.Context, from, to time.Time) ([]repository.BoardTask, error) {
	return s.repo.ListDueBetween(ctx, from, to)
}

// Get returns one task.
func (s *Service) Get(ctx context.Context, taskID uuid.UUID) (*repository.Task, error) {
	return s.repo.GetByID(ctx, taskID)
}

// ClientInfo returns notification details for a task's client.
func (s *Service) ClientInfo(ctx context.Context, clientID uuid.UUID) (*repository.ClientInfo, error) {
	return s.repo.GetClientInfo(ctx, clientID)
}
