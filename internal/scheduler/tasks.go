// Package scheduler carries background jobs over asynq: due-date reminders
// and the periodic score refresh.
package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskDueReminder = "tasks.reminder"

const TaskRescoreLeads = "leads.rescore"

// DueReminderPayload identifies the task a reminder email is about.
type DueReminderPayload struct {
	TaskID   string `json:"taskId"`
	ClientID string `json:"clientId"`
}

// RescoreLeadsPayload is empty; the job always sweeps every client.
type RescoreLeadsPayload struct{}

func NewDueReminderTask(payload DueReminderPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDueReminder, data), nil
}

func ParseDueReminderPayload(task *asynq.Task) (DueReminderPayload, error) {
	var payload DueReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return DueReminderPayload{}, err
	}
	return payload, nil
}

func NewRescoreLeadsTask() (*asynq.Task, error) {
	data, err := json.Marshal(RescoreLeadsPayload{})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskRescoreLeads, data), nil
}
