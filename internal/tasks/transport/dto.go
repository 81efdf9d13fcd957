package transport

import (
	"time"

	"estate_crm_backend/internal/tasks/repository"
)

type RecordTaskRequest struct {
	ClientID   string  `json:"clientId" validate:"required,uuid"`
	PropertyID *string `json:"propertyId" validate:"omitempty,uuid"`
	TaskType   string  `json:"taskType" validate:"required"`
	Notes      string  `json:"notes" validate:"max=2000"`
	Details    string  `json:"details" validate:"max=2000"`
	DueDate    string  `json:"dueDate" validate:"required,datetime=2006-01-02"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending Completed Cancelled"`
}

type TaskResponse struct {
	ID          string     `json:"id"`
	ClientID    string     `json:"clientId"`
	PropertyID  *string    `json:"propertyId,omitempty"`
	TaskType    string     `json:"taskType"`
	Notes       string     `json:"notes"`
	Details     string     `json:"details,omitempty"`
	DueDate     string     `json:"dueDate"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func ToTaskResponse(t *repository.Task) TaskResponse {
	var propertyID *string
	if t.PropertyID != nil {
		id := t.PropertyID.String()
		propertyID = &id
	}
	return TaskResponse{
		ID:          t.ID.String(),
		ClientID:    t.ClientID.String(),
		PropertyID:  propertyID,
		TaskType:    t.TaskType,
		Notes:       t.Notes,
		Details:     t.Details,
		DueDate:     t.DueDate.Format("2006-01-02"),
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
		CompletedAt: t.CompletedAt,
	}
}

type RecordTaskResponse struct {
	Task         TaskResponse `json:"task"`
	ClientStatus string       `json:"clientStatus,omitempty"`
}

type BoardTaskResponse struct {
	TaskResponse
	ClientName       string  `json:"clientName"`
	ClientCode       string  `json:"clientCode"`
	PropertyCode     *string `json:"propertyCode,omitempty"`
	PropertyLocality *string `json:"propertyLocality,omitempty"`
}

func ToBoardTaskResponse(t *repository.BoardTask) BoardTaskResponse {
	return BoardTaskResponse{
		TaskResponse:     ToTaskResponse(&t.Task),
		ClientName:       t.ClientName,
		ClientCode:       t.ClientCode,
		PropertyCode:     t.PropertyCode,
		PropertyLocality: t.PropertyLocality,
	}
}

// LatestEventResponse reports a client's most significant pending pipeline
// task. Status is "none" when the client has no pending pipeline tasks.
type LatestEventResponse struct {
	Status string        `json:"status"`
	Task   *TaskResponse `json:"task,omitempty"`
}
