// Package handler exposes task recording and board endpoints.
package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"estate_crm_backend/internal/tasks/repository"
	"estate_crm_backend/internal/tasks/service"
	"estate_crm_backend/internal/tasks/transport"
	"estate_crm_backend/platform/httpkit"
	"estate_crm_backend/platform/validator"
)

type Handler struct {
	svc      *service.Service
	validate *validator.Validator
}

func New(svc *service.Service, validate *validator.Validator) *Handler {
	return &Handler{svc: svc, validate: validate}
}

func (h *Handler) Record(c *gin.Context) {
	var req transport.RecordTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, 400, "invalid request body")
		return
	}
	if fieldErrs := h.validate.Struct(req); fieldErrs != nil {
		httpkit.ValidationError(c, fieldErrs)
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		httpkit.Error(c, 400, "invalid client id")
		return
	}
	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		httpkit.Error(c, 400, "invalid due date")
		return
	}

	var propertyID *uuid.UUID
	if req.PropertyID != nil {
		id, err := uuid.Parse(*req.PropertyID)
		if err != nil {
			httpkit.Error(c, 400, "invalid property id")
			return
		}
		propertyID = &id
	}

	result, err := h.svc.Record(c.Request.Context(), service.RecordInput{
		ClientID:   clientID,
		PropertyID: propertyID,
		TaskType:   req.TaskType,
		Notes:      req.Notes,
		Details:    req.Details,
		DueDate:    dueDate,
	})
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.Created(c, transport.RecordTaskResponse{
		Task:         transport.ToTaskResponse(result.Task),
		ClientStatus: result.ClientStatus,
	})
}

// LatestEvent reports a client's most significant pending pipeline task.
func (h *Handler) LatestEvent(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, 400, "invalid client id")
		return
	}

	task, err := h.svc.LatestPendingEvent(c.Request.Context(), clientID)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	if task == nil {
		httpkit.OK(c, transport.LatestEventResponse{Status: "none"})
		return
	}
	resp := transport.ToTaskResponse(task)
	httpkit.OK(c, transport.LatestEventResponse{Status: task.TaskType, Task: &resp})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, 400, "invalid task id")
		return
	}

	var req transport.UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, 400, "invalid request body")
		return
	}
	if fieldErrs := h.validate.Struct(req); fieldErrs != nil {
		httpkit.ValidationError(c, fieldErrs)
		return
	}

	task, err := h.svc.UpdateStatus(c.Request.Context(), taskID, req.Status)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, transport.ToTaskResponse(task))
}

func (h *Handler) Board(c *gin.Context) {
	var status *string
	if v := c.Query("status"); v != "" {
		switch v {
		case repository.StatusPending, repository.StatusCompleted, repository.StatusCancelled:
			status = &v
		default:
			httpkit.Error(c, 400, "invalid task status filter")
			return
		}
	}

	tasks, err := h.svc.Board(c.Request.Context(), status)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	out := make([]transport.BoardTaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, transport.ToBoardTaskResponse(&tasks[i]))
	}
	httpkit.OK(c, gin.H{"tasks": out})
}
