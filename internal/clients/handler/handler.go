// Package handler exposes client management endpoints.
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"estate_crm_backend/internal/clients/repository"
	"estate_crm_backend/internal/clients/service"
	"estate_crm_backend/internal/clients/transport"
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

func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, 400, "invalid request body")
		return
	}
	if fieldErrs := h.validate.Struct(req); fieldErrs != nil {
		httpkit.ValidationError(c, fieldErrs)
		return
	}

	client, err := h.svc.Create(c.Request.Context(), service.CreateInput{
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		ListingType:  req.ListingType,
		Requirements: req.Requirements,
	})
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.Created(c, transport.ToClientResponse(client))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		// Fall back to lookup by client code, e.g. "CL-1001".
		client, codeErr := h.svc.GetByCode(c.Request.Context(), c.Param("id"))
		if codeErr != nil {
			httpkit.HandleError(c, codeErr)
			return
		}
		httpkit.OK(c, transport.ToClientResponse(client))
		return
	}

	client, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, transport.ToClientResponse(client))
}

func (h *Handler) List(c *gin.Context) {
	params := repository.ListParams{
		Search:   c.Query("search"),
		Page:     intQuery(c, "page", 1),
		PageSize: intQuery(c, "pageSize", 20),
	}
	if v := c.Query("listingType"); v != "" {
		params.ListingType = &v
	}
	if v := c.Query("status"); v != "" {
		params.Status = &v
	}
	if v := c.Query("rating"); v != "" {
		params.Rating = &v
	}

	result, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	items := make([]transport.ClientResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, transport.ToClientResponse(&result.Items[i]))
	}
	httpkit.OK(c, transport.ListClientsResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	})
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, 400, "invalid client id")
		return
	}

	var req transport.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, 400, "invalid request body")
		return
	}
	if fieldErrs := h.validate.Struct(req); fieldErrs != nil {
		httpkit.ValidationError(c, fieldErrs)
		return
	}

	client, err := h.svc.Update(c.Request.Context(), id, service.UpdateInput{
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		ListingType:  req.ListingType,
		Requirements: req.Requirements,
		Status:       req.Status,
	})
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, transport.ToClientResponse(client))
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, 400, "invalid client id")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.NoContent(c)
}

func (h *Handler) AddLogEntry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, 400, "invalid client id")
		return
	}

	var req transport.AddLogEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, 400, "invalid request body")
		return
	}
	if fieldErrs := h.validate.Struct(req); fieldErrs != nil {
		httpkit.ValidationError(c, fieldErrs)
		return
	}

	entry, err := h.svc.AddLogEntry(c.Request.Context(), id, req.Channel, req.Summary)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.Created(c, transport.ToLogEntryResponse(entry))
}

func (h *Handler) ListLogEntries(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, 400, "invalid client id")
		return
	}

	entries, err := h.svc.ListLogEntries(c.Request.Context(), id)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	out := make([]transport.LogEntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, transport.ToLogEntryResponse(&entries[i]))
	}
	httpkit.OK(c, gin.H{"entries": out})
}

func intQuery(c *gin.Context, key string, fallback int) int {
	v, ok := c.GetQuery(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
