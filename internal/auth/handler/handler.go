// Package handler exposes authentication endpoints.
package handler

import (
	"github.com/gin-gonic/gin"

	"estate_crm_backend/internal/auth/service"
	"estate_crm_backend/internal/auth/transport"
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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/register", h.Register)
	rg.POST("/login", h.Login)
	rg.POST("/refresh", h.Refresh)
}

func (h *Handler) Register(c *gin.Context) {
	var req transport.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, 400, "invalid request body")
		return
	}
	if fieldErrs := h.validate.Struct(req); fieldErrs != nil {
		httpkit.ValidationError(c, fieldErrs)
		return
	}

	agent, err := h.svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.Created(c, transport.ProfileResponse{
		ID:        agent.ID.String(),
		Name:      agent.Name,
		Email:     agent.Email,
		CreatedAt: agent.CreatedAt,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req transport.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, 400, "invalid request body")
		return
	}
	if fieldErrs := h.validate.Struct(req); fieldErrs != nil {
		httpkit.ValidationError(c, fieldErrs)
		return
	}

	access, refresh, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, transport.TokenResponse{AccessToken: access, RefreshToken: refresh})
}

func (h *Handler) Refresh(c *gin.Context) {
	var req transport.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, 400, "invalid request body")
		return
	}

	access, refresh, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, transport.TokenResponse{AccessToken: access, RefreshToken: refresh})
}

func (h *Handler) Me(c *gin.Context) {
	agentID, ok := httpkit.AgentID(c)
	if !ok {
		httpkit.Error(c, 401, "unauthorized")
		return
	}

	agent, err := h.svc.GetProfile(c.Request.Context(), agentID)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, transport.ProfileResponse{
		ID:        agent.ID.String(),
		Name:      agent.Name,
		Email:     agent.Email,
		CreatedAt: agent.CreatedAt,
	})
}
