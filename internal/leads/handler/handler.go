// Package handler exposes the lead scoring and recommendation endpoints.
package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"estate_crm_backend/internal/leads/service"
	"estate_crm_backend/internal/leads/transport"
	"estate_crm_backend/platform/httpkit"
)

type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// ListRanked returns all clients scored and sorted hottest first.
func (h *Handler) ListRanked(c *gin.Context) {
	leads, err := h.svc.RankedLeads(c.Request.Context())
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	out := make([]transport.RankedLeadResponse, 0, len(leads))
	for _, lead := range leads {
		out = append(out, transport.ToRankedLeadResponse(lead))
	}
	httpkit.OK(c, gin.H{"leads": out})
}

// Rescore recomputes and stores score snapshots for all clients.
func (h *Handler) Rescore(c *gin.Context) {
	count, err := h.svc.RescoreAll(c.Request.Context())
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, gin.H{"rescored": count})
}

// Recommendations returns matched properties for one client.
func (h *Handler) Recommendations(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, 400, "invalid client id")
		return
	}

	rec, err := h.svc.Recommendations(c.Request.Context(), clientID)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, transport.ToRecommendationResponse(rec))
}
