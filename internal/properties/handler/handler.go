// Package handler exposes property portfolio endpoints.
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"estate_crm_backend/internal/properties/repository"
	"estate_crm_backend/internal/properties/service"
	"estate_crm_backend/internal/properties/transport"
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
	var req transport.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, 400, "invalid request body")
		return
	}
	if fieldErrs := h.validate.Struct(req); fieldErrs != nil {
		httpkit.ValidationError(c, fieldErrs)
		return
	}

	property, err := h.svc.Create(c.Request.Context(), service.CreateInput{
		Title:           req.Title,
		ListingType:     req.ListingType,
		PropertyType:    req.PropertyType,
		Bedrooms:        req.Bedrooms,
		Bathrooms:       req.Bathrooms,
		AreaSqft:        req.AreaSqft,
		Furnishing:      req.Furnishing,
		Amenities:       req.Amenities,
		Locality:        req.Locality,
		AskingPrice:     req.AskingPrice,
		MonthlyRent:     req.MonthlyRent,
		SecurityDeposit: req.SecurityDeposit,
		OwnerName:       req.OwnerName,
		OwnerPhone:      req.OwnerPhone,
	})
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.Created(c, transport.ToPropertyResponse(property))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, 400, "invalid property id")
		return
	}

	property, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, transport.ToPropertyResponse(property))
}

func (h *Handler) List(c *gin.Context) {
	params := repository.ListParams{
		Locality: c.Query("locality"),
		Page:     intQuery(c, "page", 1),
		PageSize: intQuery(c, "pageSize", 20),
	}
	if v := c.Query("listingType"); v != "" {
		params.ListingType = &v
	}
	if v := c.Query("status"); v != "" {
		params.Status = &v
	}
	if v := c.Query("maxPrice"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			params.MaxPrice = &n
		}
	}
	if v := c.Query("minRooms"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			params.MinRooms = &n
		}
	}

	result, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	items := make([]transport.PropertyResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, transport.ToPropertyResponse(&result.Items[i]))
	}
	httpkit.OK(c, transport.ListPropertiesResponse{
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
		httpkit.Error(c, 400, "invalid property id")
		return
	}

	var req transport.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, 400, "invalid request body")
		return
	}
	if fieldErrs := h.validate.Struct(req); fieldErrs != nil {
		httpkit.ValidationError(c, fieldErrs)
		return
	}

	property, err := h.svc.Update(c.Request.Context(), id, service.UpdateInput{
		Title:           req.Title,
		PropertyType:    req.PropertyType,
		Bedrooms:        req.Bedrooms,
		Bathrooms:       req.Bathrooms,
		AreaSqft:        req.AreaSqft,
		Furnishing:      req.Furnishing,
		Amenities:       req.Amenities,
		Locality:        req.Locality,
		AskingPrice:     req.AskingPrice,
		MonthlyRent:     req.MonthlyRent,
		SecurityDeposit: req.SecurityDeposit,
		OwnerName:       req.OwnerName,
		OwnerPhone:      req.OwnerPhone,
		Status:          req.Status,
	})
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, transport.ToPropertyResponse(property))
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, 400, "invalid property id")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.NoContent(c)
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.svc.GetStats(c.Request.Context())
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, transport.ToStatsResponse(stats))
}

func (h *Handler) MediaUploadURL(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, 400, "invalid property id")
		return
	}

	var req transport.MediaUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, 400, "invalid request body")
		return
	}
	if fieldErrs := h.validate.Struct(req); fieldErrs != nil {
		httpkit.ValidationError(c, fieldErrs)
		return
	}

	presigned, media, err := h.svc.MediaUploadURL(c.Request.Context(), id, req.FileName, req.ContentType, req.SizeBytes)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.Created(c, transport.ToMediaUploadResponse(presigned, media))
}

func (h *Handler) ListMedia(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, 400, "invalid property id")
		return
	}

	media, err := h.svc.ListMedia(c.Request.Context(), id)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	out := make([]transport.MediaResponse, 0, len(media))
	for _, m := range media {
		out = append(out, transport.ToMediaResponse(m))
	}
	httpkit.OK(c, gin.H{"media": out})
}

func (h *Handler) DeleteMedia(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, 400, "invalid property id")
		return
	}
	mediaID, err := uuid.Parse(c.Param("mediaId"))
	if err != nil {
		httpkit.Error(c, 400, "invalid media id")
		return
	}

	if err := h.svc.DeleteMedia(c.Request.Context(), id, mediaID); err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.NoContent(c)
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
