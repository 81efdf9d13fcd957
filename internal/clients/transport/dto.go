package transport

import (
	"time"

	"estate_crm_backend/internal/clients/repository"
)

type CreateClientRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=100"`
	Phone        string `json:"phone" validate:"required"`
	Email        string `json:"email" validate:"omitempty,email"`
	ListingType  string `json:"listingType" validate:"required,oneof=Sale Rent"`
	Requirements string `json:"requirements" validate:"max=2000"`
}

type UpdateClientRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=2,max=100"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email" validate:"omitempty,email"`
	ListingType  *string `json:"listingType" validate:"omitempty,oneof=Sale Rent"`
	Requirements *string `json:"requirements" validate:"omitempty,max=2000"`
	Status       *string `json:"status"`
}

type AddLogEntryRequest struct {
	Channel string `json:"channel" validate:"required,oneof=Call Email WhatsApp Meeting"`
	Summary string `json:"summary" validate:"required,max=2000"`
}

type ClientResponse struct {
	ID           string     `json:"id"`
	Code         string     `json:"code"`
	Name         string     `json:"name"`
	Phone        string     `json:"phone"`
	Email        string     `json:"email,omitempty"`
	ListingType  string     `json:"listingType"`
	Requirements string     `json:"requirements"`
	Budget       int64      `json:"budget"`
	Locality     string     `json:"locality"`
	Rooms        int        `json:"rooms"`
	Status       string     `json:"status"`
	LeadScore    int        `json:"leadScore"`
	LeadRating   string     `json:"leadRating"`
	ScoredAt     *time.Time `json:"scoredAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func ToClientResponse(c *repository.Client) ClientResponse {
	return ClientResponse{
		ID:           c.ID.String(),
		Code:         c.ClientCode,
		Name:         c.Name,
		Phone:        c.Phone,
		Email:        c.Email,
		ListingType:  c.ListingType,
		Requirements: c.Requirements,
		Budget:       c.Budget,
		Locality:     c.Locality,
		Rooms:        c.Rooms,
		Status:       c.Status,
		LeadScore:    c.LeadScore,
		LeadRating:   c.LeadRating,
		ScoredAt:     c.ScoredAt,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

type ListClientsResponse struct {
	Items      []ClientResponse `json:"items"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	TotalPages int              `json:"totalPages"`
}

type LogEntryResponse struct {
	ID       string    `json:"id"`
	ClientID string    `json:"clientId"`
	Channel  string    `json:"channel"`
	Summary  string    `json:"summary"`
	LoggedAt time.Time `json:"loggedAt"`
}

func ToLogEntryResponse(e *repository.LogEntry) LogEntryResponse {
	return LogEntryResponse{
		ID:       e.ID.String(),
		ClientID: e.ClientID.String(),
		Channel:  e.Channel,
		Summary:  e.Summary,
		LoggedAt: e.LoggedAt,
	}
}
