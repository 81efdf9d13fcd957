// Package service implements client lifecycle operations.
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"estate_crm_backend/internal/clients/repository"
	"estate_crm_backend/internal/events"
	"estate_crm_backend/internal/leads/reqparse"
	"estate_crm_backend/platform/apperr"
	"estate_crm_backend/platform/logger"
	"estate_crm_backend/platform/phone"
)

// DefaultStatus is the pipeline status for freshly registered clients.
const DefaultStatus = "New"

// validStatuses are the pipeline states a client can be moved to.
var validStatuses = map[string]bool{
	"New":                true,
	"Contacted":          true,
	"Site Visit Planned": true,
	"Negotiating":        true,
	"Closed":             true,
	"Dropped":            true,
}

type Service struct {
	repo *repository.Repository
	bus  events.Bus
	log  *logger.Logger
}

func New(repo *repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// CreateInput carries the fields for registering a client.
type CreateInput struct {
	Name         string
	Phone        string
	Email        string
	ListingType  string
	Requirements string
}

// Create registers a client. The free-text requirements are parsed into
// budget, locality and room columns so the lead engine never re-parses on
// the hot path.
func (s *Service) Create(ctx context.Context, in CreateInput) (*repository.Client, error) {
	normalized, err := phone.Normalize(in.Phone)
	if err != nil {
		return nil, apperr.Validation("invalid phone number")
	}

	req := reqparse.Parse(in.Requirements)
	client, err := s.repo.Create(ctx, repository.CreateParams{
		Name:         strings.TrimSpace(in.Name),
		Phone:        normalized,
		Email:        strings.TrimSpace(in.Email),
		ListingType:  in.ListingType,
		Requirements: in.Requirements,
		Budget:       req.Budget,
		Locality:     req.Locality,
		Rooms:        req.Rooms,
		Status:       DefaultStatus,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("client created", "client", client.ClientCode, "listing_type", client.ListingType)
	s.bus.Publish(ctx, events.ClientCreated{
		BaseEvent:   events.NewBaseEvent(),
		ClientID:    client.ID,
		ClientCode:  client.ClientCode,
		Name:        client.Name,
		ListingType: client.ListingType,
	})
	s.bus.Publish(ctx, events.ClientChanged{BaseEvent: events.NewBaseEvent(), ClientID: client.ID})

	return client, nil
}

// Get returns one client by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*repository.Client, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByCode returns one client by its code, e.g. "CL-1001".
func (s *Service) GetByCode(ctx context.Context, code string) (*repository.Client, error) {
	return s.repo.GetByCode(ctx, code)
}

// List returns a page of clients.
func (s *Service) List(ctx context.Context, params repository.ListParams) (*repository.ListResult, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 || params.PageSize > 100 {
		params.PageSize = 20
	}
	return s.repo.List(ctx, params)
}

// UpdateInput carries the mutable client fields. Nil fields stay unchanged.
type UpdateInput struct {
	Name         *string
	Phone        *string
	Email        *string
	ListingType  *string
	Requirements *string
	Status       *string
}

// Update applies the given changes. Changing the requirements re-parses the
// structured columns.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*repository.Client, error) {
	params := repository.UpdateParams{
		Name:         in.Name,
		Email:        in.Email,
		ListingType:  in.ListingType,
		Requirements: in.Requirements,
	}

	if in.Phone != nil {
		normalized, err := phone.Normalize(*in.Phone)
		if err != nil {
			return nil, apperr.Validation("invalid phone number")
		}
		params.Phone = &normalized
	}

	if in.Status != nil {
		if !validStatuses[*in.Status] {
			return nil, apperr.Validation("invalid client status")
		}
		params.Status = in.Status
	}

	if in.Requirements != nil {
		req := reqparse.Parse(*in.Requirements)
		params.Budget = &req.Budget
		params.Locality = &req.Locality
		params.Rooms = &req.Rooms
	}

	client, err := s.repo.Update(ctx, id, params)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, events.ClientChanged{BaseEvent: events.NewBaseEvent(), ClientID: client.ID})
	return client, nil
}

// Delete removes a client along with its tasks and communication log.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("client deleted", "client_id", id.String())
	return nil
}

// AddLogEntry records an interaction with a client.
func (s *Service) AddLogEntry(ctx context.Context, clientID uuid.UUID, channel, summary string) (*repository.LogEntry, error) {
	// Reject entries for unknown clients with a 404 instead of a foreign
	// key violation.
	if _, err := s.repo.GetByID(ctx, clientID); err != nil {
		return nil, err
	}

	entry, err := s.repo.AddLogEntry(ctx, clientID, channel, strings.TrimSpace(summary))
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, events.InteractionLogged{
		BaseEvent: events.NewBaseEvent(),
		ClientID:  clientID,
		Channel:   channel,
	})
	return entry, nil
}

// ListLogEntries returns a client's interactions, newest first.
func (s *Service) ListLogEntries(ctx context.Context, clientID uuid.UUID) ([]repository.LogEntry, error) {
	if _, err := s.repo.GetByID(ctx, clientID); err != nil {
		return nil, err
	}
	return s.repo.ListLogEntries(ctx, clientID)
}
