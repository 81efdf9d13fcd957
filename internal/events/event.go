// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"time"

	"github.com/google/uuid"

	"estate_crm_backend/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Client Domain Events
// =============================================================================

// ClientCreated is published when a new client is registered.
type ClientCreated struct {
	BaseEvent
	ClientID    uuid.UUID `json:"clientId"`
	ClientCode  string    `json:"clientCode"`
	Name        string    `json:"name"`
	ListingType string    `json:"listingType"`
}

func (e ClientCreated) EventName() string { return "clients.client.created" }

// ClientChanged is published when a client's details or status change in a
// way that affects its lead score.
type ClientChanged struct {
	BaseEvent
	ClientID uuid.UUID `json:"clientId"`
}

func (e ClientChanged) EventName() string { return "clients.client.changed" }

// InteractionLogged is published when a communication log entry is added.
type InteractionLogged struct {
	BaseEvent
	ClientID uuid.UUID `json:"clientId"`
	Channel  string    `json:"channel"`
}

func (e InteractionLogged) EventName() string { return "clients.interaction.logged" }

// =============================================================================
// Lead Domain Events
// =============================================================================

// LeadBecameHot is published when a rescore moves a client into the Hot
// bucket from a lower one.
type LeadBecameHot struct {
	BaseEvent
	ClientID   uuid.UUID `json:"clientId"`
	ClientCode string    `json:"clientCode"`
	Name       string    `json:"name"`
	Score      int       `json:"score"`
}

func (e LeadBecameHot) EventName() string { return "leads.lead.became_hot" }

// =============================================================================
// Task Domain Events
// =============================================================================

// TaskRecorded is published after a task and its client status side effect
// are committed.
type TaskRecorded struct {
	BaseEvent
	TaskID     uuid.UUID `json:"taskId"`
	ClientID   uuid.UUID `json:"clientId"`
	ClientName string    `json:"clientName"`
	TaskType   string    `json:"taskType"`
	DueDate    time.Time `json:"dueDate"`
}

func (e TaskRecorded) EventName() string { return "tasks.task.recorded" }

// TaskStatusChanged is published when a task moves to Completed or Cancelled.
type TaskStatusChanged struct {
	BaseEvent
	TaskID   uuid.UUID `json:"taskId"`
	ClientID uuid.UUID `json:"clientId"`
	Status   string    `json:"status"`
}

func (e TaskStatusChanged) EventName() string { return "tasks.task.status_changed" }
