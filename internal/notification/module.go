// Package notification turns domain events into outbound email. It inverts
// the dependency so that the clients and leads modules never touch mail
// delivery directly.
package notification

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"estate_crm_backend/internal/email"
	"estate_crm_backend/internal/events"
	"estate_crm_backend/platform/config"
	"estate_crm_backend/platform/logger"
)

type Module struct {
	repo       *Repository
	sender     email.Sender
	alertEmail string
	log        *logger.Logger
}

// NewModule wires the notification handlers and subscribes them to the bus.
func NewModule(pool *pgxpool.Pool, cfg *config.Config, bus events.Bus, sender email.Sender, log *logger.Logger) *Module {
	m := &Module{
		repo:       NewRepository(pool),
		sender:     sender,
		alertEmail: cfg.App.AlertEmail,
		log:        log,
	}

	bus.Subscribe(events.ClientCreated{}.EventName(), m)
	bus.Subscribe(events.LeadBecameHot{}.EventName(), m)
	return m
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.ClientCreated:
		return m.handleClientCreated(ctx, e)
	case events.LeadBecameHot:
		return m.handleLeadBecameHot(ctx, e)
	}
	return nil
}

func (m *Module) handleClientCreated(ctx context.Context, e events.ClientCreated) error {
	contact, err := m.repo.GetContact(ctx, e.ClientID)
	if err != nil {
		return err
	}
	if contact.Email == "" {
		return nil
	}

	if err := m.sender.SendClientWelcomeEmail(ctx, contact.Email, contact.Name, contact.Code); err != nil {
		m.log.Error("failed to send welcome email", "client_code", contact.Code, "error", err)
		return err
	}
	return nil
}

func (m *Module) handleLeadBecameHot(ctx context.Context, e events.LeadBecameHot) error {
	if m.alertEmail == "" {
		return nil
	}

	err := m.sender.SendLeadAlertEmail(ctx, m.alertEmail, e.Name, e.ClientCode, "Hot", e.Score)
	if err != nil {
		m.log.Error("failed to send lead alert", "client_code", e.ClientCode, "error", err)
		return err
	}
	return nil
}

var _ events.Handler = (*Module)(nil)
