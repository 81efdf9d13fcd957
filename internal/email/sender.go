package email

import "context"

// Sender delivers transactional emails to agents and clients.
type Sender interface {
	SendClientWelcomeEmail(ctx context.Context, toEmail, clientName, clientCode string) error
	SendTaskReminderEmail(ctx context.Context, toEmail, clientName, taskType, dueDate string) error
	SendLeadAlertEmail(ctx context.Context, toEmail, clientName, clientCode, rating string, score int) error
	SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error
}

// NoopSender satisfies Sender without delivering anything. Used when SMTP
// is not configured, e.g. in local development.
type NoopSender struct{}

func (NoopSender) SendClientWelcomeEmail(ctx context.Context, toEmail, clientName, clientCode string) error {
	return nil
}

func (NoopSender) SendTaskReminderEmail(ctx context.Context, toEmail, clientName, taskType, dueDate string) error {
	return nil
}

func (NoopSender) SendLeadAlertEmail(ctx context.Context, toEmail, clientName, clientCode, rating string, score int) error {
	return nil
}

func (NoopSender) SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error {
	return nil
}
