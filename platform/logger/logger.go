// Package logger provides structured logging built on log/slog.
package logger

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with application-specific helpers.
type Logger struct {
	*slog.Logger
}

// New creates a logger configured for the given environment.
// Development gets human-readable text output, everything else JSON.
func New(environment string) *Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}
	if environment == "development" {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{Logger: slog.New(handler)}
}

// With returns a logger with the given attributes attached.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// HTTPRequest logs an HTTP request with standard fields.
func (l *Logger) HTTPRequest(method, path string, status int, durationMs float64, clientIP string) {
	l.Info("http request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Float64("duration_ms", durationMs),
		slog.String("client_ip", clientIP),
	)
}

// DatabaseError logs a database failure with the operation that caused it.
func (l *Logger) DatabaseError(ctx context.Context, op string, err error) {
	l.ErrorContext(ctx, "database error",
		slog.String("op", op),
		slog.String("error", err.Error()),
	)
}

// AuthEvent logs an authentication event (login, register, token refresh).
func (l *Logger) AuthEvent(event, email string, success bool) {
	l.Info("auth event",
		slog.String("event", event),
		slog.String("email", email),
		slog.Bool("success", success),
	)
}

// RateLimitExceeded logs a rate limit rejection.
func (l *Logger) RateLimitExceeded(clientIP, path string) {
	l.Warn("rate limit exceeded",
		slog.String("client_ip", clientIP),
		slog.String("path", path),
	)
}
