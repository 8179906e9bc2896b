package logger

import (
	"context"
	"log/slog"
	"time"
)

// SecurityEvent is an entry for the structured security log stream. This
// stream runs alongside the durable audit table: the table feeds the
// admin panel, the log stream feeds operators.
type SecurityEvent struct {
	EventType     string
	UserID        string
	IPAddress     string
	Success       bool
	FailureReason string
}

// SecurityLogger emits structured security events via slog.
type SecurityLogger struct {
	logger *slog.Logger
}

func NewSecurityLogger(logger *slog.Logger) *SecurityLogger {
	return &SecurityLogger{logger: logger}
}

// LogAuthAttempt logs an authentication attempt with its internal cause.
// Causes are distinguishable here even when the HTTP response is not.
func (sl *SecurityLogger) LogAuthAttempt(event SecurityEvent) {
	attrs := []slog.Attr{
		slog.String("audit_type", "auth"),
		slog.String("event_type", event.EventType),
		slog.Bool("success", event.Success),
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
	}

	if event.UserID != "" {
		attrs = append(attrs, slog.String("user_id", event.UserID))
	}
	if event.IPAddress != "" {
		attrs = append(attrs, slog.String("ip_address", event.IPAddress))
	}
	if event.FailureReason != "" {
		attrs = append(attrs, slog.String("failure_reason", event.FailureReason))
	}

	level := slog.LevelInfo
	if !event.Success {
		level = slog.LevelWarn
	}
	sl.logger.LogAttrs(context.Background(), level, "audit", attrs...)
}

// LogAccountAction logs a role-gated account action.
func (sl *SecurityLogger) LogAccountAction(eventType, actorID string) {
	sl.logger.LogAttrs(context.Background(), slog.LevelInfo, "audit",
		slog.String("audit_type", "account"),
		slog.String("event_type", eventType),
		slog.String("actor_id", actorID),
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
	)
}
