package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/soundreach/backoffice/internal/models"
)

// AuditLogRepository defines the storage interface for audit records.
type AuditLogRepository interface {
	Create(ctx context.Context, action models.AuditAction, actorID *string) error
	ListRecent(ctx context.Context, limit int) ([]*models.AuditLog, error)
}

// AuditService appends security-relevant events. Recording is best
// effort: storage failures are logged operationally and swallowed, never
// surfaced to the caller, so audit logging can never fail a request.
type AuditService struct {
	repo   AuditLogRepository
	logger *slog.Logger
}

func NewAuditService(repo AuditLogRepository, logger *slog.Logger) *AuditService {
	return &AuditService{
		repo:   repo,
		logger: logger,
	}
}

// Record appends one audit record. The write uses a context detached
// from the request so a client disconnect cannot cancel it.
func (s *AuditService) Record(ctx context.Context, action models.AuditAction, actorID *string) {
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := s.repo.Create(writeCtx, action, actorID); err != nil {
		attrs := []slog.Attr{
			slog.String("action", string(action)),
			slog.Any("error", err),
		}
		if actorID != nil {
			attrs = append(attrs, slog.String("actor_id", *actorID))
		}
		s.logger.LogAttrs(context.Background(), slog.LevelError, "failed to create audit log", attrs...)
	}
}

// ListRecent returns the newest audit records for the admin panel.
func (s *AuditService) ListRecent(ctx context.Context, limit int) ([]*models.AuditLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	logs, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		s.logger.Error("failed to list audit logs", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return logs, nil
}
