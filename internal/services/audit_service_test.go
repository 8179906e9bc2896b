package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soundreach/backoffice/internal/models"
)

func TestAuditService_Record_StoresAction(t *testing.T) {
	repo := &MockAuditLogRepository{}
	svc := NewAuditService(repo, slog.Default())

	actorID := "user123"
	svc.Record(context.Background(), models.AuditUserLogin, &actorID)

	assert.Equal(t, []models.AuditAction{models.AuditUserLogin}, repo.Actions)
}

func TestAuditService_Record_SwallowsStorageErrors(t *testing.T) {
	repo := &MockAuditLogRepository{
		CreateFunc: func(ctx context.Context, action models.AuditAction, actorID *string) error {
			return errors.New("database down")
		},
	}
	svc := NewAuditService(repo, slog.Default())

	// Must not panic or propagate anything.
	svc.Record(context.Background(), models.AuditUserLogin, nil)
}

func TestAuditService_Record_SurvivesCancelledContext(t *testing.T) {
	var gotErr error
	repo := &MockAuditLogRepository{
		CreateFunc: func(ctx context.Context, action models.AuditAction, actorID *string) error {
			gotErr = ctx.Err()
			return nil
		},
	}
	svc := NewAuditService(repo, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc.Record(ctx, models.AuditUserLogout, nil)

	// The write context is detached from the request context.
	assert.NoError(t, gotErr)
}

func TestAuditService_ListRecent_ClampsLimit(t *testing.T) {
	var gotLimit int
	repo := &MockAuditLogRepository{
		ListRecentFunc: func(ctx context.Context, limit int) ([]*models.AuditLog, error) {
			gotLimit = limit
			return []*models.AuditLog{}, nil
		},
	}
	svc := NewAuditService(repo, slog.Default())

	_, err := svc.ListRecent(context.Background(), -5)
	assert.NoError(t, err)
	assert.Equal(t, 50, gotLimit)

	_, err = svc.ListRecent(context.Background(), 1000)
	assert.NoError(t, err)
	assert.Equal(t, 50, gotLimit)
}

func TestAuditService_ListRecent_RepositoryError(t *testing.T) {
	repo := &MockAuditLogRepository{
		ListRecentFunc: func(ctx context.Context, limit int) ([]*models.AuditLog, error) {
			return nil, errors.New("database down")
		},
	}
	svc := NewAuditService(repo, slog.Default())

	logs, err := svc.ListRecent(context.Background(), 50)

	assert.Nil(t, logs)
	assert.Equal(t, models.ErrInternalServer, err)
}
