package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/soundreach/backoffice/internal/database"
	"github.com/soundreach/backoffice/internal/models"
)

type AuditLogRepository struct {
	pool *pgxpool.Pool
}

func NewAuditLogRepository(db *database.DB) *AuditLogRepository {
	return &AuditLogRepository{pool: db.Pool}
}

// Create appends one immutable record. There is no update or delete.
func (r *AuditLogRepository) Create(ctx context.Context, action models.AuditAction, actorID *string) error {
	query := `INSERT INTO audit_logs (id, action, actor_id, created_at) VALUES ($1, $2, $3, $4)`

	_, err := r.pool.Exec(ctx, query, uuid.New().String(), string(action), actorID, time.Now())
	if err != nil {
		return database.MapPostgresError(err)
	}

	return nil
}

// ListRecent returns the newest records with the actor joined in for
// display. The actor may be nil for system or pre-authentication events.
func (r *AuditLogRepository) ListRecent(ctx context.Context, limit int) ([]*models.AuditLog, error) {
	query := `
		SELECT a.id, a.action, a.actor_id, a.created_at,
		       COALESCE(u.name, ''), COALESCE(u.email, '')
		FROM audit_logs a
		LEFT JOIN users u ON u.id = a.actor_id
		ORDER BY a.created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit logs: %w", err)
	}
	defer rows.Close()

	logs := make([]*models.AuditLog, 0)

	for rows.Next() {
		var log models.AuditLog
		if err := rows.Scan(&log.ID, &log.Action, &log.ActorID, &log.CreatedAt,
			&log.ActorName, &log.ActorEmail); err != nil {
			return nil, fmt.Errorf("failed to scan audit log: %w", err)
		}
		logs = append(logs, &log)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return logs, nil
}
