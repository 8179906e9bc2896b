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

type ContactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(db *database.DB) *ContactRepository {
	return &ContactRepository{pool: db.Pool}
}

func (r *ContactRepository) Create(ctx context.Context, s *models.ContactSubmission) (*models.ContactSubmission, error) {
	s.ID = uuid.New().String()
	s.CreatedAt = time.Now()

	if s.Status == "" {
		s.Status = models.ContactStatusNew
	}

	query := `
		INSERT INTO contact_submissions (id, name, email, subject, message, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, name, email, subject, message, status, created_at
	`

	var created models.ContactSubmission
	err := r.pool.QueryRow(ctx, query,
		s.ID, s.Name, s.Email, s.Subject, s.Message, s.Status, s.CreatedAt,
	).Scan(
		&created.ID, &created.Name, &created.Email, &created.Subject,
		&created.Message, &created.Status, &created.CreatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &created, nil
}

// List returns submissions newest first, optionally filtered by status.
func (r *ContactRepository) List(ctx context.Context, status string, limit, offset int) ([]*models.ContactSubmission, int, error) {
	baseWhere := ""
	args := []interface{}{limit, offset}
	countArgs := []interface{}{}

	if status != "" {
		baseWhere = " WHERE status = $3"
		args = append(args, status)
		countArgs = append(countArgs, status)
	}

	query := `
		SELECT id, name, email, subject, message, status, created_at
		FROM contact_submissions` + baseWhere + `
		ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query contact submissions: %w", err)
	}
	defer rows.Close()

	submissions := make([]*models.ContactSubmission, 0)

	for rows.Next() {
		var s models.ContactSubmission
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Subject, &s.Message,
			&s.Status, &s.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan contact submission: %w", err)
		}
		submissions = append(submissions, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	countQuery := `SELECT COUNT(*) FROM contact_submissions`
	if status != "" {
		countQuery += ` WHERE status = $1`
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count contact submissions: %w", err)
	}

	return submissions, total, nil
}

func (r *ContactRepository) UpdateStatus(ctx context.Context, id, status string) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE contact_submissions SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
