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

type DonationRepository struct {
	pool *pgxpool.Pool
}

func NewDonationRepository(db *database.DB) *DonationRepository {
	return &DonationRepository{pool: db.Pool}
}

// Create inserts a donation. The (provider, provider_id) unique
// constraint is the arbiter against double recording: a concurrent
// duplicate surfaces as models.ErrConflict from exactly one of the two
// inserts.
func (r *DonationRepository) Create(ctx context.Context, d *models.Donation) (*models.Donation, error) {
	d.ID = uuid.New().String()
	d.CreatedAt = time.Now()

	if d.Currency == "" {
		d.Currency = "USD"
	}

	query := `
		INSERT INTO donations (id, user_id, amount_cents, currency, provider, provider_id, recurring, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, user_id, amount_cents, currency, provider, provider_id, recurring, created_at
	`

	var created models.Donation
	err := r.pool.QueryRow(ctx, query,
		d.ID, d.UserID, d.AmountCents, d.Currency, d.Provider, d.ProviderID, d.Recurring, d.CreatedAt,
	).Scan(
		&created.ID, &created.UserID, &created.AmountCents, &created.Currency,
		&created.Provider, &created.ProviderID, &created.Recurring, &created.CreatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &created, nil
}

// Total sums all recorded donations in minor units.
func (r *DonationRepository) Total(ctx context.Context) (int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(amount_cents), 0) FROM donations`).Scan(&total)
	if err != nil {
		return 0, database.MapPostgresError(err)
	}
	return total, nil
}

// ListRecent returns the newest donations with the donor name joined in;
// anonymous donations carry an empty donor name.
func (r *DonationRepository) ListRecent(ctx context.Context, limit int) ([]*models.Donation, error) {
	query := `
		SELECT d.id, d.user_id, d.amount_cents, d.currency, d.provider, d.provider_id,
		       d.recurring, d.created_at, COALESCE(u.name, '')
		FROM donations d
		LEFT JOIN users u ON u.id = d.user_id
		ORDER BY d.created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query donations: %w", err)
	}
	defer rows.Close()

	donations := make([]*models.Donation, 0)

	for rows.Next() {
		var d models.Donation
		if err := rows.Scan(&d.ID, &d.UserID, &d.AmountCents, &d.Currency, &d.Provider,
			&d.ProviderID, &d.Recurring, &d.CreatedAt, &d.DonorName); err != nil {
			return nil, fmt.Errorf("failed to scan donation: %w", err)
		}
		donations = append(donations, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return donations, nil
}
