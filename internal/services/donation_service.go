package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/soundreach/backoffice/internal/models"
)

// DonationRepository defines the storage interface for donations.
type DonationRepository interface {
	Create(ctx context.Context, d *models.Donation) (*models.Donation, error)
	Total(ctx context.Context) (int64, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Donation, error)
}

// DonationService records donations reported by payment providers.
type DonationService struct {
	repo     DonationRepository
	userRepo UserRepository
	audit    *AuditService
	logger   *slog.Logger
}

func NewDonationService(repo DonationRepository, userRepo UserRepository, audit *AuditService, logger *slog.Logger) *DonationService {
	return &DonationService{
		repo:     repo,
		userRepo: userRepo,
		audit:    audit,
		logger:   logger,
	}
}

// RecordDonation persists a donation. A duplicate (provider, providerID)
// pair returns ErrConflict; the database unique constraint decides, so
// two concurrent webhooks for the same payment cannot both succeed.
func (s *DonationService) RecordDonation(ctx context.Context, d *models.Donation) (*models.Donation, error) {
	if d.AmountCents <= 0 {
		s.audit.Record(ctx, models.AuditPaymentFailed, d.UserID)
		return nil, models.ErrBadRequest
	}
	if d.AmountCents > models.MaxDonationCents {
		s.audit.Record(ctx, models.AuditPaymentFailed, d.UserID)
		return nil, models.ErrBadRequest
	}

	if d.UserID != nil {
		if _, err := s.userRepo.GetByID(ctx, *d.UserID); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return nil, models.ErrNotFound
			}
			s.logger.Error("failed to verify donor", slog.Any("error", err))
			return nil, models.ErrInternalServer
		}
	}

	created, err := s.repo.Create(ctx, d)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, models.ErrConflict
		}
		s.logger.Error("failed to record donation", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.audit.Record(ctx, models.AuditDonationCreated, d.UserID)
	s.logger.Info("donation recorded",
		slog.String("donation_id", created.ID),
		slog.Int64("amount_cents", created.AmountCents),
		slog.String("provider", created.Provider))

	return created, nil
}

func (s *DonationService) Total(ctx context.Context) (int64, error) {
	total, err := s.repo.Total(ctx)
	if err != nil {
		s.logger.Error("failed to sum donations", slog.Any("error", err))
		return 0, models.ErrInternalServer
	}
	return total, nil
}

func (s *DonationService) ListRecent(ctx context.Context, limit int) ([]*models.Donation, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	donations, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		s.logger.Error("failed to list donations", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return donations, nil
}
