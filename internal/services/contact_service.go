package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/soundreach/backoffice/internal/models"
)

// ContactRepository defines the storage interface for contact submissions.
type ContactRepository interface {
	Create(ctx context.Context, s *models.ContactSubmission) (*models.ContactSubmission, error)
	List(ctx context.Context, status string, limit, offset int) ([]*models.ContactSubmission, int, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

var spamKeywords = []string{"viagra", "casino", "lottery", "prince", "inheritance"}

// ErrSpam rejects submissions matching known spam patterns.
var ErrSpam = errors.New("message appears to be spam")

// ContactService persists contact-form submissions and sends
// notifications. Email is a best-effort side channel: send failures are
// logged and never fail the submission.
type ContactService struct {
	repo   ContactRepository
	email  EmailService
	logger *slog.Logger
}

func NewContactService(repo ContactRepository, email EmailService, logger *slog.Logger) *ContactService {
	return &ContactService{
		repo:   repo,
		email:  email,
		logger: logger,
	}
}

// Submit stores a cleaned submission, rejecting spam. Inputs must
// already be sanitized and length-capped at the boundary.
func (s *ContactService) Submit(ctx context.Context, submission *models.ContactSubmission) (*models.ContactSubmission, error) {
	combined := strings.ToLower(submission.Name + " " + submission.Subject + " " + submission.Message)
	for _, keyword := range spamKeywords {
		if strings.Contains(combined, keyword) {
			return nil, ErrSpam
		}
	}

	created, err := s.repo.Create(ctx, submission)
	if err != nil {
		s.logger.Error("failed to store contact submission", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if s.email != nil {
		if err := s.email.SendContactNotification(ctx, created); err != nil {
			s.logger.Error("failed to send contact notification", slog.Any("error", err))
		}
		if err := s.email.SendContactAutoReply(ctx, created); err != nil {
			s.logger.Error("failed to send contact auto-reply", slog.Any("error", err))
		}
	}

	return created, nil
}

func (s *ContactService) List(ctx context.Context, status string, limit, offset int) ([]*models.ContactSubmission, int, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	submissions, total, err := s.repo.List(ctx, status, limit, offset)
	if err != nil {
		s.logger.Error("failed to list contact submissions", slog.Any("error", err))
		return nil, 0, models.ErrInternalServer
	}

	return submissions, total, nil
}

// UpdateStatus moves a submission through new -> read -> resolved.
func (s *ContactService) UpdateStatus(ctx context.Context, id, status string) error {
	switch status {
	case models.ContactStatusNew, models.ContactStatusRead, models.ContactStatusResolved:
	default:
		return models.ErrBadRequest
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to update contact submission", slog.String("id", id), slog.Any("error", err))
		return models.ErrInternalServer
	}

	return nil
}
