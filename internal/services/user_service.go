package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/soundreach/backoffice/internal/models"
	pkgauth "github.com/soundreach/backoffice/pkg/auth"
)

// UserService handles account management business logic.
type UserService struct {
	repo   UserRepository
	audit  *AuditService
	logger *slog.Logger
}

func NewUserService(repo UserRepository, audit *AuditService, logger *slog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		audit:  audit,
		logger: logger,
	}
}

func (s *UserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get user", slog.String("user_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return user, nil
}

// ListUsers returns accounts newest first; soft-deleted accounts appear
// only when showDeleted is set.
func (s *UserService) ListUsers(ctx context.Context, showDeleted bool, limit, offset int) ([]*models.User, error) {
	users, err := s.repo.List(ctx, showDeleted, limit, offset)
	if err != nil {
		s.logger.Error("failed to list users", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return users, nil
}

// CreateUser creates an account with a hashed password. The password
// must already satisfy the policy; validation happens at the boundary.
func (s *UserService) CreateUser(ctx context.Context, actorID string, user *models.User, password string) (*models.User, error) {
	existing, err := s.repo.GetByEmail(ctx, user.Email)
	if err == nil && existing != nil {
		return nil, models.ErrConflict
	}
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		s.logger.Error("failed to check existing user", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if password != "" {
		hashedPassword, err := pkgauth.HashPassword(password)
		if err != nil {
			s.logger.Error("failed to hash password", slog.Any("error", err))
			return nil, models.ErrInternalServer
		}
		user.PasswordHash = hashedPassword
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, models.ErrConflict
		}
		s.logger.Error("failed to create user", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.audit.Record(ctx, models.AuditUserCreated, &actorID)
	s.logger.Info("user created", slog.String("user_id", created.ID))

	return created, nil
}

// UpdateUserInput carries the optional fields of a partial update.
type UpdateUserInput struct {
	Email    string
	Name     string
	Role     models.Role
	Password string
}

// UpdateUser applies a partial update. A password change gets its own
// audit record on top of the update record.
func (s *UserService) UpdateUser(ctx context.Context, actorID, id string, input UpdateUserInput) (*models.User, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get user", slog.String("user_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if input.Email != "" {
		existing.Email = input.Email
	}
	if input.Name != "" {
		existing.Name = input.Name
	}
	if input.Role != "" {
		existing.Role = input.Role
	}

	updated, err := s.repo.Update(ctx, id, existing)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, models.ErrConflict
		}
		s.logger.Error("failed to update user", slog.String("user_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if input.Password != "" {
		hashedPassword, err := pkgauth.HashPassword(input.Password)
		if err != nil {
			s.logger.Error("failed to hash password", slog.Any("error", err))
			return nil, models.ErrInternalServer
		}
		if err := s.repo.UpdatePasswordHash(ctx, id, hashedPassword); err != nil {
			s.logger.Error("failed to update password", slog.String("user_id", id), slog.Any("error", err))
			return nil, models.ErrInternalServer
		}
		s.audit.Record(ctx, models.AuditPasswordChanged, &actorID)
	}

	s.audit.Record(ctx, models.AuditUserUpdated, &actorID)
	s.logger.Info("user updated", slog.String("user_id", id))

	return updated, nil
}

// DeleteUser soft-deletes an account. The row remains retrievable with
// an explicit show-deleted listing and can be restored.
func (s *UserService) DeleteUser(ctx context.Context, actorID, id string) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to delete user", slog.String("user_id", id), slog.Any("error", err))
		return models.ErrInternalServer
	}

	s.audit.Record(ctx, models.AuditUserDeleted, &actorID)
	s.logger.Info("user soft-deleted", slog.String("user_id", id))

	return nil
}

// RestoreUser clears the deletion mark. Restoring an account that is not
// deleted is rejected with ErrBadRequest.
func (s *UserService) RestoreUser(ctx context.Context, actorID, id string) (*models.User, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get user", slog.String("user_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if !existing.IsDeleted() {
		return nil, models.ErrBadRequest
	}

	restored, err := s.repo.Restore(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrBadRequest
		}
		s.logger.Error("failed to restore user", slog.String("user_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.audit.Record(ctx, models.AuditUserRestored, &actorID)
	s.logger.Info("user restored", slog.String("user_id", id))

	return restored, nil
}
