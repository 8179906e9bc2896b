package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/soundreach/backoffice/internal/models"
	"github.com/soundreach/backoffice/internal/ratelimit"
	pkgauth "github.com/soundreach/backoffice/pkg/auth"
	pkglogger "github.com/soundreach/backoffice/pkg/logger"
	"github.com/soundreach/backoffice/pkg/sanitize"
)

// UserRepository defines the account storage the auth service consults.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, includeDeleted bool, limit, offset int) ([]*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, id string, user *models.User) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, id, passwordHash string) error
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) (*models.User, error)
}

// Internal failure causes. All collapse to the same nil result at the
// boundary so callers cannot enumerate accounts; the audit trail keeps
// them distinguishable for operators.
const (
	causeEmptyCredentials = "empty_credentials"
	causeUnknownAccount   = "unknown_account"
	causeAccountDeleted   = "account_deleted"
	causeNoPassword       = "no_password_set"
	causeWrongPassword    = "wrong_password"
)

// AuthService verifies credentials and applies the authentication rate
// limit.
type AuthService struct {
	repo      UserRepository
	limiter   *ratelimit.Limiter
	authLimit ratelimit.Limit
	audit     *AuditService
	seclog    *pkglogger.SecurityLogger
	logger    *slog.Logger
}

func NewAuthService(
	repo UserRepository,
	limiter *ratelimit.Limiter,
	authLimit ratelimit.Limit,
	audit *AuditService,
	seclog *pkglogger.SecurityLogger,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		repo:      repo,
		limiter:   limiter,
		authLimit: authLimit,
		audit:     audit,
		seclog:    seclog,
		logger:    logger,
	}
}

// Authenticate checks an email/password pair against stored accounts.
//
// Ordinary failures (unknown account, soft-deleted account, no local
// password, wrong password, empty input) all return (nil, nil) so the
// caller cannot tell them apart. Exceeding the rate limit returns a
// *models.RateLimitError: a hard stop, not a silent failure. Storage
// errors return models.ErrInternalServer.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = sanitize.Email(email)

	if email == "" || password == "" {
		s.logFailure("", causeEmptyCredentials)
		s.audit.Record(ctx, models.AuditFailedAuthAttempt, nil)
		return nil, nil
	}

	// Limiter keyed by normalized email; counts every attempt, not just
	// failures.
	result := s.limiter.Check("auth:"+email, s.authLimit)
	if !result.Allowed {
		s.seclog.LogAuthAttempt(pkglogger.SecurityEvent{
			EventType:     "login_rate_limited",
			Success:       false,
			FailureReason: "rate_limit_exceeded",
		})
		s.audit.Record(ctx, models.AuditFailedAuthAttempt, nil)
		return nil, &models.RateLimitError{RetryAfter: result.RetryAfter}
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logFailure("", causeUnknownAccount)
			s.audit.Record(ctx, models.AuditUserLoginFailed, nil)
			return nil, nil
		}
		s.logger.Error("failed to get user by email", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if user.IsDeleted() {
		// Indistinguishable from an unknown account externally; the
		// audit record keeps the found identifier for investigation.
		s.logFailure(user.ID, causeAccountDeleted)
		s.audit.Record(ctx, models.AuditUserLoginFailed, &user.ID)
		return nil, nil
	}

	if user.PasswordHash == "" {
		s.logFailure(user.ID, causeNoPassword)
		return nil, nil
	}

	if err := pkgauth.ComparePassword(user.PasswordHash, password); err != nil {
		s.logFailure(user.ID, causeWrongPassword)
		s.audit.Record(ctx, models.AuditUserLoginFailed, &user.ID)
		return nil, nil
	}

	loginAction := models.AuditUserLogin
	if user.Role.AtLeast(models.RoleAdmin) {
		loginAction = models.AuditAdminLogin
	}
	s.audit.Record(ctx, loginAction, &user.ID)
	s.seclog.LogAuthAttempt(pkglogger.SecurityEvent{
		EventType: "login_success",
		UserID:    user.ID,
		Success:   true,
	})

	return user.Scrub(), nil
}

// Logout records the sign-out; the stateless session itself simply gets
// its cookie cleared at the boundary.
func (s *AuthService) Logout(ctx context.Context, userID string) {
	s.audit.Record(ctx, models.AuditUserLogout, &userID)
}

func (s *AuthService) logFailure(userID, cause string) {
	s.seclog.LogAuthAttempt(pkglogger.SecurityEvent{
		EventType:     "login_failed",
		UserID:        userID,
		Success:       false,
		FailureReason: cause,
	})
}
