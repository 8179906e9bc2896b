package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundreach/backoffice/internal/models"
	"github.com/soundreach/backoffice/internal/ratelimit"
	pkgauth "github.com/soundreach/backoffice/pkg/auth"
	pkglogger "github.com/soundreach/backoffice/pkg/logger"
)

func newTestAuthService(t *testing.T, repo *MockUserRepository) (*AuthService, *MockAuditLogRepository) {
	t.Helper()

	auditRepo := &MockAuditLogRepository{}
	logger := slog.Default()
	svc := NewAuthService(
		repo,
		ratelimit.NewLimiter(ratelimit.NewMemoryStore()),
		ratelimit.Limit{Max: 5, Window: 15 * time.Minute},
		NewAuditService(auditRepo, logger),
		pkglogger.NewSecurityLogger(logger),
		logger,
	)
	return svc, auditRepo
}

func TestAuthService_Authenticate_Success(t *testing.T) {
	hash, err := pkgauth.HashPassword("CorrectHorse1!")
	require.NoError(t, err)

	user := NewTestUserWithPassword("user123", "staff@example.org", "Staff Member", hash)
	repo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
	}

	svc, auditRepo := newTestAuthService(t, repo)

	result, err := svc.Authenticate(context.Background(), "staff@example.org", "CorrectHorse1!")

	assert.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "user123", result.ID)
	assert.Empty(t, result.PasswordHash)
	assert.Contains(t, auditRepo.Actions, models.AuditUserLogin)
}

func TestAuthService_Authenticate_AdminGetsAdminLoginAudit(t *testing.T) {
	hash, err := pkgauth.HashPassword("CorrectHorse1!")
	require.NoError(t, err)

	admin := NewTestUserWithRole("admin123", "admin@example.org", "Admin", models.RoleAdmin)
	admin.PasswordHash = hash
	repo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return admin, nil
		},
	}

	svc, auditRepo := newTestAuthService(t, repo)

	result, err := svc.Authenticate(context.Background(), "admin@example.org", "CorrectHorse1!")

	assert.NoError(t, err)
	require.NotNil(t, result)
	assert.Contains(t, auditRepo.Actions, models.AuditAdminLogin)
}

func TestAuthService_Authenticate_WrongPassword(t *testing.T) {
	hash, err := pkgauth.HashPassword("CorrectHorse1!")
	require.NoError(t, err)

	user := NewTestUserWithPassword("user123", "staff@example.org", "Staff Member", hash)
	repo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
	}

	svc, auditRepo := newTestAuthService(t, repo)

	result, err := svc.Authenticate(context.Background(), "staff@example.org", "WrongPassword1!")

	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.Contains(t, auditRepo.Actions, models.AuditUserLoginFailed)
}

func TestAuthService_Authenticate_UnknownAccount(t *testing.T) {
	repo := &MockUserRepository{}

	svc, _ := newTestAuthService(t, repo)

	result, err := svc.Authenticate(context.Background(), "nobody@example.org", "AnyPassword1!")

	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestAuthService_Authenticate_SoftDeletedAccount(t *testing.T) {
	hash, err := pkgauth.HashPassword("CorrectHorse1!")
	require.NoError(t, err)

	deleted := NewTestUserDeleted("user123", "gone@example.org", "Former Staff")
	deleted.PasswordHash = hash
	repo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return deleted, nil
		},
	}

	svc, _ := newTestAuthService(t, repo)

	// Correct password, deleted account: same outcome as unknown account.
	result, err := svc.Authenticate(context.Background(), "gone@example.org", "CorrectHorse1!")

	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestAuthService_Authenticate_NoStoredPassword(t *testing.T) {
	user := NewTestUser("user123", "nopass@example.org", "No Password")
	repo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
	}

	svc, _ := newTestAuthService(t, repo)

	result, err := svc.Authenticate(context.Background(), "nopass@example.org", "AnyPassword1!")

	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestAuthService_Authenticate_EmptyCredentials(t *testing.T) {
	getByEmailCalled := false
	repo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			getByEmailCalled = true
			return nil, models.ErrNotFound
		},
	}

	svc, _ := newTestAuthService(t, repo)

	result, err := svc.Authenticate(context.Background(), "", "")

	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.False(t, getByEmailCalled)
}

func TestAuthService_Authenticate_IndistinguishableFailures(t *testing.T) {
	hash, err := pkgauth.HashPassword("CorrectHorse1!")
	require.NoError(t, err)

	deleted := NewTestUserDeleted("user1", "gone@example.org", "Gone")
	deleted.PasswordHash = hash
	withPassword := NewTestUserWithPassword("user2", "staff@example.org", "Staff", hash)

	repo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			switch email {
			case "gone@example.org":
				return deleted, nil
			case "staff@example.org":
				return withPassword, nil
			default:
				return nil, models.ErrNotFound
			}
		},
	}

	svc, _ := newTestAuthService(t, repo)
	ctx := context.Background()

	// Unknown account, deleted account, and wrong password must be
	// byte-for-byte identical to the caller.
	for _, attempt := range []struct{ email, password string }{
		{"nobody@example.org", "CorrectHorse1!"},
		{"gone@example.org", "CorrectHorse1!"},
		{"staff@example.org", "WrongPassword1!"},
	} {
		result, err := svc.Authenticate(ctx, attempt.email, attempt.password)
		assert.NoError(t, err, attempt.email)
		assert.Nil(t, result, attempt.email)
	}
}

func TestAuthService_Authenticate_RateLimited(t *testing.T) {
	repo := &MockUserRepository{}

	auditRepo := &MockAuditLogRepository{}
	logger := slog.Default()
	svc := NewAuthService(
		repo,
		ratelimit.NewLimiter(ratelimit.NewMemoryStore()),
		ratelimit.Limit{Max: 2, Window: 15 * time.Minute},
		NewAuditService(auditRepo, logger),
		pkglogger.NewSecurityLogger(logger),
		logger,
	)

	ctx := context.Background()

	for i := 0; i < 2; i++ {
		result, err := svc.Authenticate(ctx, "target@example.org", "guess")
		assert.NoError(t, err)
		assert.Nil(t, result)
	}

	result, err := svc.Authenticate(ctx, "target@example.org", "guess")
	assert.Nil(t, result)
	require.Error(t, err)

	rle, ok := models.IsRateLimit(err)
	require.True(t, ok)
	assert.Greater(t, rle.RetryAfter, time.Duration(0))
}

func TestAuthService_Authenticate_RateLimitIsPerEmail(t *testing.T) {
	repo := &MockUserRepository{}

	auditRepo := &MockAuditLogRepository{}
	logger := slog.Default()
	svc := NewAuthService(
		repo,
		ratelimit.NewLimiter(ratelimit.NewMemoryStore()),
		ratelimit.Limit{Max: 1, Window: 15 * time.Minute},
		NewAuditService(auditRepo, logger),
		pkglogger.NewSecurityLogger(logger),
		logger,
	)

	ctx := context.Background()

	_, err := svc.Authenticate(ctx, "alpha@example.org", "guess")
	assert.NoError(t, err)

	_, err = svc.Authenticate(ctx, "alpha@example.org", "guess")
	assert.Error(t, err)

	// A different account is unaffected.
	_, err = svc.Authenticate(ctx, "beta@example.org", "guess")
	assert.NoError(t, err)
}

func TestAuthService_Authenticate_EmailNormalized(t *testing.T) {
	hash, err := pkgauth.HashPassword("CorrectHorse1!")
	require.NoError(t, err)

	var lookedUp string
	user := NewTestUserWithPassword("user123", "staff@example.org", "Staff", hash)
	repo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			lookedUp = email
			return user, nil
		},
	}

	svc, _ := newTestAuthService(t, repo)

	result, err := svc.Authenticate(context.Background(), "  STAFF@Example.org ", "CorrectHorse1!")

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "staff@example.org", lookedUp)
}

func TestAuthService_Authenticate_RepositoryError(t *testing.T) {
	repo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return nil, models.ErrInternalServer
		},
	}

	svc, _ := newTestAuthService(t, repo)

	result, err := svc.Authenticate(context.Background(), "staff@example.org", "CorrectHorse1!")

	assert.Nil(t, result)
	assert.Equal(t, models.ErrInternalServer, err)
}

func TestAuthService_Logout_RecordsAudit(t *testing.T) {
	svc, auditRepo := newTestAuthService(t, &MockUserRepository{})

	svc.Logout(context.Background(), "user123")

	assert.Contains(t, auditRepo.Actions, models.AuditUserLogout)
}
