package services

import (
	"context"
	"time"

	"github.com/soundreach/backoffice/internal/models"
)

// MockUserRepository implements UserRepository for testing
type MockUserRepository struct {
	GetByIDFunc            func(ctx context.Context, id string) (*models.User, error)
	GetByEmailFunc         func(ctx context.Context, email string) (*models.User, error)
	ListFunc               func(ctx context.Context, includeDeleted bool, limit, offset int) ([]*models.User, error)
	CreateFunc             func(ctx context.Context, user *models.User) (*models.User, error)
	UpdateFunc             func(ctx context.Context, id string, user *models.User) (*models.User, error)
	UpdatePasswordHashFunc func(ctx context.Context, id, passwordHash string) error
	SoftDeleteFunc         func(ctx context.Context, id string) error
	RestoreFunc            func(ctx context.Context, id string) (*models.User, error)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) List(ctx context.Context, includeDeleted bool, limit, offset int) ([]*models.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, includeDeleted, limit, offset)
	}
	return []*models.User{}, nil
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil, models.ErrInternalServer
}

func (m *MockUserRepository) Update(ctx context.Context, id string, user *models.User) (*models.User, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, user)
	}
	return nil, models.ErrInternalServer
}

func (m *MockUserRepository) UpdatePasswordHash(ctx context.Context, id, passwordHash string) error {
	if m.UpdatePasswordHashFunc != nil {
		return m.UpdatePasswordHashFunc(ctx, id, passwordHash)
	}
	return nil
}

func (m *MockUserRepository) SoftDelete(ctx context.Context, id string) error {
	if m.SoftDeleteFunc != nil {
		return m.SoftDeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockUserRepository) Restore(ctx context.Context, id string) (*models.User, error) {
	if m.RestoreFunc != nil {
		return m.RestoreFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

// MockAuditLogRepository implements AuditLogRepository for testing.
// Recorded actions accumulate in Actions for assertions.
type MockAuditLogRepository struct {
	CreateFunc     func(ctx context.Context, action models.AuditAction, actorID *string) error
	ListRecentFunc func(ctx context.Context, limit int) ([]*models.AuditLog, error)
	Actions        []models.AuditAction
}

func (m *MockAuditLogRepository) Create(ctx context.Context, action models.AuditAction, actorID *string) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, action, actorID)
	}
	m.Actions = append(m.Actions, action)
	return nil
}

func (m *MockAuditLogRepository) ListRecent(ctx context.Context, limit int) ([]*models.AuditLog, error) {
	if m.ListRecentFunc != nil {
		return m.ListRecentFunc(ctx, limit)
	}
	return []*models.AuditLog{}, nil
}

// MockDonationRepository implements DonationRepository for testing
type MockDonationRepository struct {
	CreateFunc     func(ctx context.Context, d *models.Donation) (*models.Donation, error)
	TotalFunc      func(ctx context.Context) (int64, error)
	ListRecentFunc func(ctx context.Context, limit int) ([]*models.Donation, error)
}

func (m *MockDonationRepository) Create(ctx context.Context, d *models.Donation) (*models.Donation, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, d)
	}
	return d, nil
}

func (m *MockDonationRepository) Total(ctx context.Context) (int64, error) {
	if m.TotalFunc != nil {
		return m.TotalFunc(ctx)
	}
	return 0, nil
}

func (m *MockDonationRepository) ListRecent(ctx context.Context, limit int) ([]*models.Donation, error) {
	if m.ListRecentFunc != nil {
		return m.ListRecentFunc(ctx, limit)
	}
	return []*models.Donation{}, nil
}

// MockContactRepository implements ContactRepository for testing
type MockContactRepository struct {
	CreateFunc       func(ctx context.Context, s *models.ContactSubmission) (*models.ContactSubmission, error)
	ListFunc         func(ctx context.Context, status string, limit, offset int) ([]*models.ContactSubmission, int, error)
	UpdateStatusFunc func(ctx context.Context, id, status string) error
}

func (m *MockContactRepository) Create(ctx context.Context, s *models.ContactSubmission) (*models.ContactSubmission, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, s)
	}
	s.ID = "sub_test"
	s.Status = models.ContactStatusNew
	return s, nil
}

func (m *MockContactRepository) List(ctx context.Context, status string, limit, offset int) ([]*models.ContactSubmission, int, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, status, limit, offset)
	}
	return []*models.ContactSubmission{}, 0, nil
}

func (m *MockContactRepository) UpdateStatus(ctx context.Context, id, status string) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}

// MockEmailService implements EmailService for testing
type MockEmailService struct {
	SendContactNotificationFunc func(ctx context.Context, submission *models.ContactSubmission) error
	SendContactAutoReplyFunc    func(ctx context.Context, submission *models.ContactSubmission) error
	NotificationsSent           int
	AutoRepliesSent             int
}

func (m *MockEmailService) SendContactNotification(ctx context.Context, submission *models.ContactSubmission) error {
	m.NotificationsSent++
	if m.SendContactNotificationFunc != nil {
		return m.SendContactNotificationFunc(ctx, submission)
	}
	return nil
}

func (m *MockEmailService) SendContactAutoReply(ctx context.Context, submission *models.ContactSubmission) error {
	m.AutoRepliesSent++
	if m.SendContactAutoReplyFunc != nil {
		return m.SendContactAutoReplyFunc(ctx, submission)
	}
	return nil
}

// NewTestUser creates an active staff account
func NewTestUser(id, email, name string) *models.User {
	now := time.Now()
	return &models.User{
		ID:        id,
		Email:     email,
		Name:      name,
		Role:      models.RoleStaff,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewTestUserWithPassword creates a user with a stored password hash
func NewTestUserWithPassword(id, email, name, passwordHash string) *models.User {
	user := NewTestUser(id, email, name)
	user.PasswordHash = passwordHash
	return user
}

// NewTestUserWithRole creates a user with the given role
func NewTestUserWithRole(id, email, name string, role models.Role) *models.User {
	user := NewTestUser(id, email, name)
	user.Role = role
	return user
}

// NewTestUserDeleted creates a soft-deleted user
func NewTestUserDeleted(id, email, name string) *models.User {
	user := NewTestUser(id, email, name)
	deletedAt := time.Now().Add(-1 * time.Hour)
	user.DeletedAt = &deletedAt
	return user
}
