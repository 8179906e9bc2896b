package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/soundreach/backoffice/internal/models"
	"github.com/soundreach/backoffice/internal/services"
)

// MockContactService implements ContactService for handler tests
type MockContactService struct {
	SubmitFunc       func(ctx context.Context, submission *models.ContactSubmission) (*models.ContactSubmission, error)
	ListFunc         func(ctx context.Context, status string, limit, offset int) ([]*models.ContactSubmission, int, error)
	UpdateStatusFunc func(ctx context.Context, id, status string) error
}

func (m *MockContactService) Submit(ctx context.Context, submission *models.ContactSubmission) (*models.ContactSubmission, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, submission)
	}
	submission.ID = "sub_test"
	return submission, nil
}

func (m *MockContactService) List(ctx context.Context, status string, limit, offset int) ([]*models.ContactSubmission, int, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, status, limit, offset)
	}
	return []*models.ContactSubmission{}, 0, nil
}

func (m *MockContactService) UpdateStatus(ctx context.Context, id, status string) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}

func newContactRouter(h *ContactHandler) *chi.Mux {
	router := chi.NewRouter()
	router.Patch("/contact/submissions/{id}", h.UpdateStatus)
	return router
}

func contactBody(t *testing.T, req ContactRequest) *bytes.Reader {
	t.Helper()
	body, err := json.Marshal(req)
	if err != nil {
		t.Fatal(err)
	}
	return bytes.NewReader(body)
}

func TestContactHandler_Submit_Success(t *testing.T) {
	var stored *models.ContactSubmission
	svc := &MockContactService{
		SubmitFunc: func(ctx context.Context, submission *models.ContactSubmission) (*models.ContactSubmission, error) {
			stored = submission
			return submission, nil
		},
	}
	h := NewContactHandler(svc)

	r := httptest.NewRequest(http.MethodPost, "/contact", contactBody(t, ContactRequest{
		Name:    "Jordan Smith",
		Email:   "Jordan@Example.ORG",
		Subject: "Volunteering",
		Message: "I would like to help out.",
	}))
	w := httptest.NewRecorder()
	h.Submit(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	if assert.NotNil(t, stored) {
		assert.Equal(t, "jordan@example.org", stored.Email)
	}
}

func TestContactHandler_Submit_WhitespaceEmailRejected(t *testing.T) {
	submitCalled := false
	svc := &MockContactService{
		SubmitFunc: func(ctx context.Context, submission *models.ContactSubmission) (*models.ContactSubmission, error) {
			submitCalled = true
			return submission, nil
		},
	}
	h := NewContactHandler(svc)

	r := httptest.NewRequest(http.MethodPost, "/contact", contactBody(t, ContactRequest{
		Name:    "Jordan Smith",
		Email:   "  jordan@example.org ",
		Subject: "Volunteering",
		Message: "I would like to help out.",
	}))
	w := httptest.NewRecorder()
	h.Submit(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, submitCalled)
}

func TestContactHandler_Submit_SpamAcceptedSilently(t *testing.T) {
	svc := &MockContactService{
		SubmitFunc: func(ctx context.Context, submission *models.ContactSubmission) (*models.ContactSubmission, error) {
			return nil, services.ErrSpam
		},
	}
	h := NewContactHandler(svc)

	r := httptest.NewRequest(http.MethodPost, "/contact", contactBody(t, ContactRequest{
		Name:    "Someone",
		Email:   "spam@example.org",
		Subject: "Winnings",
		Message: "You have won",
	}))
	w := httptest.NewRecorder()
	h.Submit(w, r)

	// The sender cannot tell the submission was discarded.
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Thank you")
}

func TestContactHandler_Submit_XSSRejected(t *testing.T) {
	submitCalled := false
	svc := &MockContactService{
		SubmitFunc: func(ctx context.Context, submission *models.ContactSubmission) (*models.ContactSubmission, error) {
			submitCalled = true
			return submission, nil
		},
	}
	h := NewContactHandler(svc)

	r := httptest.NewRequest(http.MethodPost, "/contact", contactBody(t, ContactRequest{
		Name:    "Jordan",
		Email:   "jordan@example.org",
		Subject: "Hello",
		Message: "<script>alert(document.cookie)</script>",
	}))
	w := httptest.NewRecorder()
	h.Submit(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, submitCalled)
}

func TestContactHandler_Submit_MissingFields(t *testing.T) {
	h := NewContactHandler(&MockContactService{})

	r := httptest.NewRequest(http.MethodPost, "/contact", contactBody(t, ContactRequest{
		Name:  "Jordan",
		Email: "jordan@example.org",
	}))
	w := httptest.NewRecorder()
	h.Submit(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContactHandler_UpdateStatus_InvalidStatusValue(t *testing.T) {
	h := NewContactHandler(&MockContactService{})

	body, _ := json.Marshal(UpdateContactStatusRequest{Status: "archived"})
	router := newContactRouter(h)

	r := httptest.NewRequest(http.MethodPatch, "/contact/submissions/"+userID, bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
