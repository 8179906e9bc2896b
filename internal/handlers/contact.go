package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/soundreach/backoffice/internal/models"
	"github.com/soundreach/backoffice/internal/services"
	pkghttp "github.com/soundreach/backoffice/pkg/http"
	"github.com/soundreach/backoffice/pkg/sanitize"
)

type ContactService interface {
	Submit(ctx context.Context, submission *models.ContactSubmission) (*models.ContactSubmission, error)
	List(ctx context.Context, status string, limit, offset int) ([]*models.ContactSubmission, int, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type ContactHandler struct {
	service ContactService
}

func NewContactHandler(service ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=100,noxss"`
	Email   string `json:"email" validate:"required,email,max=100"`
	Subject string `json:"subject" validate:"required,min=1,max=200,noxss"`
	Message string `json:"message" validate:"required,min=1,max=2000,noxss"`
}

type UpdateContactStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new read resolved"`
}

type ContactSubmissionResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

func contactModelToResponse(s *models.ContactSubmission) *ContactSubmissionResponse {
	return &ContactSubmissionResponse{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Subject:   s.Subject,
		Message:   s.Message,
		Status:    s.Status,
		CreatedAt: s.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// Submit accepts a public contact form submission. Spam-flagged
// submissions are silently accepted and discarded.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(&req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	submission := &models.ContactSubmission{
		Name:    sanitize.Name(req.Name),
		Email:   sanitize.Email(req.Email),
		Subject: sanitize.Truncate(sanitize.Input(req.Subject), 200),
		Message: sanitize.Truncate(sanitize.Input(req.Message), 2000),
	}

	_, err := h.service.Submit(r.Context(), submission)
	if err != nil && !errors.Is(err, services.ErrSpam) {
		pkghttp.WriteInternalError(w, "Something went wrong")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Thank you for reaching out. We will get back to you soon.",
	})
}

// List returns stored submissions for back-office review, optionally
// filtered by status.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 50
	offset := 0

	if l := r.URL.Query().Get("limit"); l != "" {
		if err := parseIntParam(l, &limit, 1, 200); err != nil {
			pkghttp.WriteBadRequest(w, "Invalid limit parameter")
			return
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if err := parseIntParam(o, &offset, 0, 100000); err != nil {
			pkghttp.WriteBadRequest(w, "Invalid offset parameter")
			return
		}
	}

	status := r.URL.Query().Get("status")

	submissions, total, err := h.service.List(r.Context(), status, limit, offset)
	if err != nil {
		if errors.Is(err, models.ErrBadRequest) {
			pkghttp.WriteBadRequest(w, "Invalid status filter")
			return
		}
		pkghttp.WriteInternalError(w, "Something went wrong")
		return
	}

	response := make([]*ContactSubmissionResponse, len(submissions))
	for i, s := range submissions {
		response[i] = contactModelToResponse(s)
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"submissions": response,
		"total":       total,
	})
}

// UpdateStatus moves a submission through the new/read/resolved flow.
func (h *ContactHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !sanitize.ValidID(id) {
		pkghttp.WriteBadRequest(w, "Invalid submission ID")
		return
	}

	var req UpdateContactStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(&req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	if err := h.service.UpdateStatus(r.Context(), id, req.Status); err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			pkghttp.WriteNotFound(w, "Submission not found")
		case errors.Is(err, models.ErrBadRequest):
			pkghttp.WriteBadRequest(w, "Invalid status")
		default:
			pkghttp.WriteInternalError(w, "Something went wrong")
		}
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{"message": "Status updated"})
}
