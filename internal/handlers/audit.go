package handlers

import (
	"context"
	"net/http"

	"github.com/soundreach/backoffice/internal/models"
	pkghttp "github.com/soundreach/backoffice/pkg/http"
)

type AuditReader interface {
	ListRecent(ctx context.Context, limit int) ([]*models.AuditLog, error)
}

// AuditHandler exposes the audit trail to administrators
type AuditHandler struct {
	service AuditReader
}

func NewAuditHandler(service AuditReader) *AuditHandler {
	return &AuditHandler{service: service}
}

// AuditLogResponse represents an audit log entry in HTTP response
type AuditLogResponse struct {
	ID         string  `json:"id"`
	Action     string  `json:"action"`
	ActorID    *string `json:"actor_id,omitempty"`
	ActorName  string  `json:"actor_name,omitempty"`
	ActorEmail string  `json:"actor_email,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

type ListAuditLogsResponse struct {
	Logs  []*AuditLogResponse `json:"logs"`
	Total int                 `json:"total"`
}

// ListRecent returns the most recent audit entries, newest first.
func (h *AuditHandler) ListRecent(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if err := parseIntParam(l, &limit, 1, 200); err != nil {
			pkghttp.WriteBadRequest(w, "Invalid limit parameter")
			return
		}
	}

	logs, err := h.service.ListRecent(r.Context(), limit)
	if err != nil {
		pkghttp.WriteInternalError(w, "Something went wrong")
		return
	}

	response := &ListAuditLogsResponse{
		Logs:  make([]*AuditLogResponse, len(logs)),
		Total: len(logs),
	}
	for i, log := range logs {
		response.Logs[i] = auditLogToResponse(log)
	}

	pkghttp.WriteJSON(w, http.StatusOK, response)
}

func auditLogToResponse(log *models.AuditLog) *AuditLogResponse {
	return &AuditLogResponse{
		ID:         log.ID,
		Action:     string(log.Action),
		ActorID:    log.ActorID,
		ActorName:  log.ActorName,
		ActorEmail: log.ActorEmail,
		CreatedAt:  log.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
