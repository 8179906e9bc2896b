package middleware

import (
	"context"
	"net/http"

	"github.com/soundreach/backoffice/internal/auth"
	"github.com/soundreach/backoffice/internal/models"
)

// AuditRecorder records security-relevant actions best-effort.
type AuditRecorder interface {
	Record(ctx context.Context, action models.AuditAction, actorID *string)
}

// AdminAudit records an ADMIN_ACCESS entry for every request passing
// through an admin-gated route.
func AdminAudit(recorder AuditRecorder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var actorID *string
			if claims := auth.SessionFromContext(r); claims != nil {
				actorID = &claims.UserID
			}
			recorder.Record(r.Context(), models.AuditAdminAccess, actorID)

			next.ServeHTTP(w, r)
		})
	}
}
