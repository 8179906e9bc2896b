package middleware

import (
	"log/slog"
	"net/http"

	"github.com/soundreach/backoffice/internal/auth"
	"github.com/soundreach/backoffice/internal/config"
	pkghttp "github.com/soundreach/backoffice/pkg/http"
)

// CSRFProtection validates the anti-forgery token on state-changing
// requests. Read-only methods are exempt. When the configured mode is
// "disabled" (a session layer with its own double-submit protection is
// in front), the middleware is an explicit, logged no-op.
func CSRFProtection(mode string, logger *slog.Logger) func(http.Handler) http.Handler {
	if mode == config.CSRFModeDisabled {
		logger.Warn("CSRF protection disabled by configuration")
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isStateChangingMethod(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			if !auth.VerifyCSRF(r) {
				logger.Warn("CSRF token missing or invalid",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path))
				pkghttp.WriteForbidden(w, "Invalid or missing CSRF token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isStateChangingMethod(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch:
		return true
	default:
		return false
	}
}
