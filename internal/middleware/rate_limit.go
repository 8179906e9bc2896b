package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/httprate"
	"github.com/soundreach/backoffice/internal/ratelimit"
	pkghttp "github.com/soundreach/backoffice/pkg/http"
)

// RateLimitByIP applies a transport-level per-IP limit on a route group.
func RateLimitByIP(requests int, window time.Duration) func(next http.Handler) http.Handler {
	return httprate.Limit(
		requests,
		window,
		httprate.WithKeyByRealIP(),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			pkghttp.WriteError(w, http.StatusTooManyRequests, "Too many requests")
		}),
	)
}

// RateLimit applies a fixed-window limit from the shared limiter, keyed
// by client IP. Denials carry retry-after and the standard limit headers.
func RateLimit(limiter *ratelimit.Limiter, limit ratelimit.Limit, ipConfig *pkghttp.IPConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := pkghttp.ClientIP(r, ipConfig)
			result := limiter.Check(key, limit)

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

			if !result.Allowed {
				retryAfter := int(result.RetryAfter.Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}
				pkghttp.WriteTooManyRequests(w, "Too many requests", retryAfter)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
