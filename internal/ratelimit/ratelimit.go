// Package ratelimit implements fixed-window request counting keyed by an
// identifier string (client IP or normalized email). Fixed windows admit
// bursts of up to twice the limit at window boundaries; that is an
// accepted approximation for abuse deterrence, not quota enforcement.
package ratelimit

import (
	"time"
)

// Limit is a maximum request count per window.
type Limit struct {
	Max    int
	Window time.Duration
}

// Result reports the outcome of a limiter check. RetryAfter is only
// meaningful when Allowed is false.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration
}

// Limiter enforces Limits against an injected Store. The clock is
// injectable so tests can drive window expiry deterministically.
type Limiter struct {
	store Store
	now   func() time.Time
}

func NewLimiter(store Store) *Limiter {
	return &Limiter{
		store: store,
		now:   time.Now,
	}
}

// NewLimiterWithClock is for tests.
func NewLimiterWithClock(store Store, now func() time.Time) *Limiter {
	return &Limiter{store: store, now: now}
}

// Check records one request for key and reports whether it is within the
// limit. Two concurrent checks for the same key may both observe the
// pre-increment count; limited over-admission at the boundary is accepted.
func (l *Limiter) Check(key string, limit Limit) Result {
	now := l.now()
	count, resetAt := l.store.Increment(key, limit.Window, now)

	remaining := limit.Max - count
	if remaining < 0 {
		remaining = 0
	}

	result := Result{
		Allowed:   count <= limit.Max,
		Limit:     limit.Max,
		Remaining: remaining,
		ResetAt:   resetAt,
	}

	if !result.Allowed {
		result.RetryAfter = resetAt.Sub(now)
		if result.RetryAfter < 0 {
			result.RetryAfter = 0
		}
	}

	return result
}

// Sweep removes expired entries. Run periodically from a background
// task; never called on the request path.
func (l *Limiter) Sweep() {
	l.store.Sweep(l.now())
}

// Presets holds the per-use-case limits for this system.
type Presets struct {
	Auth    Limit // login attempts, keyed by normalized email
	AuthIP  Limit // login backstop, keyed by client IP
	Contact Limit // contact-form submissions, keyed by client IP
	Write   Limit // generic API writes, keyed by client IP
	Read    Limit // generic API reads, keyed by client IP
	Webhook Limit // payment webhooks, keyed by client IP
}

// DefaultPresets mirrors the deployed limits.
func DefaultPresets() Presets {
	return Presets{
		Auth:    Limit{Max: 5, Window: 15 * time.Minute},
		AuthIP:  Limit{Max: 20, Window: 15 * time.Minute},
		Contact: Limit{Max: 3, Window: 15 * time.Minute},
		Write:   Limit{Max: 20, Window: time.Minute},
		Read:    Limit{Max: 100, Window: time.Minute},
		Webhook: Limit{Max: 1000, Window: time.Minute},
	}
}
