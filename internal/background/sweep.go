package background

import (
	"context"
	"log/slog"
	"time"

	"github.com/soundreach/backoffice/internal/ratelimit"
)

// SweepManager periodically evicts expired rate-limit windows so the
// in-memory store does not grow without bound.
type SweepManager struct {
	limiter  *ratelimit.Limiter
	logger   *slog.Logger
	interval time.Duration
	stopCh   chan struct{}
}

// NewSweepManager creates a new sweep manager
func NewSweepManager(limiter *ratelimit.Limiter, logger *slog.Logger, interval time.Duration) *SweepManager {
	return &SweepManager{
		limiter:  limiter,
		logger:   logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic sweep task
func (sm *SweepManager) Start(ctx context.Context) {
	ticker := time.NewTicker(sm.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sm.limiter.Sweep()
			sm.logger.Debug("rate limit sweep completed")
		case <-sm.stopCh:
			sm.logger.Info("sweep manager stopped")
			return
		case <-ctx.Done():
			sm.logger.Info("sweep manager context cancelled")
			return
		}
	}
}

// Stop signals the sweep manager to stop
func (sm *SweepManager) Stop() {
	close(sm.stopCh)
}
