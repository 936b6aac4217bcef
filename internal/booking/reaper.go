package booking

import (
	"context"
	"log/slog"
	"time"

	"github.com/yigitentrk/show-booking-system/internal/domain"
)

const (
	DefaultLockTimeout    = 10 * time.Minute
	DefaultReaperInterval = 2 * time.Minute
)

// Reaper periodically releases seat locks whose TTL has elapsed. It is the
// only actor allowed to force a seat back to AVAILABLE without matching the
// lock owner, and only once the timeout has passed. Failures are logged and
// retried on the next tick; there is no caller to report them to.
type Reaper struct {
	store       domain.SeatStore
	logger      *slog.Logger
	lockTimeout time.Duration
	interval    time.Duration
	now         func() time.Time
}

func NewReaper(store domain.SeatStore, logger *slog.Logger, lockTimeout, interval time.Duration) *Reaper {
	if lockTimeout <= 0 {
		lockTimeout = DefaultLockTimeout
	}
	if interval <= 0 {
		interval = DefaultReaperInterval
	}

	return &Reaper{
		store:       store,
		logger:      logger,
		lockTimeout: lockTimeout,
		interval:    interval,
		now:         time.Now,
	}
}

// Run sweeps on a fixed period until ctx is cancelled.
func (r *Reaper) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("lock expiry reaper started", "interval", r.interval, "lock_timeout", r.lockTimeout)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("lock expiry reaper stopped")
			return
		case <-ticker.C:
			r.Sweep(ctx)
		}
	}
}

// Sweep performs a single pass. The bulk conditional update takes the same
// row locks as interactive transitions, so a confirm in flight cannot race
// with the sweep.
func (r *Reaper) Sweep(ctx context.Context) {
	threshold := r.now().Add(-r.lockTimeout)

	released, err := r.store.ReleaseExpiredLocks(ctx, threshold)
	if err != nil {
		r.logger.Error("failed to release expired locks", "error", err)
		return
	}

	if released > 0 {
		r.logger.Info("released expired seat locks", "count", released)
	}
}
