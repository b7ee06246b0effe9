package dashboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/isometry/token-monitor/internal/helpers"
)

// Refresher runs a function immediately and then on every tick of an interval.
type Refresher struct {
	Logger *slog.Logger
}

// Run calls fn until ctx is done. Errors returned by fn are logged and do not stop the loop.
// A non-positive interval runs fn once.
func (r Refresher) Run(ctx context.Context, interval time.Duration, fn func(context.Context) error) {
	logger := r.Logger
	if logger == nil {
		logger = helpers.NewNoopLogger()
	}

	r.call(ctx, logger, fn)
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Debug("auto-refresh stopped", slog.Any("reason", context.Cause(ctx)))
			return
		case <-ticker.C:
			logger.Debug("auto-refreshing dashboard...")
			r.call(ctx, logger, fn)
		}
	}
}

func (r Refresher) call(ctx context.Context, logger *slog.Logger, fn func(context.Context) error) {
	if err := fn(ctx); err != nil {
		helpers.OnceAMinute.Do(func() {
			logger.Warn("dashboard refresh failed", slog.Any("error", err))
		})
	}
}
