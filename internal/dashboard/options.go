package dashboard

import (
	"log/slog"
	"time"

	"github.com/isometry/token-monitor/internal/metrics"
)

// WithLogger sets a custom logger for the Loader.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithMetrics records every load on collector.
func WithMetrics(collector *metrics.Collector) Option {
	return func(l *Loader) {
		l.metrics = collector
	}
}

// WithArchiver uploads every successfully loaded snapshot through archiver.
func WithArchiver(archiver Archiver) Option {
	return func(l *Loader) {
		l.archiver = archiver
	}
}

// WithClock replaces the function stamping snapshots.
func WithClock(now func() time.Time) Option {
	return func(l *Loader) {
		l.now = now
	}
}
