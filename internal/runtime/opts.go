package runtime

import (
	"log/slog"
	"time"

	"github.com/isometry/token-monitor/internal/dashboard"
	"github.com/isometry/token-monitor/internal/models"
	"github.com/prometheus/client_golang/prometheus"
)

// Option defines a function type used to configure an instance of the Runtime struct.
type Option func(*Runtime)

// WithLogger sets a custom logger for the Runtime.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) {
		r.logger = logger
	}
}

// WithRenderer sets the renderer of the text dashboard.
func WithRenderer(renderer dashboard.Renderer) Option {
	return func(r *Runtime) {
		r.renderer = renderer
	}
}

// WithArchiver archives the snapshot taken for every lambda event.
func WithArchiver(archiver dashboard.Archiver) Option {
	return func(r *Runtime) {
		r.archiver = archiver
	}
}

// WithFilters sets the active tokens filters of every load.
func WithFilters(filters models.TokenFilters) Option {
	return func(r *Runtime) {
		r.filters = filters
	}
}

// WithCacheTTL keeps a loaded snapshot for ttl before the next HTTP request reloads it.
func WithCacheTTL(ttl time.Duration) Option {
	return func(r *Runtime) {
		r.ttl = ttl
	}
}

// WithGatherer exposes the metrics of gatherer on /metrics.
func WithGatherer(gatherer prometheus.Gatherer) Option {
	return func(r *Runtime) {
		r.gatherer = gatherer
	}
}

// WithClock replaces the clock driving the snapshot cache.
func WithClock(now func() time.Time) Option {
	return func(r *Runtime) {
		r.now = now
	}
}
