// Package runtime exposes the dashboard through the service and lambda run modes.
package runtime

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-chi/chi/v5"
	"github.com/isometry/token-monitor/internal/dashboard"
	"github.com/isometry/token-monitor/internal/helpers"
	"github.com/isometry/token-monitor/internal/models"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SnapshotLoader loads a dashboard snapshot. *dashboard.Loader implements it.
type SnapshotLoader interface {
	Load(ctx context.Context, filters models.TokenFilters) (*dashboard.Snapshot, error)
}

// Runtime serves dashboard snapshots over HTTP and handles scheduled lambda events.
type Runtime struct {
	loader   SnapshotLoader
	renderer dashboard.Renderer
	archiver dashboard.Archiver
	filters  models.TokenFilters
	ttl      time.Duration
	gatherer prometheus.Gatherer
	logger   *slog.Logger
	now      func() time.Time
	router   chi.Router

	mu       sync.Mutex
	cached   *dashboard.Snapshot
	cachedAt time.Time
}

// EventResult summarises the snapshot taken for a scheduled event.
type EventResult struct {
	EventID      string    `json:"eventId,omitempty"`
	TakenAt      time.Time `json:"takenAt"`
	ActiveTokens int64     `json:"activeTokens"`
	Tokens       int       `json:"tokens"`
	Degraded     bool      `json:"degraded"`
	ArchiveKey   string    `json:"archiveKey,omitempty"`
}

// NewRuntime creates a new runtime instance
func NewRuntime(loader SnapshotLoader, opts ...Option) *Runtime {
	_inst := &Runtime{loader: loader}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	if _inst.now == nil {
		_inst.now = time.Now
	}
	_inst.routes()
	return _inst
}

func (r *Runtime) routes() {
	router := chi.NewRouter()
	router.Get("/", r.handleDashboard)
	router.Get("/snapshot", r.handleSnapshot)
	router.Get("/healthz", r.handleHealthz)
	if r.gatherer != nil {
		router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{}))
	}
	router.MethodNotAllowed(func(resp http.ResponseWriter, req *http.Request) {
		r.logger.Debug("rejecting HTTP request...", slog.Any("requestor", req.RemoteAddr), "reason", "method not allowed", slog.Any("method", req.Method))
		helpers.RespondHTTP(models.Response{StatusCode: http.StatusMethodNotAllowed}, nil, resp)
	})
	router.NotFound(func(resp http.ResponseWriter, _ *http.Request) {
		helpers.RespondHTTP(models.Response{StatusCode: http.StatusNotFound}, nil, resp)
	})
	r.router = router
}

// ServeHTTP is the HTTP handler for the runtime
func (r *Runtime) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(resp, req)
}

// Snapshot returns the cached snapshot while it is younger than the cache TTL, loading a new one otherwise.
func (r *Runtime) Snapshot(ctx context.Context) (*dashboard.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cached != nil && r.now().Sub(r.cachedAt) < r.ttl {
		return r.cached, nil
	}
	snapshot, err := r.loader.Load(ctx, r.filters)
	if err != nil {
		return nil, err
	}
	r.cached, r.cachedAt = snapshot, r.now()
	return snapshot, nil
}

func (r *Runtime) handleDashboard(resp http.ResponseWriter, req *http.Request) {
	snapshot, ok := r.snapshotOrFail(resp, req)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := r.renderer.Render(&buf, snapshot); err != nil {
		r.logger.Error("failed to render dashboard", slog.Any("error", err))
		helpers.RespondHTTP(models.Response{StatusCode: http.StatusInternalServerError}, err, resp)
		return
	}
	helpers.RespondText(resp, http.StatusOK, buf.String())
}

func (r *Runtime) handleSnapshot(resp http.ResponseWriter, req *http.Request) {
	snapshot, ok := r.snapshotOrFail(resp, req)
	if !ok {
		return
	}
	helpers.RespondJSON(resp, http.StatusOK, snapshot)
}

func (r *Runtime) handleHealthz(resp http.ResponseWriter, _ *http.Request) {
	helpers.RespondHTTP(models.Response{Body: "ok"}, nil, resp)
}

func (r *Runtime) snapshotOrFail(resp http.ResponseWriter, req *http.Request) (*dashboard.Snapshot, bool) {
	r.logger.Debug("received HTTP request...", slog.Any("requestor", req.RemoteAddr), slog.Any("method", req.Method), slog.Any("path", req.URL.Path))
	snapshot, err := r.Snapshot(req.Context())
	if err != nil {
		r.logger.Error("failed to load dashboard", slog.Any("error", err))
		helpers.RespondHTTP(models.Response{StatusCode: http.StatusBadGateway}, err, resp)
		return nil, false
	}
	return snapshot, true
}

// HandleEvent is the Lambda handler for the runtime. It takes a fresh snapshot and archives it when an archiver is set.
func (r *Runtime) HandleEvent(ctx context.Context, event events.CloudWatchEvent) (*EventResult, error) {
	logger := r.logger.With(slog.String("eventId", event.ID), slog.String("detailType", event.DetailType))
	logger.Info("received scheduled event")

	snapshot, err := r.loader.Load(ctx, r.filters)
	if err != nil {
		return nil, errors.Wrap(err, "failed to take snapshot")
	}
	result := &EventResult{
		EventID:      event.ID,
		TakenAt:      snapshot.TakenAt,
		ActiveTokens: snapshot.Stats.ActiveTokens,
		Tokens:       len(snapshot.Tokens),
		Degraded:     snapshot.Degraded(),
	}
	if r.archiver != nil {
		key, err := r.archiver.Archive(ctx, snapshot)
		if err != nil {
			return nil, err
		}
		result.ArchiveKey = key
	}
	logger.Info("handled event", slog.Any("result", result))
	return result, nil
}
