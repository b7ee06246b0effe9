package dashboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/isometry/token-monitor/internal/helpers"
	"github.com/isometry/token-monitor/internal/metrics"
	"github.com/isometry/token-monitor/internal/models"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Default filters applied to the active tokens section.
const (
	DefaultSort  = "age"
	DefaultOrder = "desc"
	DefaultLimit = 100
)

// Source is the part of the API the dashboard reads from. *api.Client implements it.
type Source interface {
	SystemStats(ctx context.Context) (*models.SystemStats, error)
	Workflows(ctx context.Context) (*models.WorkflowsStatus, error)
	ActiveTokens(ctx context.Context, filters models.TokenFilters) (*models.ActiveTokens, error)
}

// Loader assembles a Snapshot from three independent API calls.
type Loader struct {
	source   Source
	logger   *slog.Logger
	metrics  *metrics.Collector
	archiver Archiver
	now      func() time.Time
}

// Option defines a function type used to configure an instance of the Loader struct.
type Option func(*Loader)

// NewLoader initializes a Loader reading from source.
func NewLoader(source Source, opts ...Option) *Loader {
	_inst := &Loader{source: source}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	if _inst.now == nil {
		_inst.now = time.Now
	}
	return _inst
}

// DefaultFilters returns the filters of the active tokens section: newest first, at most 100 tokens.
func DefaultFilters() models.TokenFilters {
	return models.TokenFilters{Sort: DefaultSort, Order: DefaultOrder, Limit: DefaultLimit}
}

func withDefaults(f models.TokenFilters) models.TokenFilters {
	if f.Sort == "" {
		f.Sort = DefaultSort
	}
	if f.Order == "" {
		f.Order = DefaultOrder
	}
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	return f
}

// Load fetches the system stats, the workflows status and the active tokens in parallel and waits for all three.
// Only a stats failure fails the load: the other sections keep their error message in the snapshot.
func (l *Loader) Load(ctx context.Context, filters models.TokenFilters) (*Snapshot, error) {
	filters = withDefaults(filters)
	l.logger.Debug("loading dashboard...", slog.Any("filters", filters))

	snapshot := &Snapshot{Workflows: []models.Workflow{}, Tokens: []models.Token{}}
	var g errgroup.Group
	g.Go(func() error {
		stats, err := l.source.SystemStats(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to load system stats")
		}
		snapshot.Stats = *stats
		return nil
	})
	g.Go(func() error {
		status, err := l.source.Workflows(ctx)
		if err != nil {
			l.logger.Debug("failed to load workflows", slog.Any("error", err))
			snapshot.WorkflowsError = WorkflowsFailure
			return nil
		}
		if status.Workflows != nil {
			snapshot.Workflows = status.Workflows
		}
		return nil
	})
	g.Go(func() error {
		tokens, err := l.source.ActiveTokens(ctx, filters)
		if err != nil {
			l.logger.Debug("failed to load tokens", slog.Any("error", err))
			snapshot.TokensError = TokensFailurePrefix + err.Error()
			return nil
		}
		if tokens.Tokens != nil {
			snapshot.Tokens = tokens.Tokens
		}
		snapshot.TotalTokens = tokens.Total
		return nil
	})

	err := g.Wait()
	now := l.now()
	if err != nil {
		l.metrics.RecordRefresh(metrics.OutcomeFailure, now)
		return nil, errors.Wrap(err, "failed to load dashboard")
	}
	snapshot.TakenAt = now
	l.metrics.RecordRefresh(metrics.OutcomeSuccess, now)
	l.logger.Info("dashboard loaded",
		slog.Int64("activeTokens", snapshot.Stats.ActiveTokens),
		slog.Int("workflows", len(snapshot.Workflows)),
		slog.Int("tokens", len(snapshot.Tokens)),
		slog.Bool("degraded", snapshot.Degraded()))

	if l.archiver != nil {
		if key, err := l.archiver.Archive(ctx, snapshot); err != nil {
			l.logger.Warn("failed to archive snapshot", slog.Any("error", err))
		} else {
			l.logger.Debug("snapshot archived", slog.String("key", key))
		}
	}
	return snapshot, nil
}
