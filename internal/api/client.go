// Package api provides a retrying client for the token monitoring webhook API.
//
// Every endpoint answers with a {success, data, error} envelope. The client unwraps it,
// returning only data to the caller, and collapses transport errors, timeouts, non-2xx
// statuses and application errors into a single retry path with linear backoff.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/isometry/token-monitor/internal/helpers"
	"github.com/isometry/token-monitor/internal/metrics"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout bounds a single attempt.
	DefaultTimeout = 30 * time.Second
	// DefaultRetryAttempts is the total number of attempts, including the first one.
	DefaultRetryAttempts = 3
	// DefaultRetryDelay is the base of the linear backoff between attempts.
	DefaultRetryDelay = time.Second
)

// Config is the immutable client configuration. It is copied into the Client at construction.
type Config struct {
	// BaseURL is prefixed to every endpoint, e.g. https://neuralstar.ru/webhook.
	BaseURL string
	// Timeout bounds every single attempt. The in-flight call is cancelled when it expires.
	Timeout time.Duration
	// RetryAttempts is the maximum number of attempts per request. Values below 1 mean 1.
	RetryAttempts int
	// RetryDelay is multiplied by the attempt number to obtain the wait before the next attempt.
	RetryDelay time.Duration
}

// DefaultConfig returns a Config pointing at baseURL with the default timeout and retry policy.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:       baseURL,
		Timeout:       DefaultTimeout,
		RetryAttempts: DefaultRetryAttempts,
		RetryDelay:    DefaultRetryDelay,
	}
}

func (c Config) attempts() int {
	if c.RetryAttempts < 1 {
		return 1
	}
	return c.RetryAttempts
}

// Delay returns the wait between attempt and attempt+1.
func (c Config) Delay(attempt int) time.Duration {
	return c.RetryDelay * time.Duration(attempt)
}

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Client issues requests against the API. It holds no per-request state and is safe for concurrent use.
type Client struct {
	config     Config
	logger     *slog.Logger
	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    *metrics.Collector
	sleep      Sleeper
}

// Option defines a function type used to configure an instance of the Client struct.
type Option func(*Client)

// NewClient initializes a Client for cfg with the given options.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	cfg.BaseURL = strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		return nil, errors.New("missing API base URL")
	}
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, errors.Wrapf(err, "invalid API base URL %q", cfg.BaseURL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RetryDelay < 0 {
		cfg.RetryDelay = 0
	}

	_inst := &Client{config: cfg}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	if _inst.httpClient == nil {
		_inst.httpClient = &http.Client{}
	}
	if _inst.sleep == nil {
		_inst.sleep = sleep
	}
	return _inst, nil
}

// Config returns a copy of the client configuration.
func (c *Client) Config() Config {
	return c.config
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
