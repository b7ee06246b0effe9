package api

import (
	"log/slog"
	"net/http"

	"github.com/isometry/token-monitor/internal/metrics"
	"golang.org/x/time/rate"
)

// WithLogger sets a custom logger for the Client.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets the HTTP client used for every attempt, e.g. one carrying credentials.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithRateLimiter paces attempts through limiter. Waiting for the limiter does not count towards the attempt timeout.
func WithRateLimiter(limiter *rate.Limiter) Option {
	return func(c *Client) {
		c.limiter = limiter
	}
}

// WithMetrics records attempts, retries and outcomes on collector.
func WithMetrics(collector *metrics.Collector) Option {
	return func(c *Client) {
		c.metrics = collector
	}
}

// WithSleeper replaces the function waiting between attempts.
func WithSleeper(sleeper Sleeper) Option {
	return func(c *Client) {
		c.sleep = sleeper
	}
}
