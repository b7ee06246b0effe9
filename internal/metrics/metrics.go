// Package metrics provides Prometheus instrumentation for the API client and the dashboard loader.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for a finished request.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Collector records request, retry and refresh metrics. A nil *Collector is valid and records nothing.
type Collector struct {
	attemptsTotal   *prometheus.CounterVec
	attemptDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
	retriesTotal    *prometheus.CounterVec
	refreshesTotal  *prometheus.CounterVec
	lastRefresh     prometheus.Gauge
}

// NewCollector registers the collector metrics on the supplied registerer.
func NewCollector(registry prometheus.Registerer) *Collector {
	factory := promauto.With(registry)
	return &Collector{
		attemptsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "token_monitor_api_attempts_total",
				Help: "Total number of HTTP attempts against the API, by status code",
			},
			[]string{"method", "route", "status_code"},
		),
		attemptDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "token_monitor_api_attempt_duration_seconds",
				Help:    "Duration of single HTTP attempts in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "token_monitor_api_requests_total",
				Help: "Total number of API requests after retries, by outcome",
			},
			[]string{"method", "route", "outcome"},
		),
		retriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "token_monitor_api_retries_total",
				Help: "Total number of retries, by attempt number",
			},
			[]string{"method", "route", "attempt"},
		),
		refreshesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "token_monitor_dashboard_refreshes_total",
				Help: "Total number of dashboard refreshes, by outcome",
			},
			[]string{"outcome"},
		),
		lastRefresh: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "token_monitor_dashboard_last_refresh_timestamp_seconds",
				Help: "Unix time of the last successful dashboard refresh",
			},
		),
	}
}

// RecordAttempt records one HTTP attempt. statusCode is 0 when no response was received.
func (c *Collector) RecordAttempt(method, route string, statusCode int, duration time.Duration) {
	if c == nil {
		return
	}
	c.attemptsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	c.attemptDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordRetry records that attempt number attempt is about to start.
func (c *Collector) RecordRetry(method, route string, attempt int) {
	if c == nil {
		return
	}
	c.retriesTotal.WithLabelValues(method, route, strconv.Itoa(attempt)).Inc()
}

// RecordRequest records the final outcome of a request.
func (c *Collector) RecordRequest(method, route, outcome string) {
	if c == nil {
		return
	}
	c.requestsTotal.WithLabelValues(method, route, outcome).Inc()
}

// RecordRefresh records a dashboard refresh.
func (c *Collector) RecordRefresh(outcome string, at time.Time) {
	if c == nil {
		return
	}
	c.refreshesTotal.WithLabelValues(outcome).Inc()
	if outcome == OutcomeSuccess {
		c.lastRefresh.Set(float64(at.Unix()))
	}
}
