package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/isometry/token-monitor/internal/metrics"
	"github.com/isometry/token-monitor/internal/models"
	"github.com/pkg/errors"
)

// RequestIDHeader carries a unique identifier for every attempt.
const RequestIDHeader = "X-Request-Id"

// maxResponseSize caps the response body read from a single attempt.
const maxResponseSize = 16 << 20

// RequestOptions describes the HTTP call issued for an endpoint.
type RequestOptions struct {
	// Method defaults to GET.
	Method string
	// Headers are merged on top of the default JSON content type.
	Headers map[string]string
	// Query is appended to the endpoint.
	Query url.Values
	// Body is JSON encoded when not nil.
	Body any
	// Route labels metrics for endpoints embedding identifiers. It defaults to the endpoint path.
	Route string
}

func (o RequestOptions) method() string {
	if o.Method == "" {
		return http.MethodGet
	}
	return strings.ToUpper(o.Method)
}

func (o RequestOptions) route(endpoint string) string {
	if o.Route != "" {
		return o.Route
	}
	if i := strings.IndexByte(endpoint, '?'); i >= 0 {
		return endpoint[:i]
	}
	return endpoint
}

func (o RequestOptions) body() ([]byte, error) {
	if o.Body == nil {
		return nil, nil
	}
	if raw, ok := o.Body.(json.RawMessage); ok {
		return raw, nil
	}
	return json.Marshal(o.Body)
}

func (c *Client) target(endpoint string, query url.Values) string {
	target := c.config.BaseURL + endpoint
	if len(query) == 0 {
		return target
	}
	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	return target + sep + query.Encode()
}

// Request calls endpoint with up to Config.RetryAttempts attempts and returns the data field of the envelope.
// Between attempt k and k+1 it waits Config.RetryDelay*k. When every attempt fails, a *RequestError wrapping
// the last failure is returned. Cancelling ctx stops the retries.
func (c *Client) Request(ctx context.Context, endpoint string, opts RequestOptions) (json.RawMessage, error) {
	method := opts.method()
	route := opts.route(endpoint)
	target := c.target(endpoint, opts.Query)
	body, err := opts.body()
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode request body")
	}

	logger := c.logger.With(slog.String("method", method), slog.String("endpoint", endpoint))
	maxAttempts := c.config.attempts()

	var (
		lastErr error
		made    int
	)
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			c.metrics.RecordRetry(method, route, attempt)
		}
		made = attempt
		logger.Debug("API request", slog.Int("attempt", attempt), slog.String("url", target))

		data, err := c.attempt(ctx, method, target, route, body, opts.Headers)
		if err == nil {
			logger.Debug("API response", slog.Int("attempt", attempt), slog.Int("bytes", len(data)))
			c.metrics.RecordRequest(method, route, metrics.OutcomeSuccess)
			return data, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		if attempt == maxAttempts {
			break
		}

		delay := c.config.Delay(attempt)
		logger.Debug("request failed, retrying...",
			slog.Int("attempt", attempt), slog.String("delay", delay.String()), slog.Any("error", err))
		if err = c.sleep(ctx, delay); err != nil {
			lastErr = err
			break
		}
	}

	c.metrics.RecordRequest(method, route, metrics.OutcomeFailure)
	logger.Warn("API request failed", slog.Int("attempts", made), slog.Any("error", lastErr))
	return nil, &RequestError{Endpoint: endpoint, Attempts: made, Cause: lastErr}
}

func (c *Client) attempt(ctx context.Context, method, target, route string, body []byte, headers map[string]string) (json.RawMessage, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, errors.Wrap(err, "rate limiter")
		}
	}

	attemptCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(attemptCtx, method, target, reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	req.Header.Set(RequestIDHeader, uuid.NewString())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.RecordAttempt(method, route, 0, time.Since(start))
		return nil, c.transportError(ctx, attemptCtx, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	c.metrics.RecordAttempt(method, route, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, c.transportError(ctx, attemptCtx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	var envelope models.Envelope
	if err = json.Unmarshal(payload, &envelope); err != nil {
		return nil, errors.Wrap(err, "failed to decode response envelope")
	}
	if !envelope.Success {
		return nil, &EnvelopeError{Message: envelope.ErrorMessage()}
	}
	return envelope.Data, nil
}

// transportError distinguishes the per-attempt timeout from other transport failures, including caller cancellation.
func (c *Client) transportError(ctx, attemptCtx context.Context, err error) error {
	if ctx.Err() == nil && errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w after %s", ErrTimeout, c.config.Timeout)
	}
	return errors.Wrap(err, "request failed")
}
