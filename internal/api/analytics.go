package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/isometry/token-monitor/internal/models"
)

// Correlations computes the correlation of variables against target.
func (c *Client) Correlations(ctx context.Context, target string, variables []string) (json.RawMessage, error) {
	return c.Request(ctx, "/api/analytics/correlations", RequestOptions{
		Method: http.MethodPost,
		Body:   models.CorrelationRequest{Target: target, Variables: variables},
	})
}

// Backtest runs strategy over the last periodDays days.
func (c *Client) Backtest(ctx context.Context, strategy string, periodDays int) (json.RawMessage, error) {
	return c.Request(ctx, "/api/analytics/backtest", RequestOptions{
		Method: http.MethodPost,
		Body:   models.BacktestRequest{Strategy: strategy, PeriodDays: periodDays},
	})
}

// Signals returns the live trading signals.
func (c *Client) Signals(ctx context.Context) (json.RawMessage, error) {
	return c.Request(ctx, "/api/signals", RequestOptions{})
}
