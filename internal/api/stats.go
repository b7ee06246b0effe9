package api

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/isometry/token-monitor/internal/models"
)

// DefaultPerformersPeriod is used when TopPerformers is called without a period.
const DefaultPerformersPeriod = "24h"

// SystemStats returns the aggregated token counters and the overall health.
func (c *Client) SystemStats(ctx context.Context) (*models.SystemStats, error) {
	return requestAs[models.SystemStats](ctx, c, "/api/stats/system", RequestOptions{})
}

// TopPerformers returns the best performing tokens over period, e.g. 1h or 24h.
func (c *Client) TopPerformers(ctx context.Context, period string) (json.RawMessage, error) {
	if period == "" {
		period = DefaultPerformersPeriod
	}
	return c.Request(ctx, "/api/stats/top-performers", RequestOptions{
		Query: url.Values{"period": {period}},
	})
}
