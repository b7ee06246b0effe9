package api

import (
	"context"
	"encoding/json"

	"github.com/isometry/token-monitor/internal/models"
)

// Workflows returns the status of the backend workflows.
func (c *Client) Workflows(ctx context.Context) (*models.WorkflowsStatus, error) {
	return requestAs[models.WorkflowsStatus](ctx, c, "/api/status/workflows", RequestOptions{})
}

// DMB returns the status of the DMB blocks.
func (c *Client) DMB(ctx context.Context) (json.RawMessage, error) {
	return c.Request(ctx, "/api/status/dmb", RequestOptions{})
}

// Health returns the overall health report.
func (c *Client) Health(ctx context.Context) (json.RawMessage, error) {
	return c.Request(ctx, "/api/status/health", RequestOptions{})
}
