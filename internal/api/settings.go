package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/isometry/token-monitor/internal/models"
)

// GetSettings returns the backend configuration, optionally restricted to category.
func (c *Client) GetSettings(ctx context.Context, category string) (json.RawMessage, error) {
	var q url.Values
	if category != "" {
		q = url.Values{"category": {category}}
	}
	return c.Request(ctx, "/api/config/get", RequestOptions{Query: q})
}

// UpdateSetting sets key in category to value.
func (c *Client) UpdateSetting(ctx context.Context, category, key string, value any) (json.RawMessage, error) {
	return c.Request(ctx, "/api/config/update", RequestOptions{
		Method: http.MethodPost,
		Body:   models.SettingUpdate{Category: category, Key: key, Value: value},
	})
}

// TestSetting asks the backend to validate the setting key in category.
func (c *Client) TestSetting(ctx context.Context, category, key string) (json.RawMessage, error) {
	return c.Request(ctx, "/api/config/test", RequestOptions{
		Method: http.MethodPost,
		Body:   models.SettingTest{Category: category, Key: key},
	})
}
