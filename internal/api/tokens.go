package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/isometry/token-monitor/internal/models"
)

// TokenFiltersQuery encodes the non-zero token filters as query parameters.
func TokenFiltersQuery(f models.TokenFilters) url.Values {
	q := url.Values{}
	if f.Tier > 0 {
		q.Set("tier", strconv.Itoa(f.Tier))
	}
	if f.MinLiquidity > 0 {
		q.Set("min_liquidity", strconv.FormatFloat(f.MinLiquidity, 'f', -1, 64))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		q.Set("offset", strconv.Itoa(f.Offset))
	}
	if f.Sort != "" {
		q.Set("sort", f.Sort)
	}
	if f.Order != "" {
		q.Set("order", f.Order)
	}
	return q
}

// ActiveTokens lists the tokens currently monitored.
func (c *Client) ActiveTokens(ctx context.Context, filters models.TokenFilters) (*models.ActiveTokens, error) {
	return requestAs[models.ActiveTokens](ctx, c, "/api/tokens/active", RequestOptions{
		Method: http.MethodGet,
		Query:  TokenFiltersQuery(filters),
	})
}

// TokenHistory returns the recorded metrics of a token.
func (c *Client) TokenHistory(ctx context.Context, address string, filters models.HistoryFilters) (json.RawMessage, error) {
	q := url.Values{}
	if filters.From != "" {
		q.Set("from", filters.From)
	}
	if filters.To != "" {
		q.Set("to", filters.To)
	}
	if filters.Interval != "" {
		q.Set("interval", filters.Interval)
	}
	return c.Request(ctx, "/api/tokens/"+url.PathEscape(address)+"/history", RequestOptions{
		Method: http.MethodGet,
		Query:  q,
		Route:  "/api/tokens/{address}/history",
	})
}
