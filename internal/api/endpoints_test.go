package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/isometry/token-monitor/internal/api"
	"github.com/isometry/token-monitor/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Method string
	Path   string
	Query  string
	Body   string
}

type capture struct {
	mu  sync.Mutex
	req capturedRequest
}

func (c *capture) Last() capturedRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.req
}

func captureServer(t *testing.T, data string) (*api.Client, *capture) {
	t.Helper()
	captured := &capture{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		captured.mu.Lock()
		captured.req = capturedRequest{
			Method: r.Method,
			Path:   r.URL.EscapedPath(),
			Query:  r.URL.RawQuery,
			Body:   string(body),
		}
		captured.mu.Unlock()
		writeEnvelope(w, `{"success":true,"data":`+data+`,"error":null}`)
	}))
	t.Cleanup(srv.Close)

	client, _ := newTestClient(t, srv.URL+"/webhook", api.DefaultConfig(""))
	return client, captured
}

func TestRawEndpoints(t *testing.T) {
	testCases := []struct {
		Name     string
		Call     func(ctx context.Context, c *api.Client) (json.RawMessage, error)
		Method   string
		Path     string
		Query    string
		Body     string
		Response string
	}{
		{
			Name: "token_history",
			Call: func(ctx context.Context, c *api.Client) (json.RawMessage, error) {
				return c.TokenHistory(ctx, "So11111111111111111111111111111111111111112", models.HistoryFilters{Interval: "1h"})
			},
			Method:   http.MethodGet,
			Path:     "/webhook/api/tokens/So11111111111111111111111111111111111111112/history",
			Query:    "interval=1h",
			Response: `[{"price_usd":1.2}]`,
		},
		{
			Name: "token_history_escaped_address",
			Call: func(ctx context.Context, c *api.Client) (json.RawMessage, error) {
				return c.TokenHistory(ctx, "a/b", models.HistoryFilters{From: "2024-01-01", To: "2024-01-02"})
			},
			Method:   http.MethodGet,
			Path:     "/webhook/api/tokens/a%2Fb/history",
			Query:    "from=2024-01-01&to=2024-01-02",
			Response: `[]`,
		},
		{
			Name: "top_performers_default_period",
			Call: func(ctx context.Context, c *api.Client) (json.RawMessage, error) {
				return c.TopPerformers(ctx, "")
			},
			Method:   http.MethodGet,
			Path:     "/webhook/api/stats/top-performers",
			Query:    "period=24h",
			Response: `{"tokens":[]}`,
		},
		{
			Name: "top_performers",
			Call: func(ctx context.Context, c *api.Client) (json.RawMessage, error) {
				return c.TopPerformers(ctx, "1h")
			},
			Method:   http.MethodGet,
			Path:     "/webhook/api/stats/top-performers",
			Query:    "period=1h",
			Response: `{"tokens":[]}`,
		},
		{
			Name: "dmb",
			Call: func(ctx context.Context, c *api.Client) (json.RawMessage, error) {
				return c.DMB(ctx)
			},
			Method:   http.MethodGet,
			Path:     "/webhook/api/status/dmb",
			Response: `{"blocks":[]}`,
		},
		{
			Name: "health",
			Call: func(ctx context.Context, c *api.Client) (json.RawMessage, error) {
				return c.Health(ctx)
			},
			Method:   http.MethodGet,
			Path:     "/webhook/api/status/health",
			Response: `{"status":"ok"}`,
		},
		{
			Name: "get_settings_all",
			Call: func(ctx context.Context, c *api.Client) (json.RawMessage, error) {
				return c.GetSettings(ctx, "")
			},
			Method:   http.MethodGet,
			Path:     "/webhook/api/config/get",
			Response: `{"api":{}}`,
		},
		{
			Name: "get_settings_category",
			Call: func(ctx context.Context, c *api.Client) (json.RawMessage, error) {
				return c.GetSettings(ctx, "filters")
			},
			Method:   http.MethodGet,
			Path:     "/webhook/api/config/get",
			Query:    "category=filters",
			Response: `{"min_liquidity":1000}`,
		},
		{
			Name: "update_setting",
			Call: func(ctx context.Context, c *api.Client) (json.RawMessage, error) {
				return c.UpdateSetting(ctx, "filters", "min_liquidity", 5000)
			},
			Method:   http.MethodPost,
			Path:     "/webhook/api/config/update",
			Body:     `{"category":"filters","key":"min_liquidity","value":5000}`,
			Response: `{"updated":true}`,
		},
		{
			Name: "test_setting",
			Call: func(ctx context.Context, c *api.Client) (json.RawMessage, error) {
				return c.TestSetting(ctx, "telegram", "bot_token")
			},
			Method:   http.MethodPost,
			Path:     "/webhook/api/config/test",
			Body:     `{"category":"telegram","key":"bot_token"}`,
			Response: `{"valid":true}`,
		},
		{
			Name: "correlations",
			Call: func(ctx context.Context, c *api.Client) (json.RawMessage, error) {
				return c.Correlations(ctx, "price_change", []string{"liquidity", "volume"})
			},
			Method:   http.MethodPost,
			Path:     "/webhook/api/analytics/correlations",
			Body:     `{"target":"price_change","variables":["liquidity","volume"]}`,
			Response: `{"liquidity":0.42}`,
		},
		{
			Name: "backtest",
			Call: func(ctx context.Context, c *api.Client) (json.RawMessage, error) {
				return c.Backtest(ctx, "momentum", 30)
			},
			Method:   http.MethodPost,
			Path:     "/webhook/api/analytics/backtest",
			Body:     `{"strategy":"momentum","period_days":30}`,
			Response: `{"roi":12.5}`,
		},
		{
			Name: "signals",
			Call: func(ctx context.Context, c *api.Client) (json.RawMessage, error) {
				return c.Signals(ctx)
			},
			Method:   http.MethodGet,
			Path:     "/webhook/api/signals",
			Response: `[]`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			client, recorder := captureServer(t, tc.Response)
			data, err := tc.Call(context.Background(), client)
			require.NoError(t, err)
			captured := recorder.Last()
			assert.JSONEq(t, tc.Response, string(data))
			assert.Equal(t, tc.Method, captured.Method)
			assert.Equal(t, tc.Path, captured.Path)
			assert.Equal(t, tc.Query, captured.Query)
			if tc.Body == "" {
				assert.Empty(t, captured.Body)
			} else {
				assert.JSONEq(t, tc.Body, captured.Body)
			}
		})
	}
}

func TestActiveTokens(t *testing.T) {
	client, recorder := captureServer(t, `{
		"tokens": [
			{"token_address":"ABC1234567890XYZ","symbol":"PEPE","tier":1,"price_usd":"0.00001234","liquidity_usd":50000,"volume_24h_usd":null,"age_minutes":42,"buys_count":10,"sells_count":3}
		],
		"total": 1
	}`)

	tokens, err := client.ActiveTokens(context.Background(), models.TokenFilters{Sort: "age", Order: "desc", Limit: 100})
	require.NoError(t, err)
	captured := recorder.Last()
	assert.Equal(t, "/webhook/api/tokens/active", captured.Path)
	assert.Equal(t, "limit=100&order=desc&sort=age", captured.Query)

	require.Len(t, tokens.Tokens, 1)
	token := tokens.Tokens[0]
	assert.Equal(t, "PEPE", token.Symbol)
	assert.Equal(t, models.TierHigh, token.Tier)
	assert.InDelta(t, 0.00001234, token.PriceUSD.Value, 1e-12)
	assert.True(t, token.LiquidityUSD.Valid)
	assert.False(t, token.Volume24hUSD.Valid)
	assert.Equal(t, int64(1), tokens.Total)
}

func TestSystemStatsAndWorkflows(t *testing.T) {
	client, _ := captureServer(t, `{"active_tokens":10,"discovered_today":25,"died_today":3,"overall_health":97.5}`)
	stats, err := client.SystemStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(10), stats.ActiveTokens)
	assert.Equal(t, "Excellent", stats.HealthStatus())

	client, _ = captureServer(t, `{"workflows":[{"name":"discovery","status":"active","schedule":"*/5 * * * *"}]}`)
	status, err := client.Workflows(context.Background())
	require.NoError(t, err)
	require.Len(t, status.Workflows, 1)
	assert.Equal(t, "discovery", status.Workflows[0].Name)
}

func TestTokenFiltersQuery(t *testing.T) {
	testCases := []struct {
		Name     string
		Filters  models.TokenFilters
		Expected string
	}{
		{Name: "empty", Filters: models.TokenFilters{}, Expected: ""},
		{
			Name:     "all",
			Filters:  models.TokenFilters{Tier: 1, MinLiquidity: 1500.5, Limit: 50, Offset: 100, Sort: "liquidity", Order: "asc"},
			Expected: "limit=50&min_liquidity=1500.5&offset=100&order=asc&sort=liquidity&tier=1",
		},
		{Name: "tier_only", Filters: models.TokenFilters{Tier: 2}, Expected: "tier=2"},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Expected, api.TokenFiltersQuery(tc.Filters).Encode())
		})
	}
}
