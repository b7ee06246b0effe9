package models_test

import (
	"encoding/json"
	"testing"

	"github.com/isometry/token-monitor/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberUnmarshalJSON(t *testing.T) {
	testCases := []struct {
		Name     string
		Input    string
		Expected models.Number
		Error    bool
	}{
		{
			Name:     "json_number",
			Input:    `0.00045`,
			Expected: models.NewNumber(0.00045),
		},
		{
			Name:     "numeric_string",
			Input:    `"12345.67"`,
			Expected: models.NewNumber(12345.67),
		},
		{
			Name:     "null",
			Input:    `null`,
			Expected: models.Number{},
		},
		{
			Name:     "empty_string",
			Input:    `""`,
			Expected: models.Number{},
		},
		{
			Name:  "garbage",
			Input: `"abc"`,
			Error: true,
		},
		{
			Name:     "nan_string",
			Input:    `"NaN"`,
			Expected: models.Number{},
		},
		{
			Name:     "infinity_string",
			Input:    `"Inf"`,
			Expected: models.Number{},
		},
		{
			Name:     "negative_infinity_string",
			Input:    `"-Infinity"`,
			Expected: models.Number{},
		},
		{
			Name:  "hex_float",
			Input: `"0x1p-2"`,
			Error: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			var n models.Number
			err := json.Unmarshal([]byte(tc.Input), &n)
			if tc.Error {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.Expected, n)
		})
	}
}

func TestNumberMarshalJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Set   models.Number `json:"set"`
		Unset models.Number `json:"unset"`
	}{Set: models.NewNumber(1.5)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"set":1.5,"unset":null}`, string(b))
}

func TestTokenNonFinitePriceRoundTrip(t *testing.T) {
	var token models.Token
	require.NoError(t, json.Unmarshal([]byte(`{"symbol":"PEPE","price_usd":"NaN","liquidity_usd":"-Inf","volume_24h_usd":"1200.5"}`), &token))
	assert.False(t, token.PriceUSD.Valid)
	assert.False(t, token.LiquidityUSD.Valid)
	assert.Equal(t, models.NewNumber(1200.5), token.Volume24hUSD)

	b, err := json.Marshal(token)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(b, &doc))
	assert.Nil(t, doc["price_usd"])
	assert.Nil(t, doc["liquidity_usd"])
	assert.InDelta(t, 1200.5, doc["volume_24h_usd"], 1e-9)
}

func TestTokenDecode(t *testing.T) {
	payload := `{"tokens":[{"token_address":"So11111111111111111111111111111111111111112","symbol":"SOL","tier":1,
		"price_usd":"142.5","liquidity_usd":120000,"volume_24h_usd":null,"age_minutes":12,"buys_count":7}]}`

	var active models.ActiveTokens
	require.NoError(t, json.Unmarshal([]byte(payload), &active))
	require.Len(t, active.Tokens, 1)

	tok := active.Tokens[0]
	assert.Equal(t, "SOL", tok.Symbol)
	assert.Equal(t, models.TierHigh, tok.Tier)
	assert.Equal(t, models.NewNumber(142.5), tok.PriceUSD)
	assert.Equal(t, models.NewNumber(120000), tok.LiquidityUSD)
	assert.False(t, tok.Volume24hUSD.Valid)
	assert.Equal(t, int64(7), tok.BuysCount)
	assert.Equal(t, int64(0), tok.SellsCount)
}

func TestTierLabel(t *testing.T) {
	assert.Equal(t, "High", models.TierHigh.Label())
	assert.Equal(t, "Normal", models.TierNormal.Label())
	assert.Equal(t, "Normal", models.Tier(0).Label())
}

func TestHealthStatus(t *testing.T) {
	testCases := []struct {
		Name     string
		Health   float64
		Expected string
	}{
		{Name: "excellent", Health: 99.2, Expected: "Excellent"},
		{Name: "excellent_boundary", Health: 95, Expected: "Excellent"},
		{Name: "good", Health: 90, Expected: "Good"},
		{Name: "good_boundary", Health: 85, Expected: "Good"},
		{Name: "issues", Health: 84.9, Expected: "Issues"},
		{Name: "missing", Health: 0, Expected: "Issues"},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Expected, models.SystemStats{OverallHealth: tc.Health}.HealthStatus())
		})
	}
}

func TestEnvelopeErrorMessage(t *testing.T) {
	msg := "token not found"
	assert.Equal(t, "token not found", models.Envelope{Error: &msg}.ErrorMessage())
	assert.Equal(t, "Unknown API error", models.Envelope{}.ErrorMessage())
}

func TestWorkflowAccessors(t *testing.T) {
	var w models.Workflow
	assert.Zero(t, w.SuccessRate())
	assert.Zero(t, w.TokensProcessed())
	assert.Empty(t, w.LastRun())

	require.NoError(t, json.Unmarshal([]byte(`{"name":"discovery","status":"running",
		"last_execution":{"started_at":"2025-01-15T10:30:00Z","tokens_processed":42},
		"stats":{"success_rate_pct":97.5}}`), &w))
	assert.Equal(t, 97.5, w.SuccessRate())
	assert.Equal(t, int64(42), w.TokensProcessed())
	assert.Equal(t, "2025-01-15T10:30:00Z", w.LastRun())
}
