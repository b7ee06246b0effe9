package models

// Tier is the priority classification attached to a token. It only drives display styling.
type Tier int

const (
	// TierHigh marks high priority tokens.
	TierHigh Tier = 1
	// TierNormal marks every other token.
	TierNormal Tier = 2
)

// Label returns the display label of the tier.
func (t Tier) Label() string {
	if t == TierHigh {
		return "High"
	}
	return "Normal"
}

// Token is a monitored token as returned by /api/tokens/active.
type Token struct {
	TokenAddress string `json:"token_address"`
	Symbol       string `json:"symbol"`
	Tier         Tier   `json:"tier"`
	Status       string `json:"status,omitempty"`
	PriceUSD     Number `json:"price_usd"`
	LiquidityUSD Number `json:"liquidity_usd"`
	Volume24hUSD Number `json:"volume_24h_usd"`
	AgeMinutes   int64  `json:"age_minutes"`
	BuysCount    int64  `json:"buys_count"`
	SellsCount   int64  `json:"sells_count"`
}

// ActiveTokens is the payload of /api/tokens/active.
type ActiveTokens struct {
	Tokens []Token `json:"tokens"`
	Total  int64   `json:"total,omitempty"`
}

// TokenFilters narrows down /api/tokens/active. Zero values are not sent.
type TokenFilters struct {
	Tier         int
	MinLiquidity float64
	Limit        int
	Offset       int
	Sort         string
	Order        string
}

// HistoryFilters narrows down /api/tokens/{address}/history. Empty values are not sent.
type HistoryFilters struct {
	From     string
	To       string
	Interval string
}
