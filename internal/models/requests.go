package models

// SettingUpdate is the body of /api/config/update.
type SettingUpdate struct {
	Category string `json:"category"`
	Key      string `json:"key"`
	Value    any    `json:"value"`
}

// SettingTest is the body of /api/config/test.
type SettingTest struct {
	Category string `json:"category"`
	Key      string `json:"key"`
}

// CorrelationRequest is the body of /api/analytics/correlations.
type CorrelationRequest struct {
	Target    string   `json:"target"`
	Variables []string `json:"variables"`
}

// BacktestRequest is the body of /api/analytics/backtest.
type BacktestRequest struct {
	Strategy   string `json:"strategy"`
	PeriodDays int    `json:"period_days"`
}
