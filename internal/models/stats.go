package models

// SystemStats is the payload of /api/stats/system.
type SystemStats struct {
	ActiveTokens    int64   `json:"active_tokens"`
	DiscoveredToday int64   `json:"discovered_today"`
	DiedToday       int64   `json:"died_today"`
	OverallHealth   float64 `json:"overall_health"`
}

// HealthStatus classifies the overall health percentage.
func (s SystemStats) HealthStatus() string {
	switch {
	case s.OverallHealth >= 95:
		return "Excellent"
	case s.OverallHealth >= 85:
		return "Good"
	default:
		return "Issues"
	}
}
