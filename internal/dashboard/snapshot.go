// Package dashboard loads the dashboard data from the API, renders it as terminal cards and keeps it fresh.
package dashboard

import (
	"time"

	"github.com/isometry/token-monitor/internal/models"
)

const (
	// WorkflowsFailure is kept in the snapshot when the workflows status could not be loaded.
	WorkflowsFailure = "Failed to load workflows status"
	// TokensFailurePrefix prefixes the error kept in the snapshot when the active tokens could not be loaded.
	TokensFailurePrefix = "Failed to load tokens: "
)

// Snapshot is the state of the dashboard after one load.
type Snapshot struct {
	TakenAt        time.Time          `json:"taken_at"`
	Stats          models.SystemStats `json:"stats"`
	Workflows      []models.Workflow  `json:"workflows"`
	WorkflowsError string             `json:"workflows_error,omitempty"`
	Tokens         []models.Token     `json:"tokens"`
	TotalTokens    int64              `json:"total_tokens,omitempty"`
	TokensError    string             `json:"tokens_error,omitempty"`
}

// Degraded reports whether a section of the snapshot failed to load.
func (s *Snapshot) Degraded() bool {
	return s.WorkflowsError != "" || s.TokensError != ""
}
