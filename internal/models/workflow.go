package models

// WorkflowsStatus is the payload of /api/status/workflows.
type WorkflowsStatus struct {
	Workflows []Workflow `json:"workflows"`
}

// Workflow describes one scheduled pipeline of the monitoring backend.
type Workflow struct {
	Name          string         `json:"name"`
	Status        string         `json:"status"`
	Schedule      string         `json:"schedule,omitempty"`
	NextRun       string         `json:"next_run,omitempty"`
	LastExecution *Execution     `json:"last_execution,omitempty"`
	Stats         *WorkflowStats `json:"stats,omitempty"`
}

// Execution is the last run of a workflow.
type Execution struct {
	StartedAt       string `json:"started_at,omitempty"`
	TokensProcessed int64  `json:"tokens_processed"`
}

// WorkflowStats aggregates the outcome of past runs.
type WorkflowStats struct {
	SuccessRatePct float64 `json:"success_rate_pct"`
}

// SuccessRate returns the success rate, or zero when no stats were reported.
func (w Workflow) SuccessRate() float64 {
	if w.Stats == nil {
		return 0
	}
	return w.Stats.SuccessRatePct
}

// TokensProcessed returns the tokens processed by the last run, or zero.
func (w Workflow) TokensProcessed() int64 {
	if w.LastExecution == nil {
		return 0
	}
	return w.LastExecution.TokensProcessed
}

// LastRun returns the start timestamp of the last run, or an empty string.
func (w Workflow) LastRun() string {
	if w.LastExecution == nil {
		return ""
	}
	return w.LastExecution.StartedAt
}
