package dashboard

import (
	"fmt"
	"io"
	"time"

	"github.com/gosuri/uitable"
	"github.com/isometry/token-monitor/internal/format"
	"github.com/isometry/token-monitor/internal/helpers"
)

const maxColWidth = 120

// Renderer writes snapshots as terminal cards.
type Renderer struct {
	// SiteURL links every token card to its detail page. Empty disables the link.
	SiteURL string
	// MaxTokens caps the number of token cards. Zero or less means no cap.
	MaxTokens int
	// Now is the reference time of relative timestamps. It defaults to time.Now.
	Now func() time.Time
}

// Render writes the stat cards, the workflow cards and the token cards of snapshot to w.
func (r Renderer) Render(w io.Writer, snapshot *Snapshot) error {
	sections := []func(io.Writer, *Snapshot) error{
		r.RenderStats,
		r.RenderWorkflows,
		r.RenderTokens,
	}
	for _, section := range sections {
		if err := section(w, snapshot); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Last update: %s\n", format.Clock(snapshot.TakenAt))
	return err
}

func (r Renderer) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func newTable() *uitable.Table {
	table := uitable.New()
	table.MaxColWidth = maxColWidth
	table.Separator = "  "
	return table
}

func heading(w io.Writer, title string) error {
	_, err := fmt.Fprintf(w, "== %s ==\n", title)
	return err
}

// RenderStats writes the system stat cards.
func (r Renderer) RenderStats(w io.Writer, s *Snapshot) error {
	if err := heading(w, "System"); err != nil {
		return err
	}
	table := newTable()
	table.RightAlign(1)
	table.AddRow("Active tokens:", format.Number(s.Stats.ActiveTokens))
	table.AddRow("Discovered today:", format.Number(s.Stats.DiscoveredToday))
	table.AddRow("Died today:", format.Number(s.Stats.DiedToday))
	table.AddRow("System health:", fmt.Sprintf("%s (%s)", format.Rate(s.Stats.OverallHealth), s.Stats.HealthStatus()))
	_, err := fmt.Fprintf(w, "%s\n\n", table)
	return err
}

// RenderWorkflows writes one card per workflow, or the load failure.
func (r Renderer) RenderWorkflows(w io.Writer, s *Snapshot) error {
	if err := heading(w, "Workflows"); err != nil {
		return err
	}
	switch {
	case s.WorkflowsError != "":
		_, err := fmt.Fprintf(w, "%s\n\n", s.WorkflowsError)
		return err
	case len(s.Workflows) == 0:
		_, err := fmt.Fprint(w, "No workflows found\n\n")
		return err
	}

	now := r.now()
	table := newTable()
	table.AddRow("", "WORKFLOW", "SCHEDULE", "LAST RUN", "PROCESSED", "SUCCESS RATE", "NEXT RUN")
	for _, wf := range s.Workflows {
		schedule := wf.Schedule
		if schedule == "" {
			schedule = "Manual"
		}
		table.AddRow(
			format.WorkflowIcon(wf.Status),
			wf.Name,
			schedule,
			format.TimeAgo(wf.LastRun(), now),
			format.Number(wf.TokensProcessed())+" tokens",
			format.Rate(wf.SuccessRate()),
			format.TimeAgo(wf.NextRun, now),
		)
	}
	_, err := fmt.Fprintf(w, "%s\n\n", table)
	return err
}

// RenderTokens writes one card per token, capped at MaxTokens, or the load failure.
func (r Renderer) RenderTokens(w io.Writer, s *Snapshot) error {
	if err := heading(w, "Active tokens"); err != nil {
		return err
	}
	switch {
	case s.TokensError != "":
		_, err := fmt.Fprintf(w, "%s\n\n", s.TokensError)
		return err
	case len(s.Tokens) == 0:
		_, err := fmt.Fprint(w, "No active tokens\n\n")
		return err
	}

	tokens := s.Tokens
	if r.MaxTokens > 0 && len(tokens) > r.MaxTokens {
		tokens = tokens[:r.MaxTokens]
	}

	table := newTable()
	header := []any{"SYMBOL", "TIER", "ADDRESS", "PRICE", "LIQUIDITY", "VOLUME 24H", "AGE", "BUYS/SELLS"}
	if r.SiteURL != "" {
		header = append(header, "DETAILS")
	}
	table.AddRow(header...)
	for _, t := range tokens {
		row := []any{
			helpers.Truncate(t.Symbol, 12),
			format.TierBadge(t.Tier),
			format.ShortenAddress(t.TokenAddress),
			format.Price(t.PriceUSD),
			format.USD(t.LiquidityUSD),
			format.USD(t.Volume24hUSD),
			fmt.Sprintf("%d min", t.AgeMinutes),
			fmt.Sprintf("%d / %d", t.BuysCount, t.SellsCount),
		}
		if r.SiteURL != "" {
			row = append(row, format.TokenURL(r.SiteURL, t.TokenAddress))
		}
		table.AddRow(row...)
	}
	if _, err := fmt.Fprintf(w, "%s\n", table); err != nil {
		return err
	}

	total := s.TotalTokens
	if total == 0 {
		total = int64(len(s.Tokens))
	}
	_, err := fmt.Fprintf(w, "Showing %d of %s tokens\n\n", len(tokens), format.Number(total))
	return err
}
