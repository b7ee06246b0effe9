// Package format renders API values for display.
package format

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/isometry/token-monitor/internal/models"
)

// NotAvailable is rendered in place of missing values.
const NotAvailable = "N/A"

// Number formats an integer with thousands separators (1234567 -> 1,234,567).
func Number(n int64) string {
	return humanize.Comma(n)
}

// Price formats a USD price, keeping more decimals for cheaper tokens.
func Price(n models.Number) string {
	if !n.Valid {
		return NotAvailable
	}
	switch {
	case n.Value >= 1:
		return fmt.Sprintf("$%.2f", n.Value)
	case n.Value >= 0.01:
		return fmt.Sprintf("$%.4f", n.Value)
	default:
		return fmt.Sprintf("$%.8f", n.Value)
	}
}

// USD formats an amount with thousands separators and two decimals (12345.67 -> $12,345.67).
func USD(n models.Number) string {
	if !n.Valid {
		return NotAvailable
	}
	return "$" + humanize.FormatFloat("#,###.##", n.Value)
}

// Percent formats an already scaled percentage with an explicit sign (15 -> +15.0%).
func Percent(n models.Number) string {
	if !n.Valid {
		return NotAvailable
	}
	sign := ""
	if n.Value >= 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.1f%%", sign, n.Value)
}

// TimeAgo renders an RFC3339 timestamp relative to now.
// Timestamps in the future, such as the next run of a workflow, are rendered as "in ...".
func TimeAgo(timestamp string, now time.Time) string {
	t, ok := parse(timestamp)
	if !ok {
		return NotAvailable
	}
	diff := now.Sub(t)
	if diff < 0 {
		return "in " + span(-diff)
	}
	if diff < time.Minute {
		return "just now"
	}
	return span(diff) + " ago"
}

func span(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "<1 min"
	case d < time.Hour:
		return fmt.Sprintf("%d min", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d/time.Hour))
	default:
		return fmt.Sprintf("%dd", int(d/(24*time.Hour)))
	}
}

// DateTime renders an RFC3339 timestamp as "Jan 15, 10:30".
func DateTime(timestamp string) string {
	t, ok := parse(timestamp)
	if !ok {
		return NotAvailable
	}
	return t.Format("Jan 2, 15:04")
}

// Clock renders the wall clock time of t as "10:30".
func Clock(t time.Time) string {
	return t.Format("15:04")
}

func parse(timestamp string) (time.Time, bool) {
	timestamp = strings.TrimSpace(timestamp)
	if timestamp == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ShortenAddress keeps the first six and last four characters of an address.
func ShortenAddress(address string) string {
	if len(address) < 10 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}

// TierBadge returns the display label of a tier.
func TierBadge(tier models.Tier) string {
	return tier.Label()
}

// StatusBadge returns the display label of a token status.
func StatusBadge(status string) string {
	if status == "" {
		return NotAvailable
	}
	return status
}

// WorkflowIcon returns the icon for a workflow status.
func WorkflowIcon(status string) string {
	switch status {
	case "running":
		return "✅"
	case "paused":
		return "⏸️"
	default:
		return "❌"
	}
}

// Rate formats a success rate percentage with one decimal (97.54 -> 97.5%).
func Rate(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// TokenURL returns the detail page of a token on the public website.
func TokenURL(siteURL, address string) string {
	return strings.TrimSuffix(siteURL, "/") + "/tokens.html?address=" + url.QueryEscape(address)
}
