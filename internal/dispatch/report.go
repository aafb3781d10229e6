package dispatch

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/hookmux/hookmux/internal/hook"
	"github.com/hookmux/hookmux/internal/plugin"
)

// Entry pairs one plugin identifier with the outcome it produced
type Entry struct {
	Plugin  string         `json:"plugin"`
	Outcome plugin.Outcome `json:"outcome"`
}

// Report is the ordered record of one dispatch: every plugin that ran, in
// invocation order, with per-status counters. Created per invocation and
// discarded after reporting.
type Report struct {
	Hook     hook.Type `json:"hook"`
	Entries  []Entry   `json:"entries"`
	Passed   int       `json:"passed"`
	Warnings int       `json:"warnings"`
	Failures int       `json:"failures"`
}

// NewReport creates an empty report for a hook run
func NewReport(t hook.Type) *Report {
	return &Report{
		Hook:    t,
		Entries: make([]Entry, 0),
	}
}

// Add records one plugin outcome in invocation order
func (r *Report) Add(pluginID string, outcome plugin.Outcome) {
	r.Entries = append(r.Entries, Entry{Plugin: pluginID, Outcome: outcome})

	switch outcome.Status {
	case plugin.StatusPass:
		r.Passed++
	case plugin.StatusWarn:
		r.Warnings++
	case plugin.StatusFail:
		r.Failures++
	}
}

// Overall derives the aggregated verdict: failure if any outcome failed,
// else warning if any warned, else pass
func (r *Report) Overall() plugin.Status {
	if r.Failures > 0 {
		return plugin.StatusFail
	}
	if r.Warnings > 0 {
		return plugin.StatusWarn
	}
	return plugin.StatusPass
}

// Format renders the report for humans. Plugins appear in dispatch order;
// every plugin that ran is listed, including passing ones with messages.
// The rendering never depends on the abort decision.
func (r *Report) Format() string {
	var sb strings.Builder

	sb.WriteString(color.New(color.Bold).Sprintf("hookmux: %s", r.Hook))
	sb.WriteString("\n")

	for _, entry := range r.Entries {
		icon, statusColor := statusDisplay(entry.Outcome.Status)
		sb.WriteString(fmt.Sprintf("%s %s: %s\n",
			icon,
			color.New(color.Bold).Sprint(entry.Plugin),
			statusColor("%s", string(entry.Outcome.Status))))

		for _, msg := range entry.Outcome.Messages {
			sb.WriteString(fmt.Sprintf("  %s\n", msg))
		}
	}

	overallIcon, overallColor := statusDisplay(r.Overall())
	sb.WriteString(fmt.Sprintf("%s %s\n",
		overallIcon,
		overallColor("%d passed, %d warnings, %d failures", r.Passed, r.Warnings, r.Failures)))

	return sb.String()
}

// FormatJSON renders the report as JSON
func (r *Report) FormatJSON() (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}
	return string(data), nil
}

// statusDisplay returns the icon and color function for a status
func statusDisplay(status plugin.Status) (string, func(format string, a ...interface{}) string) {
	switch status {
	case plugin.StatusPass:
		return "✓", color.GreenString
	case plugin.StatusWarn:
		return "⚠", color.YellowString
	case plugin.StatusFail:
		return "✗", color.RedString
	default:
		return "?", color.WhiteString
	}
}
