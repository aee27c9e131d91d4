package tui

import (
	"fmt"
	"strings"

	"github.com/voxfield/nsweep/pkg/domain"
)

// PlanMarkdown renders the ordered invocation list as a markdown document.
// Piped through the glamour renderer it becomes the `nsweep plan` output;
// unrendered it is still readable plain text.
func PlanMarkdown(sweep *domain.Sweep, invs []domain.Invocation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Sweep %s\n\n", sweep.Name)
	fmt.Fprintf(&b, "- Trainer: `%s %s`\n", sweep.Trainer, sweep.Preset)
	if sweep.Data != "" {
		fmt.Fprintf(&b, "- Data: `%s`\n", sweep.Data)
	}
	fmt.Fprintf(&b, "- Devices: %v (`%s`)\n", sweep.Devices, sweep.DeviceVar)
	fmt.Fprintf(&b, "- Policy: %s\n", sweep.Policy)
	fmt.Fprintf(&b, "- Grid: %d invocations\n\n", len(invs))

	b.WriteString("| # | experiment |")
	for _, ax := range sweep.Axes {
		fmt.Fprintf(&b, " %s |", ax.Name)
	}
	b.WriteString("\n|---|---|")
	for range sweep.Axes {
		b.WriteString("---|")
	}
	b.WriteString("\n")

	for _, inv := range invs {
		fmt.Fprintf(&b, "| %d | %s |", inv.Index, inv.Name)
		for _, ax := range sweep.Axes {
			fmt.Fprintf(&b, " %s |", inv.Values[ax.Name])
		}
		b.WriteString("\n")
	}
	return b.String()
}

// SummaryMarkdown renders the final ledger as a markdown report.
func SummaryMarkdown(state *domain.SweepState) string {
	succeeded, failed, skipped := state.Counts()

	var b strings.Builder
	fmt.Fprintf(&b, "# Sweep %s finished\n\n", state.ID)
	fmt.Fprintf(&b, "- Grid: %d\n", state.GridSize)
	fmt.Fprintf(&b, "- Succeeded: %d\n", succeeded)
	fmt.Fprintf(&b, "- Failed: %d\n", failed)
	if skipped > 0 {
		fmt.Fprintf(&b, "- Skipped: %d\n", skipped)
	}

	if failed > 0 {
		b.WriteString("\n## Failed runs\n\n")
		for _, rec := range state.Runs {
			if rec.Status != domain.RunFailed {
				continue
			}
			fmt.Fprintf(&b, "- `%s` (exit %d, %d attempt(s))\n", rec.Name, rec.ExitCode, rec.Attempts)
		}
	}
	return b.String()
}
