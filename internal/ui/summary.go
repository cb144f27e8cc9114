package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/baserock/megarepo/internal/aggregate"
	"github.com/baserock/megarepo/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorCyan)
	nameStyle  = lipgloss.NewStyle().Bold(true)
)

// RenderSummary renders the per-entry outcome of a convergence run
func RenderSummary(mode models.Mode, results []aggregate.EntryResult) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Aggregated %d entries in %s mode", len(results), mode)))
	b.WriteString("\n")

	for _, r := range results {
		actionStyle := lipgloss.NewStyle().Foreground(ActionColor(r.Action))
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			nameStyle.Render(r.Name),
			actionStyle.Render(string(r.Action)),
		))
	}

	return b.String()
}
