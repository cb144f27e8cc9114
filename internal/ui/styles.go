package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/baserock/megarepo/internal/aggregate"
)

var (
	ColorCyan     = lipgloss.Color("#00FFFF")
	ColorGreen    = lipgloss.Color("#00FF00")
	ColorYellow   = lipgloss.Color("#FFFF00")
	ColorWhite    = lipgloss.Color("#FFFFFF")
	ColorDarkGray = lipgloss.Color("8")
)

// ActionColor picks the summary color for a reconcile outcome
func ActionColor(action aggregate.Action) lipgloss.Color {
	switch action {
	case aggregate.ActionAdded:
		return ColorGreen
	case aggregate.ActionCheckedOut, aggregate.ActionPulled:
		return ColorYellow
	case aggregate.ActionDeclared:
		return ColorCyan
	case aggregate.ActionNone:
		return ColorDarkGray
	default:
		return ColorWhite
	}
}
