package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	colorPrimary   = lipgloss.Color("39")  // Blue
	colorSuccess   = lipgloss.Color("82")  // Green
	colorError     = lipgloss.Color("196") // Red
	colorMuted     = lipgloss.Color("241") // Gray
	colorHighlight = lipgloss.Color("213") // Pink

	// Text styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	HighlightStyle = lipgloss.NewStyle().
			Foreground(colorHighlight)

	// Status line styles
	StatusStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	// Symbols
	SymbolSuccess = SuccessStyle.Render("✓")
	SymbolError   = ErrorStyle.Render("✗")
)

// PhaseColor returns the appropriate style for a feed phase.
func PhaseColor(phase string) lipgloss.Style {
	switch phase {
	case "complete":
		return SuccessStyle
	case "failed":
		return ErrorStyle
	case "fetching", "sampling":
		return HighlightStyle
	default:
		return MutedStyle
	}
}
