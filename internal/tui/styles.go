package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vvka-141/csvload/pkg/csvload"
)

// Color palette - keeping it minimal and accessible.
var (
	ColorPrimary   = lipgloss.Color("39")  // Blue
	ColorSecondary = lipgloss.Color("245") // Gray
	ColorSuccess   = lipgloss.Color("34")  // Green
	ColorWarning   = lipgloss.Color("214") // Orange
	ColorError     = lipgloss.Color("196") // Red
	ColorMuted     = lipgloss.Color("240") // Dark gray
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)
)

// Symbols for visual feedback.
const (
	SymbolCheck   = "✓"
	SymbolCross   = "✗"
	SymbolPartial = "◐"
)

// StatusStyle returns the style and symbol used to render s.
func StatusStyle(s csvload.Status) (lipgloss.Style, string) {
	switch s {
	case csvload.StatusSuccess:
		return SuccessStyle, SymbolCheck
	case csvload.StatusPartialFailure:
		return WarningStyle, SymbolPartial
	default:
		return ErrorStyle, SymbolCross
	}
}

// RenderStatus renders s with its symbol, colored when color is true.
func RenderStatus(s csvload.Status, color bool) string {
	style, symbol := StatusStyle(s)
	text := symbol + " " + string(s)
	if !color {
		return text
	}
	return style.Render(text)
}
