// Package tui holds terminal presentation helpers: interactivity detection,
// the shared lipgloss palette and the live progress display.
package tui

import (
	"os"

	"golang.org/x/term"
)

// Mode represents whether a human is watching the output stream.
type Mode int

const (
	// ModeNonInteractive is used for CI/CD pipelines, scripts and redirected output.
	ModeNonInteractive Mode = iota
	// ModeInteractive is used when a human is at the terminal.
	ModeInteractive
)

// DetectMode decides whether live progress should be drawn on f.
//
// Returns ModeNonInteractive if:
//   - CSVLOAD_NON_INTERACTIVE=1 is set
//   - CI is set (common CI/CD convention)
//   - NO_COLOR is set
//   - f is not a terminal
func DetectMode(f *os.File) Mode {
	if os.Getenv("CSVLOAD_NON_INTERACTIVE") == "1" {
		return ModeNonInteractive
	}
	if os.Getenv("CI") != "" {
		return ModeNonInteractive
	}
	if os.Getenv("NO_COLOR") != "" {
		return ModeNonInteractive
	}
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return ModeNonInteractive
	}
	return ModeInteractive
}

// IsInteractive reports whether f is an interactive terminal.
func IsInteractive(f *os.File) bool {
	return DetectMode(f) == ModeInteractive
}

// TerminalWidth returns the width of f, or fallback when it cannot be read.
func TerminalWidth(f *os.File, fallback int) int {
	if f == nil {
		return fallback
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}
