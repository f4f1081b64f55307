package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color palette using ANSI color codes for terminal compatibility.

// Semantic colors for status indication
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
)

// Text colors for content hierarchy
const (
	ColorPrimary   lipgloss.Color = "7" // White/default
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorMuted     lipgloss.Color = "8" // Gray (bright black)
)

// ColorEnabled reports whether colored output should be used.
// Color is disabled when NO_COLOR is set or stdout is not a terminal
// capable of color, following termenv's profile detection.
func ColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return termenv.ColorProfile() != termenv.Ascii
}

// StateColor maps a service state string to its display color.
func StateColor(state string) lipgloss.Color {
	switch state {
	case "active":
		return ColorSuccess
	case "failed":
		return ColorError
	case "activating", "deactivating", "reloading":
		return ColorWarning
	case "inactive":
		return ColorMuted
	default:
		return ColorPrimary
	}
}
