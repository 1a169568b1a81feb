package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Category color scheme - mirrors the palette Ansible users expect.
var (
	playStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")) // White bold - play headers

	taskStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")) // White bold - task headers

	recapStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")) // Blue bold - recap header

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("10")) // Green

	changedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")) // Yellow

	skippedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14")) // Cyan

	failedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9")) // Red bold

	diffMarkerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")) // White bold - hunk markers

	diffAddStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")) // Green - added lines

	diffDelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")) // Red - removed lines

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("13")) // Magenta - warnings/errors
)

// styleFor returns the display style for a classified line, or nil when the
// line should pass through unstyled.
func styleFor(cat Category, stripped string) *lipgloss.Style {
	switch cat {
	case CategoryPlayHeader:
		return &playStyle
	case CategoryTaskHeader:
		return &taskStyle
	case CategoryRecapHeader:
		return &recapStyle
	case CategoryStatusOk:
		return &okStyle
	case CategoryStatusChanged:
		return &changedStyle
	case CategoryStatusSkipped:
		return &skippedStyle
	case CategoryStatusFailed:
		return &failedStyle
	case CategoryDiffMarker:
		return &diffMarkerStyle
	case CategoryDiffContent:
		if strings.HasPrefix(stripped, "+") {
			return &diffAddStyle
		}
		return &diffDelStyle
	case CategoryWarning:
		return &warningStyle
	}
	return nil
}
