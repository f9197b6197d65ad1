// Package tui provides a terminal dashboard for simulation results.
//
// The TUI uses Bubble Tea for the application framework and Lipgloss
// for styling. It displays the execution timeline (Gantt chart), CPU
// occupancy, per-process metrics, starvation flags, and the aging
// comparison when one is available.
package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Colors based on a modern dark theme
var (
	colorPrimary   = lipgloss.Color("#7C3AED") // Purple
	colorSecondary = lipgloss.Color("#06B6D4") // Cyan

	colorSuccess = lipgloss.Color("#10B981") // Green
	colorWarning = lipgloss.Color("#F59E0B") // Amber
	colorError   = lipgloss.Color("#EF4444") // Red

	colorText      = lipgloss.Color("#E5E7EB") // Light gray
	colorTextMuted = lipgloss.Color("#9CA3AF") // Medium gray
	colorTextDim   = lipgloss.Color("#6B7280") // Dark gray
	colorBorder    = lipgloss.Color("#374151") // Border gray
)

// processPalette is cycled to give each process a stable color in the
// Gantt chart and occupancy strip.
var processPalette = []lipgloss.Color{
	lipgloss.Color("#7C3AED"), // Purple
	lipgloss.Color("#06B6D4"), // Cyan
	lipgloss.Color("#10B981"), // Green
	lipgloss.Color("#F59E0B"), // Amber
	lipgloss.Color("#3B82F6"), // Blue
	lipgloss.Color("#EC4899"), // Pink
	lipgloss.Color("#84CC16"), // Lime
	lipgloss.Color("#F97316"), // Orange
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	headerStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorPrimary).
			Bold(true).
			Padding(0, 1).
			MarginBottom(1)

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(colorSecondary).
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(colorBorder).
				MarginTop(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted).
			MarginTop(1)

	tableHeaderStyle = lipgloss.NewStyle().
				Foreground(colorSecondary).
				Bold(true)

	valueGoodStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	valueBadStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	valueWarnStyle = lipgloss.NewStyle().
			Foreground(colorWarning).
			Bold(true)

	starvedStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	idleStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)
)

// processStyle returns the stable color style for process index i.
func processStyle(i int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(processPalette[i%len(processPalette)])
}

// renderBar renders a horizontal ratio bar of the given width.
func renderBar(ratio float64, width int, style lipgloss.Style) string {
	if width < 1 {
		width = 1
	}
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return style.Render(repeatChar('█', filled)) +
		idleStyle.Render(repeatChar('░', width-filled)) +
		mutedStyle.Render(fmt.Sprintf(" %4.0f%%", ratio*100))
}

func repeatChar(char rune, count int) string {
	if count <= 0 {
		return ""
	}
	result := make([]rune, count)
	for i := range result {
		result[i] = char
	}
	return string(result)
}
