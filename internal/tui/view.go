package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/me/schedsim/pkg/sched"
)

func (m Model) renderTimelineView() string {
	sections := []string{
		m.renderHeader(),
		m.renderGantt(),
		m.renderOccupancy(),
		m.renderStarvation(),
		m.renderFooter(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderMetricsView() string {
	sections := []string{
		m.renderHeader(),
		m.renderMetricsTable(),
		m.renderAverages(),
		m.renderFooter(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderComparisonView() string {
	sections := []string{
		m.renderHeader(),
		m.renderComparison(),
		m.renderFooter(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	res := m.result
	label := m.label
	if label == "" {
		label = "simulation"
	}
	header := fmt.Sprintf(" schedsim │ %s │ %s │ ticks: %d-%d ",
		label, res.Policy, res.StartTick, res.EndTick())
	return headerStyle.Width(m.width).Render(header)
}

// colorIndex maps a process id to its palette slot, following results
// order so colors stay stable across pages.
func (m Model) colorIndex(id string) int {
	for i, pm := range m.result.Processes {
		if pm.ID == id {
			return i
		}
	}
	return 0
}

// visibleTicks caps the chart width to the terminal.
func (m Model) visibleTicks() int {
	max := m.width - 16
	if max < 10 {
		max = 10
	}
	if m.result.TotalTicks < max {
		return m.result.TotalTicks
	}
	return max
}

func (m Model) renderGantt() string {
	res := m.result
	shown := m.visibleTicks()

	var rows []string
	rows = append(rows, sectionHeaderStyle.Render("Timeline"))

	for i, pm := range res.Processes {
		var cells strings.Builder
		style := processStyle(i)
		for t := 0; t < shown; t++ {
			if res.Occupancy[t] == pm.ID {
				cells.WriteString(style.Render("█"))
			} else {
				cells.WriteString(dimStyle.Render("·"))
			}
		}
		row := style.Render(fmt.Sprintf("%-10s", clip(pm.ID, 10))) + cells.String()
		if pm.Starved {
			row += " " + starvedStyle.Render("⚠")
		}
		rows = append(rows, row)
	}

	// Tick axis, a mark every five ticks.
	var axis strings.Builder
	axis.WriteString(strings.Repeat(" ", 10))
	for t := 0; t < shown; t++ {
		tick := res.StartTick + t
		if tick%5 == 0 {
			axis.WriteString("┊")
		} else {
			axis.WriteString(" ")
		}
	}
	rows = append(rows, dimStyle.Render(axis.String()))
	if shown < res.TotalTicks {
		rows = append(rows, mutedStyle.Render(
			fmt.Sprintf("(showing %d of %d ticks)", shown, res.TotalTicks)))
	}

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) renderOccupancy() string {
	res := m.result
	shown := m.visibleTicks()

	var strip strings.Builder
	busy := 0
	for t, id := range res.Occupancy {
		if id != sched.IdleID {
			busy++
		}
		if t >= shown {
			continue
		}
		if id == sched.IdleID {
			strip.WriteString(idleStyle.Render("░"))
		} else {
			strip.WriteString(processStyle(m.colorIndex(id)).Render("█"))
		}
	}

	ratio := 0.0
	if res.TotalTicks > 0 {
		ratio = float64(busy) / float64(res.TotalTicks)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		sectionHeaderStyle.Render("CPU Occupancy"),
		strip.String(),
		mutedStyle.Render(fmt.Sprintf("busy %d / %d ticks (%.0f%%)", busy, res.TotalTicks, ratio*100)),
	)
	return boxStyle.Render(content)
}

func (m Model) renderStarvation() string {
	res := m.result

	var lines []string
	lines = append(lines, sectionHeaderStyle.Render("Starvation"))
	if len(res.Starved) == 0 {
		lines = append(lines, valueGoodStyle.Render("✓ no starvation detected"))
	} else {
		for _, id := range res.Starved {
			pm, _ := res.Metrics(id)
			lines = append(lines, starvedStyle.Render(
				fmt.Sprintf("⚠ %s waited %d ticks (threshold %d)", id, pm.Waiting, res.Config.StarvationThreshold)))
		}
	}
	if n := len(res.AgingEvents); n > 0 {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("%d aging adjustments applied", n)))
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) renderMetricsTable() string {
	res := m.result

	var rows []string
	rows = append(rows, sectionHeaderStyle.Render("Per-Process Metrics"))
	rows = append(rows, tableHeaderStyle.Render(
		fmt.Sprintf("%-10s %7s %6s %5s %6s %6s %6s %6s %6s",
			"ID", "ARRIVAL", "BURST", "PRIO", "START", "COMPL", "WAIT", "TURN", "RESP")))

	for i, pm := range res.Processes {
		line := fmt.Sprintf("%-10s %7d %6d %5d %6d %6d %6d %6d %6d",
			clip(pm.ID, 10), pm.Arrival, pm.Burst, pm.FinalPriority,
			pm.Start, pm.Completion, pm.Waiting, pm.Turnaround, pm.Response)
		if pm.Starved {
			rows = append(rows, starvedStyle.Render(line))
		} else {
			rows = append(rows, processStyle(i).Render(line))
		}
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) renderAverages() string {
	avg := m.result.Averages
	content := lipgloss.JoinVertical(lipgloss.Left,
		sectionHeaderStyle.Render("Averages"),
		fmt.Sprintf("waiting %.2f   turnaround %.2f   response %.2f",
			avg.AvgWaiting, avg.AvgTurnaround, avg.AvgResponse),
	)
	return boxStyle.Render(content)
}

func (m Model) renderComparison() string {
	cmp := m.comparison

	var rows []string
	rows = append(rows, sectionHeaderStyle.Render("Aging Comparison"))
	rows = append(rows, tableHeaderStyle.Render(
		fmt.Sprintf("%-10s %10s %10s %8s", "ID", "WITHOUT", "WITH", "SAVED")))

	for _, d := range cmp.Deltas {
		saved := fmt.Sprintf("%+d", -d.Saved)
		line := fmt.Sprintf("%-10s %10d %10d %8s", clip(d.ID, 10), d.WaitingWithout, d.WaitingWith, saved)
		switch {
		case d.Saved > 0:
			rows = append(rows, valueGoodStyle.Render(line))
		case d.Saved < 0:
			rows = append(rows, valueBadStyle.Render(line))
		default:
			rows = append(rows, mutedStyle.Render(line))
		}
	}

	rows = append(rows, "")
	rows = append(rows, fmt.Sprintf("improved: %d of %d   avg wait %.2f → %.2f",
		cmp.Improved, len(cmp.Deltas),
		cmp.Without.Averages.AvgWaiting, cmp.With.Averages.AvgWaiting))
	if len(cmp.Without.Starved) != len(cmp.With.Starved) {
		rows = append(rows, valueWarnStyle.Render(
			fmt.Sprintf("starved: %d → %d", len(cmp.Without.Starved), len(cmp.With.Starved))))
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) renderFooter() string {
	keys := "t timeline · m metrics"
	if m.comparison != nil {
		keys += " · c comparison"
	}
	keys += " · q quit"
	return footerStyle.Render(keys)
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
