package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/me/schedsim/pkg/sched"
)

// view selects which dashboard page is shown.
type view int

const (
	viewTimeline view = iota
	viewMetrics
	viewComparison
)

// Model represents the TUI state for one rendered simulation.
type Model struct {
	result     *sched.Result
	comparison *sched.Comparison
	label      string

	active view

	width  int
	height int

	quitting bool
}

// Config holds TUI configuration.
type Config struct {
	Result     *sched.Result
	Comparison *sched.Comparison // optional; enables the comparison page
	Label      string
}

// New creates a new TUI model. When a comparison is supplied, its
// with-aging result is shown on the timeline page.
func New(cfg Config) Model {
	m := Model{
		result:     cfg.Result,
		comparison: cfg.Comparison,
		label:      cfg.Label,
		width:      100,
		height:     30,
	}
	if m.result == nil && m.comparison != nil {
		m.result = m.comparison.With
	}
	return m
}

// Init initializes the model. The dashboard is static, so there is no
// initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "t":
			m.active = viewTimeline
			return m, nil
		case "m":
			m.active = viewMetrics
			return m, nil
		case "c":
			if m.comparison != nil {
				m.active = viewComparison
			}
			return m, nil
		case "tab":
			m.active = m.nextView()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

func (m Model) nextView() view {
	switch m.active {
	case viewTimeline:
		return viewMetrics
	case viewMetrics:
		if m.comparison != nil {
			return viewComparison
		}
		return viewTimeline
	default:
		return viewTimeline
	}
}

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.result == nil {
		return mutedStyle.Render("no simulation loaded")
	}

	switch m.active {
	case viewMetrics:
		return m.renderMetricsView()
	case viewComparison:
		return m.renderComparisonView()
	default:
		return m.renderTimelineView()
	}
}
