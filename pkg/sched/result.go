package sched

// Result is the complete, immutable outcome of one simulation run.
// Running the same inputs with the same policy and configuration twice
// produces identical results.
type Result struct {
	Policy Policy `json:"policy"`
	Config Config `json:"config"`

	// StartTick is the simulated time the engine started at (the earliest
	// arrival). Occupancy index i describes tick StartTick+i.
	StartTick  int `json:"start_tick"`
	TotalTicks int `json:"total_ticks"`

	Intervals []Interval `json:"intervals"`
	Occupancy []string   `json:"occupancy"`

	Starved     []string     `json:"starved"`
	AgingEvents []AgingEvent `json:"aging_events,omitempty"`

	Processes []ProcessMetrics `json:"processes"`
	Averages  Aggregate        `json:"averages"`
}

// Metrics returns the results row for one process id, if present.
func (r *Result) Metrics(id string) (ProcessMetrics, bool) {
	for _, row := range r.Processes {
		if row.ID == id {
			return row, true
		}
	}
	return ProcessMetrics{}, false
}

// IsStarved reports whether the given process was flagged by the
// starvation detector.
func (r *Result) IsStarved(id string) bool {
	for _, s := range r.Starved {
		if s == id {
			return true
		}
	}
	return false
}

// EndTick is the simulated time at which the last process completed.
func (r *Result) EndTick() int {
	return r.StartTick + r.TotalTicks
}
