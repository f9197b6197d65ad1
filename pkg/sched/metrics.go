package sched

// ProcessMetrics is the per-process results row, derived once the process
// has completed. Waiting, turnaround, and response are all expressed in
// ticks against the original burst time, never the aged effective value.
type ProcessMetrics struct {
	ID            string `json:"id"`
	Arrival       int    `json:"arrival"`
	Burst         int    `json:"burst"`
	Priority      int    `json:"priority"`
	FinalPriority int    `json:"final_priority"`
	Start         int    `json:"start"`
	Completion    int    `json:"completion"`
	Waiting       int    `json:"waiting"`
	Turnaround    int    `json:"turnaround"`
	Response      int    `json:"response"`
	Starved       bool   `json:"starved"`
}

// Aggregate holds the arithmetic means over all completed processes.
type Aggregate struct {
	AvgWaiting    float64 `json:"avg_waiting"`
	AvgTurnaround float64 `json:"avg_turnaround"`
	AvgResponse   float64 `json:"avg_response"`
}

// computeMetrics derives the per-process table and aggregates from the
// final registry state. Requesting metrics before every process completed
// is a caller error, not a state to recover from.
func computeMetrics(reg *registry, starved []string) ([]ProcessMetrics, Aggregate, error) {
	if !reg.allCompleted() {
		return nil, Aggregate{}, ErrIncompleteSimulation
	}

	starvedSet := make(map[string]bool, len(starved))
	for _, id := range starved {
		starvedSet[id] = true
	}

	rows := make([]ProcessMetrics, 0, len(reg.procs))
	var sumW, sumT, sumR int
	for _, p := range reg.procs {
		turnaround := p.completion - p.Arrival
		row := ProcessMetrics{
			ID:            p.ID,
			Arrival:       p.Arrival,
			Burst:         p.Burst,
			Priority:      p.Priority,
			FinalPriority: p.effPriority,
			Start:         p.startTime,
			Completion:    p.completion,
			Waiting:       p.waiting,
			Turnaround:    turnaround,
			Response:      p.startTime - p.Arrival,
			Starved:       starvedSet[p.ID],
		}
		sumW += row.Waiting
		sumT += row.Turnaround
		sumR += row.Response
		rows = append(rows, row)
	}

	n := float64(len(rows))
	agg := Aggregate{
		AvgWaiting:    float64(sumW) / n,
		AvgTurnaround: float64(sumT) / n,
		AvgResponse:   float64(sumR) / n,
	}
	return rows, agg, nil
}
