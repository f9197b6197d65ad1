package sched

// starvationDetector flags unfinished processes whose accumulated waiting
// time strictly exceeds the configured threshold. It is rebuilt for every
// run; a completed process can never be starved.
type starvationDetector struct {
	threshold int
	flagged   map[string]bool
}

func newStarvationDetector(threshold int) *starvationDetector {
	return &starvationDetector{threshold: threshold, flagged: make(map[string]bool)}
}

// scan inspects every process at the current tick. Flags are sticky: a
// process that starved while waiting stays flagged even if it completes
// later in the run.
func (d *starvationDetector) scan(procs []*proc) {
	for _, p := range procs {
		if p.completed || p.remaining == 0 {
			continue
		}
		if p.waiting > d.threshold {
			d.flagged[p.ID] = true
		}
	}
}

// starved returns the flagged ids in registration order.
func (d *starvationDetector) starved(procs []*proc) []string {
	out := make([]string, 0, len(d.flagged))
	for _, p := range procs {
		if d.flagged[p.ID] {
			out = append(out, p.ID)
		}
	}
	return out
}
