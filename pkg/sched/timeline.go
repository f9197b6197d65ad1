package sched

// IdleID marks CPU time with no runnable process in intervals and the
// occupancy record.
const IdleID = ""

// Interval is one contiguous stretch of CPU time given to a single
// process (or left idle). End is exclusive. Intervals in a timeline never
// overlap and never have zero length.
type Interval struct {
	ProcessID string `json:"process_id"`
	Start     int    `json:"start"`
	End       int    `json:"end"`
}

// Idle reports whether the interval is CPU idle time.
func (iv Interval) Idle() bool {
	return iv.ProcessID == IdleID
}

// timeline accumulates execution intervals and the per-tick occupancy
// record. Consecutive ticks of the same process coalesce into one
// interval.
type timeline struct {
	start     int
	intervals []Interval
	occupancy []string
}

func newTimeline(start int) *timeline {
	return &timeline{start: start}
}

// record accounts one executed tick for id (IdleID for idle time). Ticks
// must be recorded in increasing order.
func (tl *timeline) record(id string, tick int) {
	tl.occupancy = append(tl.occupancy, id)
	if n := len(tl.intervals); n > 0 && tl.intervals[n-1].ProcessID == id && tl.intervals[n-1].End == tick {
		tl.intervals[n-1].End = tick + 1
		return
	}
	tl.intervals = append(tl.intervals, Interval{ProcessID: id, Start: tick, End: tick + 1})
}

// recordIdle accounts the idle gap [from, to).
func (tl *timeline) recordIdle(from, to int) {
	for t := from; t < to; t++ {
		tl.record(IdleID, t)
	}
}

// ticks is the total simulated time covered so far.
func (tl *timeline) ticks() int {
	return len(tl.occupancy)
}
