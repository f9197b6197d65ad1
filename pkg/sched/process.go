// Package sched implements a deterministic, tick-based CPU scheduling
// simulator. It supports FCFS, SJF, SRTF, Round Robin, and priority
// scheduling (preemptive and non-preemptive), optional aging of waiting
// processes, and starvation detection. A single call to Run owns all of
// its state, so concurrent runs over separate input copies are safe.
//
// Priority convention: a lower number means a higher priority.
package sched

import "sort"

// ProcessInput is the caller-supplied definition of one simulated process.
// How the values were obtained (manual entry, scenario file, live process
// sampling) is not the simulator's concern.
type ProcessInput struct {
	ID       string `json:"id" yaml:"id"`
	Arrival  int    `json:"arrival" yaml:"arrival"`
	Burst    int    `json:"burst" yaml:"burst"`
	Priority int    `json:"priority" yaml:"priority"`
}

// startUnset marks a process that has not been dispatched yet.
const startUnset = -1

// proc is the mutable run state of one process. Only the engine, the ager,
// and the starvation detector touch these fields.
type proc struct {
	ProcessInput

	// index is the registration position, used as the final tie-break so
	// that identical inputs always schedule identically.
	index int

	remaining   int // actual work left; hits 0 at completion
	agingCredit int // effective-burst reduction accumulated by aging
	effPriority int // aging-adjusted priority used for ordering
	waiting     int // total ticks spent ready-but-not-running
	lastReady   int // tick at which the process last entered the ready set
	agedStint   int // aging interval crossings applied this ready stint

	startTime  int // first dispatch tick, startUnset until then
	completion int
	completed  bool
}

// effectiveRemaining is the aging-adjusted remaining burst used as the
// ordering key for SJF/SRTF. Aging never shrinks it below one tick: a
// process cannot be aged past work it has not actually done.
func (p *proc) effectiveRemaining() int {
	if p.remaining == 0 {
		return 0
	}
	eff := p.remaining - p.agingCredit
	if eff < 1 {
		eff = 1
	}
	return eff
}

// registry holds every process of one run, in registration order.
type registry struct {
	procs []*proc
}

// newRegistry validates the inputs and builds a fresh registry. The inputs
// are copied: the caller's slice is never mutated by a run.
func newRegistry(inputs []ProcessInput) (*registry, error) {
	if len(inputs) == 0 {
		return nil, ErrEmptyInput
	}

	seen := make(map[string]bool, len(inputs))
	procs := make([]*proc, 0, len(inputs))
	for i, in := range inputs {
		if in.ID == "" {
			return nil, &InvalidProcessError{ID: in.ID, Field: "id", Reason: "must not be empty"}
		}
		if seen[in.ID] {
			return nil, &InvalidProcessError{ID: in.ID, Field: "id", Reason: "duplicate id"}
		}
		seen[in.ID] = true
		if in.Arrival < 0 {
			return nil, &InvalidProcessError{ID: in.ID, Field: "arrival", Reason: "must not be negative"}
		}
		if in.Burst <= 0 {
			return nil, &InvalidProcessError{ID: in.ID, Field: "burst", Reason: "must be positive"}
		}
		procs = append(procs, &proc{
			ProcessInput: in,
			index:        i,
			remaining:    in.Burst,
			effPriority:  in.Priority,
			startTime:    startUnset,
		})
	}
	return &registry{procs: procs}, nil
}

// byArrival returns the processes ordered by arrival time, registration
// order breaking ties.
func (r *registry) byArrival() []*proc {
	out := make([]*proc, len(r.procs))
	copy(out, r.procs)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Arrival != out[j].Arrival {
			return out[i].Arrival < out[j].Arrival
		}
		return out[i].index < out[j].index
	})
	return out
}

func (r *registry) allCompleted() bool {
	for _, p := range r.procs {
		if !p.completed {
			return false
		}
	}
	return true
}
