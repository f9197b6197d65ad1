package sched

import "sort"

// Run executes one complete simulation of the given process set under the
// given policy and configuration, and returns its immutable result.
//
// The inputs are copied into a fresh registry, so the caller's slice is
// never mutated and concurrent Runs (for example an aging vs. no-aging
// comparison on two goroutines) share no state.
func Run(inputs []ProcessInput, policy Policy, cfg Config) (*Result, error) {
	if err := cfg.validate(policy); err != nil {
		return nil, err
	}
	reg, err := newRegistry(inputs)
	if err != nil {
		return nil, err
	}

	e := &engine{
		reg:    reg,
		policy: policy,
		cfg:    cfg,
		det:    newStarvationDetector(cfg.StarvationThreshold),
		ag:     newAger(policy, cfg),
	}
	return e.run(), nil
}

// engine drives the tick loop for one run. Within a tick the order is
// fixed: admit arrivals, age waiting processes, select and dispatch,
// execute one unit, account waiting, record the interval.
type engine struct {
	reg    *registry
	policy Policy
	cfg    Config

	ready     []*proc // Round Robin: the FIFO queue itself; otherwise a set
	running   *proc
	sliceUsed int // ticks the running process has used of its RR quantum

	tl  *timeline
	det *starvationDetector
	ag  *ager

	arrivals []*proc // all processes ordered by arrival
	nextIdx  int     // next unadmitted process in arrivals
	now      int
}

func (e *engine) run() *Result {
	e.arrivals = e.reg.byArrival()
	e.now = e.arrivals[0].Arrival
	e.tl = newTimeline(e.now)

	completed := 0
	for completed < len(e.reg.procs) {
		e.admit()

		if e.running == nil && len(e.ready) == 0 {
			// CPU idle until the next arrival.
			next := e.arrivals[e.nextIdx].Arrival
			e.tl.recordIdle(e.now, next)
			e.now = next
			continue
		}

		if e.ag != nil {
			e.ag.apply(e.ready, e.now)
		}

		e.dispatch()
		if e.execute() {
			completed++
		}
	}

	return e.result()
}

// admit moves every process whose arrival time has been reached into the
// ready set.
func (e *engine) admit() {
	var batch []*proc
	for e.nextIdx < len(e.arrivals) && e.arrivals[e.nextIdx].Arrival <= e.now {
		batch = append(batch, e.arrivals[e.nextIdx])
		e.nextIdx++
	}
	e.enqueue(batch)
}

// enqueue appends a batch of processes entering the ready set. For Round
// Robin with aging enabled, effective priority orders processes that enter
// the queue at the same tick; it never reorders the queue itself. That
// tie-break-only role is deliberate: the rotation stays FIFO.
func (e *engine) enqueue(batch []*proc) {
	for _, p := range batch {
		p.lastReady = e.now
		p.agedStint = 0
	}
	if e.policy == RoundRobin && e.cfg.AgingEnabled && len(batch) > 1 {
		sort.SliceStable(batch, func(i, j int) bool {
			if batch[i].effPriority != batch[j].effPriority {
				return batch[i].effPriority < batch[j].effPriority
			}
			return batch[i].index < batch[j].index
		})
	}
	e.ready = append(e.ready, batch...)
}

// dispatch asks the policy for the process to run this tick and performs
// the context switch if it differs from the current one.
func (e *engine) dispatch() {
	next := pickNext(e.policy, e.ready, e.running, e.cfg.AgingEnabled)
	if next == e.running {
		return
	}
	if e.running != nil {
		// Preempted: back into the ready set, wait clock restarts.
		e.enqueue([]*proc{e.running})
	}
	e.removeReady(next)
	e.running = next
	e.sliceUsed = 0
	if next.startTime == startUnset {
		next.startTime = e.now
	}
}

// execute runs the dispatched process for one tick and reports whether it
// completed.
func (e *engine) execute() bool {
	p := e.running
	e.tl.record(p.ID, e.now)
	p.remaining--
	for _, w := range e.ready {
		w.waiting++
	}
	e.now++
	e.sliceUsed++
	e.det.scan(e.reg.procs)

	if p.remaining == 0 {
		p.completed = true
		p.completion = e.now
		e.running = nil
		e.sliceUsed = 0
		return true
	}

	if e.policy == RoundRobin && e.sliceUsed >= e.cfg.TimeQuantum {
		// Quantum expired. Processes that arrived during the slice
		// (boundary tick included) enter the queue ahead of the
		// preempted process.
		e.admit()
		e.enqueue([]*proc{p})
		e.running = nil
		e.sliceUsed = 0
	}
	return false
}

func (e *engine) removeReady(p *proc) {
	for i, q := range e.ready {
		if q == p {
			e.ready = append(e.ready[:i], e.ready[i+1:]...)
			return
		}
	}
}

func (e *engine) result() *Result {
	starved := e.det.starved(e.reg.procs)
	rows, agg, err := computeMetrics(e.reg, starved)
	if err != nil {
		// The loop only exits once every process completed.
		panic("sched: engine finished with incomplete registry: " + err.Error())
	}

	res := &Result{
		Policy:     e.policy,
		Config:     e.cfg,
		StartTick:  e.tl.start,
		TotalTicks: e.tl.ticks(),
		Intervals:  e.tl.intervals,
		Occupancy:  e.tl.occupancy,
		Starved:    starved,
		Processes:  rows,
		Averages:   agg,
	}
	if e.ag != nil {
		res.AgingEvents = e.ag.events
	}
	return res
}
