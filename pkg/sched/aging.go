package sched

// AgingEvent records one adjustment the aging module made. The sequence of
// events is carried on the result so callers can explain why the schedule
// diverged from the unaged one.
type AgingEvent struct {
	Tick      int    `json:"tick"`
	ProcessID string `json:"process_id"`
	Old       int    `json:"old"`
	New       int    `json:"new"`
	Waited    int    `json:"waited"`
}

// ager applies the policy-specific aging rule to waiting processes.
//
// For SJF/SRTF the rule shrinks the effective remaining burst (floored at
// one tick). For the priority policies and Round Robin it improves the
// effective priority (floored at the configured best value). The effective
// values are scheduling keys only: aging never changes how much work a
// process actually executes.
type ager struct {
	policy   Policy
	interval int
	step     int
	floor    int
	fn       AgingFunc
	events   []AgingEvent
}

func newAger(policy Policy, cfg Config) *ager {
	if !cfg.AgingEnabled {
		return nil
	}
	return &ager{
		policy:   policy,
		interval: cfg.AgingInterval,
		step:     cfg.AgingStep,
		floor:    cfg.PriorityFloor,
		fn:       cfg.AgingFunc,
	}
}

// apply ages every ready (not running) process whose wait since it last
// became ready has crossed further interval boundaries. Each boundary is
// applied exactly once: the crossing counter resets when a process
// re-enters the ready set, and effective values persist for the rest of
// the run.
func (a *ager) apply(ready []*proc, now int) {
	for _, p := range ready {
		waited := now - p.lastReady
		crossings := waited / a.interval
		for p.agedStint < crossings {
			p.agedStint++
			a.adjust(p, now, waited)
		}
	}
}

func (a *ager) adjust(p *proc, now, waited int) {
	switch a.policy {
	case SJF, SRTF:
		old := p.effectiveRemaining()
		next := a.next(p, now, waited, old)
		// Clamp to [1, remaining]: aging cannot invent completed work nor
		// inflate the key past the real remaining burst.
		if next < 1 {
			next = 1
		}
		if next > p.remaining {
			next = p.remaining
		}
		p.agingCredit = p.remaining - next
		if eff := p.effectiveRemaining(); eff != old {
			a.events = append(a.events, AgingEvent{Tick: now, ProcessID: p.ID, Old: old, New: eff, Waited: waited})
		}
	case RoundRobin, PriorityNP, PriorityP:
		old := p.effPriority
		if old <= a.floor {
			return
		}
		next := a.next(p, now, waited, old)
		if next < a.floor {
			next = a.floor
		}
		if next > old {
			next = old
		}
		p.effPriority = next
		if next != old {
			a.events = append(a.events, AgingEvent{Tick: now, ProcessID: p.ID, Old: old, New: next, Waited: waited})
		}
	}
}

// next computes the unclamped adjusted value, via the injected rule when
// one is configured and the linear value-step rule otherwise.
func (a *ager) next(p *proc, now, waited, value int) int {
	if a.fn != nil {
		return a.fn(AgingContext{
			ProcessID: p.ID,
			Tick:      now,
			Waited:    waited,
			Crossing:  p.agedStint,
			Interval:  a.interval,
			Step:      a.step,
			Value:     value,
		})
	}
	return value - a.step
}
