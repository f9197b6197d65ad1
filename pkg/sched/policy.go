package sched

import "strings"

// Policy identifies one of the supported scheduling algorithms.
type Policy string

const (
	// FCFS runs processes to completion in arrival order.
	FCFS Policy = "fcfs"
	// SJF picks the shortest job at each dispatch point, non-preemptive.
	SJF Policy = "sjf"
	// SRTF preempts for a strictly shorter remaining burst at every tick.
	SRTF Policy = "srtf"
	// RoundRobin rotates a FIFO ready queue with a fixed time quantum.
	RoundRobin Policy = "rr"
	// PriorityNP picks the best effective priority at each dispatch point.
	PriorityNP Policy = "priority"
	// PriorityP preempts for a strictly better effective priority at every tick.
	PriorityP Policy = "priority-preemptive"
)

// Policies lists every supported policy in a stable order.
func Policies() []Policy {
	return []Policy{FCFS, SJF, SRTF, RoundRobin, PriorityNP, PriorityP}
}

// ParsePolicy resolves a policy name, accepting common aliases.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fcfs", "fifo":
		return FCFS, nil
	case "sjf":
		return SJF, nil
	case "srtf":
		return SRTF, nil
	case "rr", "round-robin", "roundrobin":
		return RoundRobin, nil
	case "priority", "priority-np":
		return PriorityNP, nil
	case "priority-preemptive", "priority-p":
		return PriorityP, nil
	}
	return "", &UnknownPolicyError{Name: s}
}

func (p Policy) String() string {
	return string(p)
}

// Valid reports whether p is one of the supported policies.
func (p Policy) Valid() bool {
	switch p {
	case FCFS, SJF, SRTF, RoundRobin, PriorityNP, PriorityP:
		return true
	}
	return false
}

// Preemptive reports whether p re-evaluates its choice at every tick.
// Round Robin preempts on quantum expiry only, which the engine handles
// separately.
func (p Policy) Preemptive() bool {
	return p == SRTF || p == PriorityP
}

// orderKey returns the ordering key a policy minimizes over the ready set.
// Ties always fall back to registration order. Round Robin has no key: its
// order is the queue itself.
func (p Policy) orderKey(pr *proc, aging bool) int {
	switch p {
	case FCFS:
		return pr.Arrival
	case SJF, SRTF:
		if aging {
			return pr.effectiveRemaining()
		}
		return pr.remaining
	case PriorityNP, PriorityP:
		return pr.effPriority
	}
	return 0
}

// pickNext selects the process to execute for the coming tick.
//
// Non-preemptive policies stick with the running process until it
// completes. Preemptive policies switch only when a ready process has a
// strictly smaller key than the running one; equality never preempts.
func pickNext(p Policy, ready []*proc, running *proc, aging bool) *proc {
	if p == RoundRobin {
		if running != nil {
			return running
		}
		if len(ready) == 0 {
			return nil
		}
		return ready[0]
	}

	if running != nil && !p.Preemptive() {
		return running
	}

	var best *proc
	for _, cand := range ready {
		if best == nil {
			best = cand
			continue
		}
		ck, bk := p.orderKey(cand, aging), p.orderKey(best, aging)
		if ck < bk || (ck == bk && cand.index < best.index) {
			best = cand
		}
	}
	if best == nil {
		return running
	}
	if running != nil && p.orderKey(best, aging) >= p.orderKey(running, aging) {
		return running
	}
	return best
}
