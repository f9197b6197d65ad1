package sched

import (
	"reflect"
	"testing"
)

func TestAgingAppliedOncePerIntervalCrossing(t *testing.T) {
	// "slow" waits exactly 10 ticks while "hog" runs; with interval 3 it
	// must be aged exactly three times, at waits 3, 6, and 9.
	inputs := []ProcessInput{
		{ID: "hog", Arrival: 0, Burst: 10, Priority: 0},
		{ID: "slow", Arrival: 0, Burst: 2, Priority: 5},
	}
	cfg := DefaultConfig()
	cfg.AgingEnabled = true
	cfg.AgingInterval = 3
	cfg.AgingStep = 1
	res := mustRun(t, inputs, PriorityNP, cfg)

	var events []AgingEvent
	for _, ev := range res.AgingEvents {
		if ev.ProcessID == "slow" {
			events = append(events, ev)
		}
	}
	want := []AgingEvent{
		{Tick: 3, ProcessID: "slow", Old: 5, New: 4, Waited: 3},
		{Tick: 6, ProcessID: "slow", Old: 4, New: 3, Waited: 6},
		{Tick: 9, ProcessID: "slow", Old: 3, New: 2, Waited: 9},
	}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("aging events = %v, want %v", events, want)
	}
}

func TestAgingPriorityFloor(t *testing.T) {
	inputs := []ProcessInput{
		{ID: "hog", Arrival: 0, Burst: 8, Priority: 0},
		{ID: "slow", Arrival: 0, Burst: 1, Priority: 1},
	}
	cfg := DefaultConfig()
	cfg.AgingEnabled = true
	cfg.AgingInterval = 2
	cfg.AgingStep = 5
	cfg.PriorityFloor = 0
	res := mustRun(t, inputs, PriorityNP, cfg)

	var events []AgingEvent
	for _, ev := range res.AgingEvents {
		if ev.ProcessID == "slow" {
			events = append(events, ev)
		}
	}
	// One clamped adjustment to the floor, then nothing: a process at the
	// floor is never aged further.
	want := []AgingEvent{{Tick: 2, ProcessID: "slow", Old: 1, New: 0, Waited: 2}}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("aging events = %v, want %v", events, want)
	}

	row, _ := res.Metrics("slow")
	if row.FinalPriority != 0 {
		t.Errorf("final priority = %d, want 0", row.FinalPriority)
	}
}

func TestAgingEffectiveBurstFlooredAtOne(t *testing.T) {
	inputs := []ProcessInput{
		{ID: "P1", Arrival: 0, Burst: 5},
		{ID: "P2", Arrival: 2, Burst: 4},
	}
	cfg := DefaultConfig()
	cfg.AgingEnabled = true
	cfg.AgingInterval = 2
	cfg.AgingStep = 10
	res := mustRun(t, inputs, SRTF, cfg)

	want := []AgingEvent{{Tick: 4, ProcessID: "P2", Old: 4, New: 1, Waited: 2}}
	if !reflect.DeepEqual(res.AgingEvents, want) {
		t.Errorf("aging events = %v, want %v", res.AgingEvents, want)
	}

	// Aging shrinks scheduling keys, never actual work: P2 still executes
	// its full four-tick burst.
	row, _ := res.Metrics("P2")
	if got := row.Completion - row.Start; got != 4 {
		t.Errorf("P2 executed %d ticks, want 4", got)
	}
}

func TestAgingChangesPriorityDispatchOrder(t *testing.T) {
	// A stream of high-priority arrivals starves "starving" without aging;
	// with aging it overtakes the final arrival.
	inputs := []ProcessInput{
		{ID: "starving", Arrival: 0, Burst: 3, Priority: 5},
		{ID: "h1", Arrival: 0, Burst: 3, Priority: 1},
		{ID: "h2", Arrival: 3, Burst: 3, Priority: 1},
		{ID: "h3", Arrival: 6, Burst: 3, Priority: 1},
		{ID: "h4", Arrival: 9, Burst: 3, Priority: 1},
	}

	cfg := DefaultConfig()
	cfg.AgingInterval = 2
	cfg.AgingStep = 1

	plain := mustRun(t, inputs, PriorityNP, cfg)
	row, _ := plain.Metrics("starving")
	if row.Waiting != 12 {
		t.Errorf("without aging: waiting = %d, want 12", row.Waiting)
	}

	cfg.AgingEnabled = true
	aged := mustRun(t, inputs, PriorityNP, cfg)
	row, _ = aged.Metrics("starving")
	if row.Waiting != 9 {
		t.Errorf("with aging: waiting = %d, want 9", row.Waiting)
	}
	if row.Start != 9 {
		t.Errorf("with aging: start = %d, want 9", row.Start)
	}
}

func TestRoundRobinAgingTieBreakOnly(t *testing.T) {
	// Aging orders simultaneous queue entries by effective priority but
	// never reorders the rotation itself.
	inputs := []ProcessInput{
		{ID: "P1", Arrival: 0, Burst: 2, Priority: 5},
		{ID: "P2", Arrival: 0, Burst: 2, Priority: 1},
	}
	cfg := DefaultConfig()
	cfg.TimeQuantum = 1

	plain := mustRun(t, inputs, RoundRobin, cfg)
	wantPlain := []Interval{
		{ProcessID: "P1", Start: 0, End: 1},
		{ProcessID: "P2", Start: 1, End: 2},
		{ProcessID: "P1", Start: 2, End: 3},
		{ProcessID: "P2", Start: 3, End: 4},
	}
	if !reflect.DeepEqual(plain.Intervals, wantPlain) {
		t.Errorf("without aging: intervals = %v, want %v", plain.Intervals, wantPlain)
	}

	cfg.AgingEnabled = true
	aged := mustRun(t, inputs, RoundRobin, cfg)
	wantAged := []Interval{
		{ProcessID: "P2", Start: 0, End: 1},
		{ProcessID: "P1", Start: 1, End: 2},
		{ProcessID: "P2", Start: 2, End: 3},
		{ProcessID: "P1", Start: 3, End: 4},
	}
	if !reflect.DeepEqual(aged.Intervals, wantAged) {
		t.Errorf("with aging: intervals = %v, want %v", aged.Intervals, wantAged)
	}
}

func TestCustomAgingFunc(t *testing.T) {
	var seen []AgingContext
	cfg := DefaultConfig()
	cfg.AgingEnabled = true
	cfg.AgingInterval = 4
	cfg.AgingStep = 1
	cfg.AgingFunc = func(ctx AgingContext) int {
		seen = append(seen, ctx)
		return ctx.Value - 2*ctx.Step
	}

	inputs := []ProcessInput{
		{ID: "hog", Arrival: 0, Burst: 9, Priority: 0},
		{ID: "slow", Arrival: 0, Burst: 1, Priority: 6},
	}
	res := mustRun(t, inputs, PriorityNP, cfg)

	want := []AgingEvent{
		{Tick: 4, ProcessID: "slow", Old: 6, New: 4, Waited: 4},
		{Tick: 8, ProcessID: "slow", Old: 4, New: 2, Waited: 8},
	}
	if !reflect.DeepEqual(res.AgingEvents, want) {
		t.Errorf("aging events = %v, want %v", res.AgingEvents, want)
	}

	if len(seen) != 2 {
		t.Fatalf("aging func called %d times, want 2", len(seen))
	}
	if seen[0].ProcessID != "slow" || seen[0].Waited != 4 || seen[0].Crossing != 1 {
		t.Errorf("unexpected first aging context: %+v", seen[0])
	}
}
