package sched

import (
	"errors"
	"reflect"
	"testing"
)

func TestCompareAgingImprovesStarvedProcess(t *testing.T) {
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
	cfg.StarvationThreshold = 10

	cmp, err := Compare(inputs, PriorityNP, cfg)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}

	if cmp.Without.Config.AgingEnabled {
		t.Error("baseline run had aging enabled")
	}
	if !cmp.With.Config.AgingEnabled {
		t.Error("aged run had aging disabled")
	}

	if !cmp.Without.IsStarved("starving") {
		t.Error("baseline run did not starve the low-priority process")
	}
	if cmp.With.IsStarved("starving") {
		t.Error("aging failed to rescue the low-priority process")
	}

	if cmp.Improved < 1 {
		t.Errorf("improved = %d, want at least 1", cmp.Improved)
	}

	var delta *ProcessDelta
	for i := range cmp.Deltas {
		if cmp.Deltas[i].ID == "starving" {
			delta = &cmp.Deltas[i]
		}
	}
	if delta == nil {
		t.Fatal("no delta row for the starving process")
	}
	if delta.Saved != delta.WaitingWithout-delta.WaitingWith {
		t.Errorf("saved = %d, want %d", delta.Saved, delta.WaitingWithout-delta.WaitingWith)
	}
	if delta.Saved <= 0 {
		t.Errorf("saved = %d, want positive", delta.Saved)
	}
}

func TestCompareRunsAreIndependent(t *testing.T) {
	inputs := mixedWorkload()
	snapshot := make([]ProcessInput, len(inputs))
	copy(snapshot, inputs)

	cmp, err := Compare(inputs, SRTF, DefaultConfig())
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if !reflect.DeepEqual(inputs, snapshot) {
		t.Error("Compare mutated the shared input slice")
	}

	// The two runs must match single runs with the same configuration.
	want, err := Run(inputs, SRTF, cmp.Without.Config)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !reflect.DeepEqual(cmp.Without, want) {
		t.Error("concurrent baseline run differs from a sequential run")
	}
}

func TestComparePropagatesValidationErrors(t *testing.T) {
	_, err := Compare(nil, FCFS, DefaultConfig())
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("err = %v, want ErrEmptyInput", err)
	}
}
