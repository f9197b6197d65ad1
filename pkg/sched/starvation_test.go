package sched

import (
	"reflect"
	"testing"
)

func TestStarvationThresholdIsStrict(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StarvationThreshold = 5

	tests := []struct {
		name        string
		hogBurst    int
		wantStarved []string
	}{
		// The second process waits exactly as long as the first one's burst.
		{name: "waiting equal to threshold", hogBurst: 5, wantStarved: []string{}},
		{name: "waiting above threshold", hogBurst: 6, wantStarved: []string{"victim"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			inputs := []ProcessInput{
				{ID: "hog", Arrival: 0, Burst: tc.hogBurst},
				{ID: "victim", Arrival: 0, Burst: 1},
			}
			res := mustRun(t, inputs, FCFS, cfg)
			if !reflect.DeepEqual(res.Starved, tc.wantStarved) {
				t.Errorf("starved = %v, want %v", res.Starved, tc.wantStarved)
			}
		})
	}
}

func TestStarvationFlagSticksAfterCompletion(t *testing.T) {
	// "victim" eventually runs and completes, but it crossed the threshold
	// while waiting and stays flagged in the result.
	inputs := []ProcessInput{
		{ID: "hog", Arrival: 0, Burst: 8},
		{ID: "victim", Arrival: 0, Burst: 2},
	}
	cfg := DefaultConfig()
	cfg.StarvationThreshold = 3
	res := mustRun(t, inputs, FCFS, cfg)

	if !res.IsStarved("victim") {
		t.Error("victim not flagged as starved")
	}
	if res.IsStarved("hog") {
		t.Error("hog flagged as starved despite never waiting")
	}

	row, _ := res.Metrics("victim")
	if !row.Starved {
		t.Error("metrics row for victim not marked starved")
	}
}
