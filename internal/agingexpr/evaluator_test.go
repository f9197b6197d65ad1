package agingexpr

import (
	"testing"

	"github.com/me/schedsim/pkg/sched"
)

func TestCompileAndEvaluate(t *testing.T) {
	tests := []struct {
		name string
		expr string
		ctx  sched.AgingContext
		want int
	}{
		{
			name: "linear equivalent",
			expr: "value - step",
			ctx:  sched.AgingContext{Value: 5, Step: 2},
			want: 3,
		},
		{
			name: "accelerating with crossings",
			expr: "value - step * crossing",
			ctx:  sched.AgingContext{Value: 10, Step: 1, Crossing: 3},
			want: 7,
		},
		{
			name: "wait proportional",
			expr: "value - Math.floor(waited / interval)",
			ctx:  sched.AgingContext{Value: 9, Waited: 7, Interval: 2},
			want: 6,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ev, err := Compile(tc.expr)
			if err != nil {
				t.Fatalf("Compile(%q): %v", tc.expr, err)
			}
			if got := ev.Func()(tc.ctx); got != tc.want {
				t.Errorf("eval(%q) = %d, want %d", tc.expr, got, tc.want)
			}
		})
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{name: "syntax error", expr: "value -"},
		{name: "unknown identifier", expr: "vlaue - step"},
		{name: "non-numeric result", expr: "'fast'"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Compile(tc.expr); err == nil {
				t.Errorf("Compile(%q) succeeded, want error", tc.expr)
			}
		})
	}
}

func TestEvaluatorDrivesSimulation(t *testing.T) {
	ev, err := Compile("value - 2 * step")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	cfg := sched.DefaultConfig()
	cfg.AgingEnabled = true
	cfg.AgingInterval = 4
	cfg.AgingStep = 1
	cfg.AgingFunc = ev.Func()

	inputs := []sched.ProcessInput{
		{ID: "hog", Arrival: 0, Burst: 9, Priority: 0},
		{ID: "slow", Arrival: 0, Burst: 1, Priority: 6},
	}
	res, err := sched.Run(inputs, sched.PriorityNP, cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Two crossings at waits 4 and 8, each dropping the priority by two.
	row, ok := res.Metrics("slow")
	if !ok {
		t.Fatal("no metrics for slow")
	}
	if row.FinalPriority != 2 {
		t.Errorf("final priority = %d, want 2", row.FinalPriority)
	}
}
