// Package agingexpr compiles user-supplied aging formulas (JavaScript
// expressions via goja) into sched.AgingFunc values. It lets scenario
// files replace the linear value-step rule, e.g.:
//
//	aging_expr: "value - step * crossing"
//	aging_expr: "Math.max(value - Math.floor(waited / interval), 0)"
//
// The expression sees the variables value, step, interval, waited,
// crossing, and tick, and must evaluate to a number. The aging module
// still enforces its floors on whatever the expression returns.
package agingexpr

import (
	"fmt"

	"github.com/dop251/goja"

	"github.com/me/schedsim/pkg/sched"
)

// Evaluator is a compiled aging expression. It is safe to share across
// concurrent runs: each evaluation uses its own JavaScript VM.
type Evaluator struct {
	src  string
	prog *goja.Program
}

// Compile parses the expression and probes it once with a dummy context
// so that runtime errors (unknown identifiers, non-numeric results)
// surface at configuration time, not mid-run.
func Compile(expr string) (*Evaluator, error) {
	prog, err := goja.Compile("aging_expr", "("+expr+")", true)
	if err != nil {
		return nil, fmt.Errorf("compile aging expression: %w", err)
	}
	e := &Evaluator{src: expr, prog: prog}

	probe := sched.AgingContext{Value: 10, Step: 1, Interval: 2, Waited: 2, Crossing: 1, Tick: 2}
	if _, err := e.eval(probe); err != nil {
		return nil, fmt.Errorf("evaluate aging expression: %w", err)
	}
	return e, nil
}

// Func adapts the compiled expression to the simulator's aging hook.
// An evaluation error mid-run falls back to the linear rule; Compile's
// probe makes that path unreachable for well-formed expressions.
func (e *Evaluator) Func() sched.AgingFunc {
	return func(ctx sched.AgingContext) int {
		v, err := e.eval(ctx)
		if err != nil {
			return ctx.Value - ctx.Step
		}
		return v
	}
}

// Source returns the original expression text.
func (e *Evaluator) Source() string {
	return e.src
}

func (e *Evaluator) eval(ctx sched.AgingContext) (int, error) {
	vm := goja.New()
	vars := map[string]any{
		"value":    ctx.Value,
		"step":     ctx.Step,
		"interval": ctx.Interval,
		"waited":   ctx.Waited,
		"crossing": ctx.Crossing,
		"tick":     ctx.Tick,
	}
	for name, val := range vars {
		if err := vm.Set(name, val); err != nil {
			return 0, fmt.Errorf("set %s: %w", name, err)
		}
	}

	val, err := vm.RunProgram(e.prog)
	if err != nil {
		return 0, fmt.Errorf("run %q: %w", e.src, err)
	}
	switch val.Export().(type) {
	case int64, float64:
		return int(val.ToInteger()), nil
	default:
		return 0, fmt.Errorf("aging expression %q returned %s, want a number", e.src, val.ExportType())
	}
}
