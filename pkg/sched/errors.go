package sched

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when a simulation is started with no processes.
var ErrEmptyInput = errors.New("sched: no processes to schedule")

// ErrIncompleteSimulation is returned when metrics are requested for a
// registry that still has unfinished processes.
var ErrIncompleteSimulation = errors.New("sched: metrics requested before all processes completed")

// InvalidProcessError reports a process definition that failed validation.
type InvalidProcessError struct {
	ID     string
	Field  string
	Reason string
}

func (e *InvalidProcessError) Error() string {
	return fmt.Sprintf("invalid process %q: %s: %s", e.ID, e.Field, e.Reason)
}

// InvalidQuantumError reports a Round Robin run configured with a
// non-positive time quantum.
type InvalidQuantumError struct {
	Quantum int
}

func (e *InvalidQuantumError) Error() string {
	return fmt.Sprintf("invalid time quantum %d: must be positive for round robin", e.Quantum)
}

// InvalidConfigError reports a simulation configuration value that failed
// validation.
type InvalidConfigError struct {
	Field  string
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s: %s", e.Field, e.Reason)
}

// UnknownPolicyError reports a policy name that is not part of the
// supported set.
type UnknownPolicyError struct {
	Name string
}

func (e *UnknownPolicyError) Error() string {
	return fmt.Sprintf("unknown scheduling policy %q", e.Name)
}
