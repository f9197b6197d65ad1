package sched

// AgingContext carries everything a custom aging rule may look at when
// adjusting one process at one interval crossing.
type AgingContext struct {
	ProcessID string // process being aged
	Tick      int    // current simulated time
	Waited    int    // ticks waited since the process last became ready
	Crossing  int    // 1-based interval crossing being applied
	Interval  int    // configured aging interval
	Step      int    // configured aging step
	Value     int    // current effective priority or effective remaining
}

// AgingFunc computes the new effective value for one aging application.
// When nil, the linear rule value-step applies. The aging module enforces
// its floors on whatever the function returns.
type AgingFunc func(AgingContext) int

// Config holds the tunables of one simulation run.
type Config struct {
	// TimeQuantum is the Round Robin slice length. Ignored by other
	// policies; must be positive when Policy is RoundRobin.
	TimeQuantum int `json:"time_quantum" yaml:"time_quantum"`

	// AgingEnabled turns on periodic adjustment of waiting processes.
	AgingEnabled bool `json:"aging_enabled" yaml:"aging_enabled"`

	// AgingInterval is the number of waited ticks between adjustments.
	AgingInterval int `json:"aging_interval" yaml:"aging_interval"`

	// AgingStep is the magnitude of one adjustment.
	AgingStep int `json:"aging_step" yaml:"aging_step"`

	// PriorityFloor is the best (lowest) value aging may drive an
	// effective priority to.
	PriorityFloor int `json:"priority_floor" yaml:"priority_floor"`

	// StarvationThreshold flags processes whose accumulated waiting time
	// strictly exceeds it while unfinished.
	StarvationThreshold int `json:"starvation_threshold" yaml:"starvation_threshold"`

	// AgingFunc optionally replaces the linear aging rule. Not
	// serialized; wire it up in code (see internal/agingexpr for the
	// expression-backed variant).
	AgingFunc AgingFunc `json:"-" yaml:"-"`
}

// DefaultConfig mirrors the defaults of the interactive tooling.
func DefaultConfig() Config {
	return Config{
		TimeQuantum:         2,
		AgingInterval:       2,
		AgingStep:           1,
		PriorityFloor:       0,
		StarvationThreshold: 10,
	}
}

// validate checks the parts of the configuration a run depends on.
func (c Config) validate(policy Policy) error {
	if !policy.Valid() {
		return &UnknownPolicyError{Name: string(policy)}
	}
	if policy == RoundRobin && c.TimeQuantum <= 0 {
		return &InvalidQuantumError{Quantum: c.TimeQuantum}
	}
	if c.AgingEnabled && (c.AgingInterval <= 0 || c.AgingStep <= 0) {
		return &InvalidConfigError{Field: "aging", Reason: "interval and step must be positive"}
	}
	return nil
}
