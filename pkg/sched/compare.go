package sched

import "sync"

// ProcessDelta reports how aging changed one process's waiting time.
// Saved is positive when aging reduced the wait.
type ProcessDelta struct {
	ID             string `json:"id"`
	WaitingWithout int    `json:"waiting_without"`
	WaitingWith    int    `json:"waiting_with"`
	Saved          int    `json:"saved"`
}

// Comparison is the outcome of running the same input with and without
// aging under one policy.
type Comparison struct {
	Policy   Policy         `json:"policy"`
	Without  *Result        `json:"without"`
	With     *Result        `json:"with"`
	Deltas   []ProcessDelta `json:"deltas"`
	Improved int            `json:"improved"` // processes with a positive delta
}

// Compare runs the with-aging and without-aging simulations concurrently.
// Each run gets its own copy of the inputs and its own registry, so the
// two goroutines share nothing.
func Compare(inputs []ProcessInput, policy Policy, cfg Config) (*Comparison, error) {
	without := cfg
	without.AgingEnabled = false
	with := cfg
	with.AgingEnabled = true
	if with.AgingInterval <= 0 {
		with.AgingInterval = DefaultConfig().AgingInterval
	}
	if with.AgingStep <= 0 {
		with.AgingStep = DefaultConfig().AgingStep
	}

	var (
		wg   sync.WaitGroup
		resA *Result
		resB *Result
		errA error
		errB error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		resA, errA = Run(inputs, policy, without)
	}()
	go func() {
		defer wg.Done()
		resB, errB = Run(inputs, policy, with)
	}()
	wg.Wait()

	if errA != nil {
		return nil, errA
	}
	if errB != nil {
		return nil, errB
	}

	cmp := &Comparison{Policy: policy, Without: resA, With: resB}
	for _, row := range resA.Processes {
		aged, ok := resB.Metrics(row.ID)
		if !ok {
			continue
		}
		d := ProcessDelta{
			ID:             row.ID,
			WaitingWithout: row.Waiting,
			WaitingWith:    aged.Waiting,
			Saved:          row.Waiting - aged.Waiting,
		}
		if d.Saved > 0 {
			cmp.Improved++
		}
		cmp.Deltas = append(cmp.Deltas, d)
	}
	return cmp, nil
}
