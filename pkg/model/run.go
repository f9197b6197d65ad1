package model

import (
	"time"

	"github.com/me/schedsim/pkg/sched"
)

// Run is one persisted simulation run: the inputs it was given, the
// configuration it ran under, and the result it produced. The result
// itself is immutable; a stored run is only ever created or deleted.
type Run struct {
	ID        string               `json:"id"`
	Label     string               `json:"label,omitempty"`
	Policy    sched.Policy         `json:"policy"`
	Inputs    []sched.ProcessInput `json:"inputs"`
	Config    sched.Config         `json:"config"`
	Result    *sched.Result        `json:"result"`
	CreatedAt time.Time            `json:"created_at"`
}
