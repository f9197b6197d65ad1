package server

import (
	"net/http"

	"github.com/me/schedsim/pkg/sched"
)

type policyInfo struct {
	Name       string `json:"name"`
	Preemptive bool   `json:"preemptive"`
	UsesSlice  bool   `json:"uses_time_quantum"`
}

func (s *Server) handleListPolicies(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	var out []policyInfo
	for _, p := range sched.Policies() {
		out = append(out, policyInfo{
			Name:       string(p),
			Preemptive: p.Preemptive(),
			UsesSlice:  p == sched.RoundRobin,
		})
	}
	respondOK(w, reqID, out)
}
