package server

import "net/http"

type endpointInfo struct {
	Path        string   `json:"path"`
	Methods     []string `json:"methods"`
	Description string   `json:"description"`
}

type discoveryResponse struct {
	Name        string         `json:"name"`
	Version     string         `json:"version"`
	Description string         `json:"description"`
	Endpoints   []endpointInfo `json:"endpoints"`
}

func (s *Server) handleDiscovery(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	respondOK(w, reqID, discoveryResponse{
		Name:        "schedsim API",
		Version:     "v1",
		Description: "Deterministic CPU scheduling simulator — run, persist, and compare scheduling policies",
		Endpoints: []endpointInfo{
			{"/api/v1/policies", []string{"GET"}, "List supported scheduling policies"},
			{"/api/v1/simulations", []string{"GET", "POST"}, "Run and list persisted simulations. GET accepts ?policy= filter"},
			{"/api/v1/simulations/{id}", []string{"GET", "DELETE"}, "Single simulation detail"},
			{"/api/v1/simulations/{id}/summary", []string{"GET"}, "Percentile summary of per-process metrics"},
			{"/api/v1/simulations/{id}/export", []string{"GET"}, "CSV export. ?kind=processes (default) or timeline"},
			{"/api/v1/compare", []string{"POST"}, "Run the same workload with and without aging"},
			{"/api/v1/samples", []string{"POST"}, "Sample a process workload from the host or generate one"},
			{"/api/v1/health", []string{"GET"}, "Server health and version"},
		},
	})
}
