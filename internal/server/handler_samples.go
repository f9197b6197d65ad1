package server

import (
	"encoding/json"
	"net/http"

	"github.com/me/schedsim/internal/sampler"
	"github.com/me/schedsim/pkg/model"
	"github.com/me/schedsim/pkg/sched"
)

type sampleRequest struct {
	Count     int   `json:"count"`
	Seed      int64 `json:"seed"`
	Synthetic bool  `json:"synthetic"`
}

type sampleResponse struct {
	Source    string               `json:"source"`
	Processes []sched.ProcessInput `json:"processes"`
}

func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	var req sampleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, reqID, http.StatusBadRequest, &model.APIError{
			Code:    model.ErrValidation,
			Message: "Invalid JSON body: " + err.Error(),
		})
		return
	}

	if req.Synthetic {
		count := req.Count
		if count <= 0 {
			count = 10
		}
		respondOK(w, reqID, sampleResponse{
			Source:    "synthetic",
			Processes: sampler.Synthetic(count, req.Seed),
		})
		return
	}

	procs, err := sampler.Sample(sampler.Options{Count: req.Count, Seed: req.Seed})
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: err.Error()})
		return
	}
	respondOK(w, reqID, sampleResponse{Source: "proc", Processes: procs})
}
