package server

import (
	"encoding/json"
	"net/http"

	"github.com/me/schedsim/internal/agingexpr"
	"github.com/me/schedsim/pkg/model"
	"github.com/me/schedsim/pkg/sched"
)

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	var req simulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, reqID, http.StatusBadRequest, &model.APIError{
			Code:    model.ErrValidation,
			Message: "Invalid JSON body: " + err.Error(),
		})
		return
	}

	policy, err := sched.ParsePolicy(req.Policy)
	if err != nil {
		s.recordError()
		respondError(w, reqID, http.StatusBadRequest,
			model.NewValidationError(err.Error(),
				model.FieldError{Field: "policy", Message: err.Error()}))
		return
	}

	cfg := sched.DefaultConfig()
	if req.Config != nil {
		cfg = *req.Config
	}
	if req.AgingExpr != "" {
		ev, err := agingexpr.Compile(req.AgingExpr)
		if err != nil {
			s.recordError()
			respondError(w, reqID, http.StatusBadRequest,
				model.NewValidationError(err.Error(),
					model.FieldError{Field: "aging_expr", Message: err.Error()}))
			return
		}
		cfg.AgingFunc = ev.Func()
	}

	cmp, err := sched.Compare(req.Processes, policy, cfg)
	if err != nil {
		s.recordError()
		respondError(w, reqID, http.StatusBadRequest,
			model.NewValidationError(err.Error()))
		return
	}
	s.recordSimulation(cmp.Without)
	s.recordSimulation(cmp.With)

	s.logger.Info("comparison run",
		"policy", policy, "processes", len(req.Processes), "improved", cmp.Improved)

	respondOK(w, reqID, cmp)
}
