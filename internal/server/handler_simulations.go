package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/me/schedsim/internal/agingexpr"
	"github.com/me/schedsim/internal/export"
	"github.com/me/schedsim/internal/stats"
	"github.com/me/schedsim/pkg/model"
	"github.com/me/schedsim/pkg/sched"
)

type simulationRequest struct {
	Label     string               `json:"label"`
	Policy    string               `json:"policy"`
	Config    *sched.Config        `json:"config"`
	AgingExpr string               `json:"aging_expr"`
	Processes []sched.ProcessInput `json:"processes"`
}

func (s *Server) handleCreateSimulation(w http.ResponseWriter, r *http.Request) {
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

	res, err := sched.Run(req.Processes, policy, cfg)
	if err != nil {
		s.recordError()
		respondError(w, reqID, http.StatusBadRequest,
			model.NewValidationError(err.Error()))
		return
	}
	s.recordSimulation(res)

	run := &model.Run{
		ID:        "run_" + uuid.New().String(),
		Label:     req.Label,
		Policy:    policy,
		Inputs:    req.Processes,
		Config:    cfg,
		Result:    res,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.CreateRun(r.Context(), run); err != nil {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: err.Error()})
		return
	}

	s.logger.Info("simulation created",
		"id", run.ID, "policy", policy, "processes", len(req.Processes), "ticks", res.TotalTicks)

	respondCreated(w, reqID, run)
}

func (s *Server) handleListSimulations(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	opts := model.DefaultListOptions()
	if policy := r.URL.Query().Get("policy"); policy != "" {
		pol, err := sched.ParsePolicy(policy)
		if err != nil {
			respondError(w, reqID, http.StatusBadRequest,
				model.NewValidationError(err.Error(),
					model.FieldError{Field: "policy", Message: err.Error()}))
			return
		}
		opts.Policy = string(pol)
	}

	runs, total, err := s.store.ListRuns(r.Context(), opts)
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: err.Error()})
		return
	}

	respondList(w, reqID, runs, &model.Pagination{
		Total:   total,
		Limit:   opts.Limit,
		Offset:  opts.Offset,
		HasMore: opts.Offset+opts.Limit < total,
	})
}

// getRun loads a run and writes the appropriate error response when it
// cannot be served. Returns nil if a response has already been written.
func (s *Server) getRun(w http.ResponseWriter, r *http.Request, reqID string) *model.Run {
	id := chi.URLParam(r, "id")

	run, err := s.store.GetRun(r.Context(), id)
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: err.Error()})
		return nil
	}
	if run == nil {
		respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("simulation", id))
		return nil
	}
	return run
}

func (s *Server) handleGetSimulation(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	run := s.getRun(w, r, reqID)
	if run == nil {
		return
	}
	respondOK(w, reqID, run)
}

func (s *Server) handleDeleteSimulation(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	run := s.getRun(w, r, reqID)
	if run == nil {
		return
	}

	if err := s.store.DeleteRun(r.Context(), run.ID); err != nil {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: err.Error()})
		return
	}
	respondOK(w, reqID, map[string]any{"deleted": true})
}

func (s *Server) handleSimulationSummary(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	run := s.getRun(w, r, reqID)
	if run == nil {
		return
	}
	respondOK(w, reqID, stats.Summarize(run.Result))
}

func (s *Server) handleExportSimulation(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	run := s.getRun(w, r, reqID)
	if run == nil {
		return
	}

	kind := r.URL.Query().Get("kind")
	if kind == "" {
		kind = "processes"
	}
	if kind != "processes" && kind != "timeline" {
		respondError(w, reqID, http.StatusBadRequest,
			model.NewValidationError("unknown export kind "+kind,
				model.FieldError{Field: "kind", Message: "must be processes or timeline"}))
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+run.ID+"_"+kind+`.csv"`)

	var err error
	if kind == "timeline" {
		err = export.WriteTimelineCSV(w, run.Result)
	} else {
		err = export.WriteCSV(w, run.Result)
	}
	if err != nil {
		s.logger.Error("csv export", "id", run.ID, "error", err)
	}
}

func (s *Server) recordSimulation(res *sched.Result) {
	if s.collector != nil {
		s.collector.RecordSimulation(res)
	}
}

func (s *Server) recordError() {
	if s.collector != nil {
		s.collector.RecordError()
	}
}
