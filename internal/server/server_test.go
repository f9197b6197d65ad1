package server

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/me/schedsim/internal/config"
	"github.com/me/schedsim/internal/store"
	"github.com/me/schedsim/internal/telemetry"
	"github.com/me/schedsim/pkg/model"
	"github.com/me/schedsim/pkg/sched"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}))
	st, err := store.NewSQLiteStore(":memory:", logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := st.Migrate(t.Context()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	collector := telemetry.NewCollectorWithRegistry(prometheus.NewRegistry())
	return New(config.DefaultServerConfig(), st, logger, WithCollector(collector))
}

// envelope is used to decode the standard response envelope.
type envelope struct {
	Status     string            `json:"status"`
	RequestID  string            `json:"request_id"`
	Timestamp  string            `json:"timestamp"`
	Data       json.RawMessage   `json:"data"`
	Pagination *model.Pagination `json:"pagination"`
	Error      *model.APIError   `json:"error"`
}

func do(t *testing.T, srv *Server, method, path, body string, wantStatus int) envelope {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	if w.Code != wantStatus {
		t.Fatalf("%s %s: status=%d, want %d, body=%s", method, path, w.Code, wantStatus, w.Body.String())
	}
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: invalid JSON: %v", method, path, err)
	}
	return env
}

func doGet(t *testing.T, srv *Server, path string) envelope {
	t.Helper()
	return do(t, srv, "GET", path, "", http.StatusOK)
}

const workloadBody = `{
	"label": "demo",
	"policy": "fcfs",
	"processes": [
		{"id": "P1", "arrival": 0, "burst": 5, "priority": 1},
		{"id": "P2", "arrival": 1, "burst": 3, "priority": 2}
	]
}`

func createSimulation(t *testing.T, srv *Server) model.Run {
	t.Helper()
	env := do(t, srv, "POST", "/api/v1/simulations", workloadBody, http.StatusCreated)
	var run model.Run
	if err := json.Unmarshal(env.Data, &run); err != nil {
		t.Fatalf("decode run: %v", err)
	}
	return run
}

func TestDiscovery(t *testing.T) {
	srv := testServer(t)
	env := doGet(t, srv, "/api/v1/")
	if env.Status != "ok" {
		t.Errorf("status = %q, want ok", env.Status)
	}
	if env.RequestID == "" {
		t.Error("request_id is empty")
	}

	var data struct {
		Name      string `json:"name"`
		Endpoints []struct {
			Path string `json:"path"`
		} `json:"endpoints"`
	}
	json.Unmarshal(env.Data, &data)
	if data.Name != "schedsim API" {
		t.Errorf("name = %q, want schedsim API", data.Name)
	}
	if len(data.Endpoints) < 6 {
		t.Errorf("endpoints count = %d, want >= 6", len(data.Endpoints))
	}
}

func TestHealth(t *testing.T) {
	srv := testServer(t)
	env := doGet(t, srv, "/api/v1/health")

	var data struct {
		Status string `json:"status"`
		Store  string `json:"store"`
	}
	json.Unmarshal(env.Data, &data)
	if data.Status != "healthy" {
		t.Errorf("health status = %q, want healthy", data.Status)
	}
	if data.Store != "ok" {
		t.Errorf("store = %q, want ok", data.Store)
	}
}

func TestListPolicies(t *testing.T) {
	srv := testServer(t)
	env := doGet(t, srv, "/api/v1/policies")

	var data []struct {
		Name       string `json:"name"`
		Preemptive bool   `json:"preemptive"`
	}
	json.Unmarshal(env.Data, &data)
	if len(data) != len(sched.Policies()) {
		t.Fatalf("got %d policies, want %d", len(data), len(sched.Policies()))
	}
	byName := map[string]bool{}
	for _, p := range data {
		byName[p.Name] = p.Preemptive
	}
	if !byName["srtf"] {
		t.Error("srtf not marked preemptive")
	}
	if byName["fcfs"] {
		t.Error("fcfs marked preemptive")
	}
}

func TestCreateAndGetSimulation(t *testing.T) {
	srv := testServer(t)

	run := createSimulation(t, srv)
	if run.ID == "" || run.Policy != sched.FCFS {
		t.Fatalf("unexpected run: %+v", run)
	}
	if run.Result == nil || run.Result.TotalTicks != 8 {
		t.Fatalf("result = %+v, want 8 ticks", run.Result)
	}

	env := doGet(t, srv, "/api/v1/simulations/"+run.ID)
	var got model.Run
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != run.ID || got.Label != "demo" {
		t.Errorf("round-trip mismatch: %+v", got)
	}
}

func TestCreateSimulationValidation(t *testing.T) {
	srv := testServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"bad json", `{`},
		{"unknown policy", `{"policy": "lottery", "processes": [{"id": "P1", "burst": 1}]}`},
		{"no processes", `{"policy": "fcfs", "processes": []}`},
		{"bad burst", `{"policy": "fcfs", "processes": [{"id": "P1", "burst": 0}]}`},
		{"bad aging expr", `{"policy": "fcfs", "aging_expr": "value +", "processes": [{"id": "P1", "burst": 1}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := do(t, srv, "POST", "/api/v1/simulations", tt.body, http.StatusBadRequest)
			if env.Error == nil || env.Error.Code != model.ErrValidation {
				t.Errorf("error = %+v, want %s", env.Error, model.ErrValidation)
			}
		})
	}
}

func TestListSimulations(t *testing.T) {
	srv := testServer(t)
	createSimulation(t, srv)
	createSimulation(t, srv)

	env := doGet(t, srv, "/api/v1/simulations")
	var runs []model.Run
	if err := json.Unmarshal(env.Data, &runs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if env.Pagination == nil || env.Pagination.Total != 2 {
		t.Errorf("pagination = %+v", env.Pagination)
	}

	// Policy filter: accepts aliases, no matching runs for rr.
	env = doGet(t, srv, "/api/v1/simulations?policy=round-robin")
	runs = nil
	json.Unmarshal(env.Data, &runs)
	if len(runs) != 0 {
		t.Errorf("rr filter returned %d runs", len(runs))
	}

	do(t, srv, "GET", "/api/v1/simulations?policy=bogus", "", http.StatusBadRequest)
}

func TestDeleteSimulation(t *testing.T) {
	srv := testServer(t)
	run := createSimulation(t, srv)

	do(t, srv, "DELETE", "/api/v1/simulations/"+run.ID, "", http.StatusOK)
	do(t, srv, "GET", "/api/v1/simulations/"+run.ID, "", http.StatusNotFound)
	do(t, srv, "DELETE", "/api/v1/simulations/"+run.ID, "", http.StatusNotFound)
}

func TestSimulationSummary(t *testing.T) {
	srv := testServer(t)
	run := createSimulation(t, srv)

	env := doGet(t, srv, "/api/v1/simulations/"+run.ID+"/summary")
	var data struct {
		Count   int `json:"count"`
		Waiting struct {
			Min float64 `json:"min"`
			Max float64 `json:"max"`
		} `json:"waiting"`
	}
	json.Unmarshal(env.Data, &data)
	if data.Count != 2 {
		t.Errorf("count = %d, want 2", data.Count)
	}
	// FCFS: P1 waits 0, P2 waits 4.
	if data.Waiting.Min != 0 || data.Waiting.Max != 4 {
		t.Errorf("waiting min/max = %v/%v, want 0/4", data.Waiting.Min, data.Waiting.Max)
	}
}

func TestExportSimulation(t *testing.T) {
	srv := testServer(t)
	run := createSimulation(t, srv)

	req := httptest.NewRequest("GET", "/api/v1/simulations/"+run.ID+"/export", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("export status = %d, body=%s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("Content-Type = %q, want text/csv", ct)
	}
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d csv lines, want 3: %q", len(lines), lines)
	}
	if !strings.HasPrefix(lines[0], "id,arrival,burst") {
		t.Errorf("header = %q", lines[0])
	}

	do(t, srv, "GET", "/api/v1/simulations/"+run.ID+"/export?kind=bogus", "", http.StatusBadRequest)
}

func TestCompare(t *testing.T) {
	srv := testServer(t)

	body := `{
		"policy": "priority",
		"config": {"aging_interval": 2, "aging_step": 1, "starvation_threshold": 10},
		"processes": [
			{"id": "hog", "arrival": 0, "burst": 6, "priority": 1},
			{"id": "mid", "arrival": 1, "burst": 6, "priority": 1},
			{"id": "low", "arrival": 1, "burst": 2, "priority": 9}
		]
	}`
	env := do(t, srv, "POST", "/api/v1/compare", body, http.StatusOK)

	var cmp sched.Comparison
	if err := json.Unmarshal(env.Data, &cmp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cmp.Without == nil || cmp.With == nil {
		t.Fatal("missing results")
	}
	if len(cmp.Deltas) != 3 {
		t.Errorf("got %d deltas, want 3", len(cmp.Deltas))
	}
	if cmp.Without.Config.AgingEnabled || !cmp.With.Config.AgingEnabled {
		t.Error("aging flags not set per side")
	}
}

func TestSampleSynthetic(t *testing.T) {
	srv := testServer(t)

	env := do(t, srv, "POST", "/api/v1/samples", `{"synthetic": true, "count": 5, "seed": 42}`, http.StatusOK)
	var data struct {
		Source    string               `json:"source"`
		Processes []sched.ProcessInput `json:"processes"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if data.Source != "synthetic" {
		t.Errorf("source = %q", data.Source)
	}
	if len(data.Processes) != 5 {
		t.Fatalf("got %d processes, want 5", len(data.Processes))
	}
	// The sampled set must be a valid simulator workload.
	if _, err := sched.Run(data.Processes, sched.RoundRobin, sched.DefaultConfig()); err != nil {
		t.Errorf("sampled workload rejected: %v", err)
	}
}

func TestRequestIDHeader(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	id := w.Header().Get("X-Request-ID")
	if !strings.HasPrefix(id, "req_") {
		t.Errorf("X-Request-ID = %q, want req_ prefix", id)
	}
}
