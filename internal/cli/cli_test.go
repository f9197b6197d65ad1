package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/me/schedsim/internal/config"
	"github.com/me/schedsim/internal/server"
	"github.com/me/schedsim/internal/store"
	"github.com/me/schedsim/pkg/sched"
)

const testScenario = `label: demo
policy: fcfs
processes:
  - id: P1
    arrival: 0
    burst: 5
    priority: 1
  - id: P2
    arrival: 1
    burst: 3
    priority: 2
`

func writeScenario(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(testScenario), 0o644); err != nil {
		t.Fatalf("write scenario: %v", err)
	}
	return path
}

// startTestServer starts a server with an in-memory SQLite store and returns the URL.
func startTestServer(t *testing.T) string {
	t.Helper()
	srvLogger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}))
	st, err := store.NewSQLiteStore(":memory:", srvLogger)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	srv := server.New(config.DefaultServerConfig(), st, srvLogger)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts.URL
}

// execute runs the CLI with the given args and returns captured stdout.
func execute(t *testing.T, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("schedsim %s: %v\noutput: %s", strings.Join(args, " "), err, buf.String())
	}
	return buf.String()
}

func TestRunLocalText(t *testing.T) {
	out := execute(t, "run", writeScenario(t))

	for _, want := range []string{"policy: fcfs", "P1[0-5]", "P2[5-8]", "avg waiting 2.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunLocalJSON(t *testing.T) {
	out := execute(t, "run", writeScenario(t), "--json")

	var res sched.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if res.Policy != sched.FCFS || res.TotalTicks != 8 {
		t.Errorf("result = %s/%d ticks, want fcfs/8", res.Policy, res.TotalTicks)
	}
}

func TestRunPolicyOverride(t *testing.T) {
	out := execute(t, "run", writeScenario(t), "--policy", "sjf", "--json")

	var res sched.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if res.Policy != sched.SJF {
		t.Errorf("policy = %s, want sjf", res.Policy)
	}
}

func TestRunWritesCSV(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "out.csv")
	execute(t, "run", writeScenario(t), "--csv", csvPath)

	data, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d csv lines, want 3", len(lines))
	}
	if !strings.HasPrefix(lines[0], "id,arrival,burst") {
		t.Errorf("csv header = %q", lines[0])
	}
}

func TestCompareLocal(t *testing.T) {
	out := execute(t, "compare", writeScenario(t))

	for _, want := range []string{"WITHOUT", "WITH", "improved:", "avg waiting:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPolicies(t *testing.T) {
	out := execute(t, "policies")

	for _, want := range []string{"fcfs", "sjf", "srtf", "rr", "priority", "priority-preemptive", "uses time_quantum"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestSampleSynthetic(t *testing.T) {
	out := execute(t, "sample", "--synthetic", "--count", "4", "--seed", "7")

	sc, err := config.DecodeScenario(strings.NewReader(out))
	if err != nil {
		t.Fatalf("decode emitted scenario: %v", err)
	}
	if len(sc.Processes) != 4 {
		t.Fatalf("got %d processes, want 4", len(sc.Processes))
	}
	pol, err := sc.ResolvePolicy()
	if err != nil {
		t.Fatalf("resolve policy: %v", err)
	}
	// The emitted scenario must run as-is.
	if _, err := sched.Run(sc.Processes, pol, sc.Config); err != nil {
		t.Errorf("emitted scenario rejected: %v", err)
	}
}

func TestSubmitListShowExport(t *testing.T) {
	url := startTestServer(t)
	scenario := writeScenario(t)

	out := execute(t, "--server", url, "submit", scenario)
	if !strings.Contains(out, "created run_") {
		t.Fatalf("submit output: %s", out)
	}
	first := strings.SplitN(out, "\n", 2)[0]
	runID := strings.TrimPrefix(first, "created ")

	out = execute(t, "--server", url, "list")
	if !strings.Contains(out, runID) || !strings.Contains(out, "demo") {
		t.Errorf("list output missing run:\n%s", out)
	}

	out = execute(t, "--server", url, "list", "--policy", "rr")
	if !strings.Contains(out, "No simulations found.") {
		t.Errorf("filtered list should be empty:\n%s", out)
	}

	out = execute(t, "--server", url, "show", runID)
	if !strings.Contains(out, runID) || !strings.Contains(out, "avg waiting") {
		t.Errorf("show output:\n%s", out)
	}

	out = execute(t, "--server", url, "export", runID)
	if !strings.HasPrefix(out, "id,arrival,burst") {
		t.Errorf("export output:\n%s", out)
	}
}

func TestSubmitServerDown(t *testing.T) {
	var buf bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs([]string{"--server", "http://127.0.0.1:1", "submit", writeScenario(t)})
	if err := root.Execute(); err == nil {
		t.Fatal("expected error when server is unreachable")
	}
}
