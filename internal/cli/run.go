package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/me/schedsim/internal/agingexpr"
	"github.com/me/schedsim/internal/config"
	"github.com/me/schedsim/internal/export"
	"github.com/me/schedsim/internal/tui"
	"github.com/me/schedsim/pkg/sched"
)

// resolveScenario applies a policy override and compiles the aging
// expression, returning everything needed to simulate.
func resolveScenario(sc *config.Scenario, policyOverride string) (sched.Policy, sched.Config, error) {
	if policyOverride != "" {
		sc.Policy = policyOverride
	}
	policy, err := sc.ResolvePolicy()
	if err != nil {
		return "", sched.Config{}, err
	}

	cfg := sc.Config
	if sc.AgingExpr != "" {
		ev, err := agingexpr.Compile(sc.AgingExpr)
		if err != nil {
			return "", sched.Config{}, fmt.Errorf("aging expression: %w", err)
		}
		cfg.AgingFunc = ev.Func()
	}
	return policy, cfg, nil
}

func newRunCmd() *cobra.Command {
	var (
		policyOverride string
		csvPath        string
		timelinePath   string
		dashboard      bool
		asJSON         bool
	)

	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Run a simulation locally",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := config.LoadScenario(args[0])
			if err != nil {
				return err
			}
			policy, cfg, err := resolveScenario(sc, policyOverride)
			if err != nil {
				return err
			}

			res, err := sched.Run(sc.Processes, policy, cfg)
			if err != nil {
				return fmt.Errorf("simulate: %w", err)
			}
			logger.Debug("simulation finished", "policy", policy, "ticks", res.TotalTicks)

			if csvPath != "" {
				if err := writeCSVFile(csvPath, res, export.WriteCSV); err != nil {
					return err
				}
			}
			if timelinePath != "" {
				if err := writeCSVFile(timelinePath, res, export.WriteTimelineCSV); err != nil {
					return err
				}
			}

			if dashboard {
				p := tea.NewProgram(
					tui.New(tui.Config{Result: res, Label: sc.Label}),
					tea.WithAltScreen(),
				)
				_, err := p.Run()
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			printResult(cmd, res)
			return nil
		},
	}

	cmd.Flags().StringVar(&policyOverride, "policy", "", "Override the scenario's policy")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Write per-process metrics CSV to this file")
	cmd.Flags().StringVar(&timelinePath, "timeline-csv", "", "Write the execution timeline CSV to this file")
	cmd.Flags().BoolVar(&dashboard, "dashboard", false, "Open the results dashboard")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full result as JSON")

	return cmd
}

func writeCSVFile(path string, res *sched.Result, write func(w io.Writer, res *sched.Result) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printResult(cmd *cobra.Command, res *sched.Result) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "policy: %s   ticks: %d-%d\n\n", res.Policy, res.StartTick, res.EndTick())

	fmt.Fprint(out, "timeline: ")
	for i, iv := range res.Intervals {
		if i > 0 {
			fmt.Fprint(out, " ")
		}
		id := iv.ProcessID
		if iv.Idle() {
			id = "idle"
		}
		fmt.Fprintf(out, "%s[%d-%d]", id, iv.Start, iv.End)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out)

	fmt.Fprintf(out, "%-12s  %7s  %5s  %4s  %5s  %5s  %4s  %4s  %4s\n",
		"ID", "ARRIVAL", "BURST", "PRIO", "START", "COMPL", "WAIT", "TURN", "RESP")
	for _, pm := range res.Processes {
		marker := ""
		if pm.Starved {
			marker = "  (starved)"
		}
		fmt.Fprintf(out, "%-12s  %7d  %5d  %4d  %5d  %5d  %4d  %4d  %4d%s\n",
			pm.ID, pm.Arrival, pm.Burst, pm.FinalPriority,
			pm.Start, pm.Completion, pm.Waiting, pm.Turnaround, pm.Response, marker)
	}

	fmt.Fprintf(out, "\navg waiting %.2f   avg turnaround %.2f   avg response %.2f\n",
		res.Averages.AvgWaiting, res.Averages.AvgTurnaround, res.Averages.AvgResponse)
	if len(res.AgingEvents) > 0 {
		fmt.Fprintf(out, "aging adjustments: %d\n", len(res.AgingEvents))
	}
}
