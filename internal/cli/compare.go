package cli

import (
	"encoding/json"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/me/schedsim/internal/config"
	"github.com/me/schedsim/internal/tui"
	"github.com/me/schedsim/pkg/sched"
)

func newCompareCmd() *cobra.Command {
	var (
		policyOverride string
		dashboard      bool
		asJSON         bool
	)

	cmd := &cobra.Command{
		Use:   "compare <scenario.yaml>",
		Short: "Run a scenario with and without aging and compare waits",
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

			cmp, err := sched.Compare(sc.Processes, policy, cfg)
			if err != nil {
				return fmt.Errorf("simulate: %w", err)
			}

			if dashboard {
				p := tea.NewProgram(
					tui.New(tui.Config{Comparison: cmp, Label: sc.Label}),
					tea.WithAltScreen(),
				)
				_, err := p.Run()
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(cmp)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "policy: %s\n\n", cmp.Policy)
			fmt.Fprintf(out, "%-12s  %10s  %10s  %6s\n", "ID", "WITHOUT", "WITH", "SAVED")
			for _, d := range cmp.Deltas {
				fmt.Fprintf(out, "%-12s  %10d  %10d  %6d\n", d.ID, d.WaitingWithout, d.WaitingWith, d.Saved)
			}
			fmt.Fprintf(out, "\nimproved: %d of %d\n", cmp.Improved, len(cmp.Deltas))
			fmt.Fprintf(out, "avg waiting: %.2f without, %.2f with\n",
				cmp.Without.Averages.AvgWaiting, cmp.With.Averages.AvgWaiting)
			fmt.Fprintf(out, "starved: %d without, %d with\n",
				len(cmp.Without.Starved), len(cmp.With.Starved))
			return nil
		},
	}

	cmd.Flags().StringVar(&policyOverride, "policy", "", "Override the scenario's policy")
	cmd.Flags().BoolVar(&dashboard, "dashboard", false, "Open the comparison dashboard")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full comparison as JSON")

	return cmd
}
