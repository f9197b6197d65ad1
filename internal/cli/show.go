package cli

import (
	"encoding/json"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/me/schedsim/internal/tui"
	"github.com/me/schedsim/pkg/model"
)

func newShowCmd() *cobra.Command {
	var dashboard bool

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show a persisted simulation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Get("/api/v1/simulations/" + args[0])
			if err != nil {
				return fmt.Errorf("get simulation: %w", err)
			}

			var run model.Run
			if err := json.Unmarshal(resp.Data, &run); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}

			if dashboard {
				p := tea.NewProgram(
					tui.New(tui.Config{Result: run.Result, Label: run.Label}),
					tea.WithAltScreen(),
				)
				_, err := p.Run()
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", run.ID, run.CreatedAt.Format("2006-01-02 15:04:05"))
			printResult(cmd, run.Result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dashboard, "dashboard", false, "Open the results dashboard")

	return cmd
}
