package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/me/schedsim/internal/config"
	"github.com/me/schedsim/pkg/model"
)

func newSubmitCmd() *cobra.Command {
	var policyOverride string

	cmd := &cobra.Command{
		Use:   "submit <scenario.yaml>",
		Short: "Run a scenario on the server and persist the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := config.LoadScenario(args[0])
			if err != nil {
				return err
			}
			if policyOverride != "" {
				sc.Policy = policyOverride
			}

			req := map[string]any{
				"label":      sc.Label,
				"policy":     sc.Policy,
				"config":     sc.Config,
				"aging_expr": sc.AgingExpr,
				"processes":  sc.Processes,
			}
			resp, err := client.Post("/api/v1/simulations", req)
			if err != nil {
				return fmt.Errorf("submit simulation: %w", err)
			}

			var run model.Run
			if err := json.Unmarshal(resp.Data, &run); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "created %s\n", run.ID)
			printResult(cmd, run.Result)
			return nil
		},
	}

	cmd.Flags().StringVar(&policyOverride, "policy", "", "Override the scenario's policy")

	return cmd
}
