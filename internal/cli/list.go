package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/me/schedsim/pkg/model"
)

func newListCmd() *cobra.Command {
	var policy string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List persisted simulations",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/simulations"
			if policy != "" {
				path += "?policy=" + policy
			}
			resp, err := client.Get(path)
			if err != nil {
				return fmt.Errorf("list simulations: %w", err)
			}

			var runs []model.Run
			if err := json.Unmarshal(resp.Data, &runs); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No simulations found.")
				return nil
			}

			fmt.Fprintf(out, "%-40s  %-20s  %-20s  %6s  %s\n", "ID", "POLICY", "LABEL", "TICKS", "CREATED")
			for _, run := range runs {
				ticks := 0
				if run.Result != nil {
					ticks = run.Result.TotalTicks
				}
				fmt.Fprintf(out, "%-40s  %-20s  %-20s  %6d  %s\n",
					run.ID, run.Policy, run.Label, ticks, run.CreatedAt.Format(time.RFC3339))
			}

			if resp.Pagination != nil && resp.Pagination.HasMore {
				fmt.Fprintf(out, "\n(%d of %d shown)\n", len(runs), resp.Pagination.Total)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&policy, "policy", "", "Only show runs for this policy")

	return cmd
}
