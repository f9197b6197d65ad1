package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/me/schedsim/pkg/sched"
)

func newPoliciesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "policies",
		Short: "List supported scheduling policies",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-22s  %-11s  %s\n", "NAME", "PREEMPTIVE", "NOTES")
			for _, p := range sched.Policies() {
				preemptive := "no"
				if p.Preemptive() {
					preemptive = "yes"
				}
				notes := ""
				if p == sched.RoundRobin {
					notes = "uses time_quantum"
				}
				fmt.Fprintf(out, "%-22s  %-11s  %s\n", p, preemptive, notes)
			}
			return nil
		},
	}
}
