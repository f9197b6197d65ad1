package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/me/schedsim/internal/config"
	"github.com/me/schedsim/internal/sampler"
	"github.com/me/schedsim/pkg/sched"
)

func newSampleCmd() *cobra.Command {
	var (
		count     int
		seed      int64
		synthetic bool
		policy    string
		label     string
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Sample live processes into a scenario file",
		Long: "sample reads running processes from /proc (or generates a synthetic set\n" +
			"with --synthetic) and writes a ready-to-run scenario YAML to stdout.",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				procs []sched.ProcessInput
				err   error
			)
			if synthetic {
				procs = sampler.Synthetic(count, seed)
			} else {
				procs, err = sampler.Sample(sampler.Options{Count: count, Seed: seed})
				if err != nil {
					return fmt.Errorf("sample processes: %w", err)
				}
			}
			logger.Debug("sampled workload", "processes", len(procs), "synthetic", synthetic)

			sc := &config.Scenario{
				Label:     label,
				Policy:    policy,
				Config:    sched.DefaultConfig(),
				Processes: procs,
			}
			return sc.Encode(cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVar(&count, "count", 10, "Maximum number of processes to sample")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Seed for synthesized burst/arrival values")
	cmd.Flags().BoolVar(&synthetic, "synthetic", false, "Generate a synthetic set instead of reading /proc")
	cmd.Flags().StringVar(&policy, "policy", "rr", "Policy to write into the scenario")
	cmd.Flags().StringVar(&label, "label", "sampled workload", "Scenario label")

	return cmd
}
