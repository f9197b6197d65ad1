package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var (
		kind    string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "export <run-id>",
		Short: "Export a persisted simulation as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := client.GetRaw("/api/v1/simulations/" + args[0] + "/export?kind=" + kind)
			if err != nil {
				return fmt.Errorf("export simulation: %w", err)
			}

			if outPath == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", outPath, len(data))
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "processes", "Export kind: processes or timeline")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default: stdout)")

	return cmd
}
