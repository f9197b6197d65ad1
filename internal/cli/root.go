package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/me/schedsim/internal/logging"
)

var (
	flagServer    string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	logger *slog.Logger
	client *Client
)

// defaultServer returns the default server URL, checking SCHEDSIM_SERVER env var first.
func defaultServer() string {
	if s := os.Getenv("SCHEDSIM_SERVER"); s != "" {
		return s
	}
	return "http://localhost:8080"
}

// NewRootCmd creates the root cobra command for the schedsim CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "schedsim",
		Short: "schedsim — deterministic CPU scheduling simulator",
		Long: "schedsim runs CPU scheduling simulations (FCFS, SJF, SRTF, Round Robin,\n" +
			"Priority) over a described process set, locally or against a schedsim server.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagDebug {
				flagLogLevel = "debug"
			}
			logger = logging.NewLogger(logging.ParseLevel(flagLogLevel), flagLogFormat)
			client = NewClient(flagServer, logger)
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagServer, "server", defaultServer(), "schedsim server URL (or SCHEDSIM_SERVER env)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newRunCmd(),
		newCompareCmd(),
		newPoliciesCmd(),
		newSampleCmd(),
		newSubmitCmd(),
		newListCmd(),
		newShowCmd(),
		newExportCmd(),
	)

	return root
}
