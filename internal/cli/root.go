// Package cli implements the cpusched command-line interface.
package cli

import (
	"log/slog"
	"os"

	"github.com/me/cpusched/internal/logging"
	"github.com/spf13/cobra"
)

var (
	flagServer    string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	logger *slog.Logger
	client *Client
)

// defaultServer returns the default server URL, checking CPUSCHED_SERVER env var first.
func defaultServer() string {
	if s := os.Getenv("CPUSCHED_SERVER"); s != "" {
		return s
	}
	return "http://localhost:8080"
}

// NewRootCmd creates the root cobra command for the cpusched CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cpusched",
		Short: "cpusched: CPU scheduling simulator",
		Long: "cpusched simulates FCFS, SJF and Round-Robin scheduling of a process set,\n" +
			"printing the Gantt chart and per-process metrics. Simulations can also be\n" +
			"stored on a cpusched server.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.Setup(flagLogLevel, flagLogFormat, flagDebug)
			client = NewClient(flagServer, logger)
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagServer, "server", defaultServer(), "cpusched server URL (or CPUSCHED_SERVER env)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newSimulateCmd(),
		newGenerateCmd(),
		newSubmitCmd(),
		newListCmd(),
		newShowCmd(),
		newDeleteCmd(),
	)

	return root
}
