// Command specdraft builds technical specification reports and quotes from
// PDF datasheets on the command line, without running the API server.
package main

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "specdraft",
		Short: "Technical specification reports from PDF datasheets",
		Long: `specdraft searches PDF datasheets for requirement keywords.

For every keyword it finds the first sentence that mentions it, titles it
with the nearest heading above, and wraps it at 80 columns. The result can
be printed as a plain report or wrapped into a quote document.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			levelName, _ := cmd.Flags().GetString("log-level")
			level, err := log.ParseLevel(levelName)
			if err != nil {
				return fmt.Errorf("invalid --log-level: %w", err)
			}
			log.SetLevel(level)
			log.SetOutput(cmd.ErrOrStderr())
			log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
			return nil
		},
	}

	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(extractCmd())
	rootCmd.AddCommand(reportCmd())

	return rootCmd
}
