// Command parlctl runs maintenance tasks against the parliament records store.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "parlctl",
		Short: "Maintenance tool for the parliament records service",
		Long: `Maintenance tool for the parliament records service.

Storage is selected with the same STORAGE_DRIVER and DB_* variables the API reads.

Available subcommands:
  migrate - Apply or inspect PostgreSQL schema migrations
  seed    - Load the demo roster, sittings and accounts
  stats   - Print the attendance statistics view`,
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level to stderr")

	logger := func() *slog.Logger {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	}

	root.AddCommand(newMigrateCmd(), newSeedCmd(logger), newStatsCmd(logger))
	return root
}
