package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/BradenHooton/parliament/internal/app"
	"github.com/BradenHooton/parliament/internal/config"
	"github.com/BradenHooton/parliament/internal/seed"
	"github.com/BradenHooton/parliament/internal/services"
	"github.com/BradenHooton/parliament/internal/stats"
	pkgauth "github.com/BradenHooton/parliament/pkg/auth"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

func newStatsCmd(logger func() *slog.Logger) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the attendance statistics view",
		Long: `Print the statistics view computed from current storage.

With in-memory storage the demo fixture is loaded first so there is something to report.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadDatabase()
			if err != nil {
				return err
			}

			log := logger()
			storage, err := app.OpenStorage(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer storage.Close()

			if cfg.Driver == config.StorageMemory {
				fixture, err := seed.Demo()
				if err != nil {
					return err
				}
				if _, err := fixture.Apply(cmd.Context(), storage.SeedRepositories(), pkgauth.NewBcryptHasher(bcrypt.MinCost), seed.Options{}, log); err != nil {
					return err
				}
			}

			summary, err := services.NewStatsService(storage.Legislators, storage.Parties, storage.Sessions, log).Summary(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}
			return printSummary(cmd.OutOrStdout(), summary)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func printSummary(w io.Writer, s *stats.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Legislators\t%d\t(active %d)\n", s.TotalLegislators, s.ActiveLegislators)
	fmt.Fprintf(tw, "Parties\t%d\n", s.TotalParties)
	fmt.Fprintf(tw, "Sessions\t%d\t(completed %d, scheduled %d, cancelled %d)\n",
		s.TotalSessions, s.CompletedSessions, s.ScheduledSessions, s.CancelledSessions)
	fmt.Fprintf(tw, "Average session attendance\t%d%%\n", s.AverageSessionAttendance)
	fmt.Fprintf(tw, "Average stored attendance\t%.1f%%\n", s.OverallAverageAttendance)

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "PARTY\tMEMBERS\tAVG ATTENDANCE")
	for _, p := range s.Parties {
		fmt.Fprintf(tw, "%s\t%d\t%d%%\n", p.Name, p.MemberCount, p.AverageAttendance)
	}

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "LEGISLATOR\tATTENDED\tRATE")
	for _, l := range s.Legislators {
		fmt.Fprintf(tw, "%s\t%d/%d\t%d%%\n", l.Name, l.Attended, l.Completed, l.Percent)
	}

	return tw.Flush()
}
