package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/BradenHooton/parliament/internal/app"
	"github.com/BradenHooton/parliament/internal/config"
	"github.com/BradenHooton/parliament/internal/seed"
	pkgauth "github.com/BradenHooton/parliament/pkg/auth"
	"github.com/spf13/cobra"
)

func newSeedCmd(logger func() *slog.Logger) *cobra.Command {
	var (
		password   string
		bcryptCost int
		file       string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the demo roster, sittings and accounts",
		Long: `Load the demo fixture into storage.

The roster and sittings are written only when no legislator exists yet.
Accounts whose login is already taken are left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fixture, err := loadFixture(file)
			if err != nil {
				return err
			}

			cfg, err := config.LoadDatabase()
			if err != nil {
				return err
			}
			if cfg.Driver == config.StorageMemory {
				return fmt.Errorf("seeding in-memory storage has no lasting effect; set STORAGE_DRIVER=%s", config.StoragePostgres)
			}

			storage, err := app.OpenStorage(cmd.Context(), cfg, logger())
			if err != nil {
				return err
			}
			defer storage.Close()

			result, err := fixture.Apply(cmd.Context(), storage.SeedRepositories(), pkgauth.NewBcryptHasher(bcryptCost),
				seed.Options{AccountPassword: password}, logger())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.RosterSkipped {
				fmt.Fprintln(out, "roster already populated, only accounts were considered")
			}
			fmt.Fprintf(out, "parties: %d, legislators: %d, sessions: %d, accounts: %d\n",
				result.Parties, result.Legislators, result.Sessions, result.Accounts)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", os.Getenv("SEED_ACCOUNT_PASSWORD"), "replace every fixture account password")
	cmd.Flags().IntVar(&bcryptCost, "bcrypt-cost", pkgauth.DefaultBcryptCost, "bcrypt cost for seeded passwords")
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML fixture to load instead of the built-in demo")
	return cmd
}

func loadFixture(path string) (*seed.Fixture, error) {
	if path == "" {
		return seed.Demo()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return seed.Parse(data)
}
