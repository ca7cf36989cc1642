package main

import (
	"fmt"

	"github.com/BradenHooton/parliament/internal/config"
	"github.com/BradenHooton/parliament/internal/database"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or inspect PostgreSQL schema migrations",
	}

	for _, direction := range []struct {
		name  string
		short string
	}{
		{database.MigrateUp, "Apply all pending migrations"},
		{database.MigrateDown, "Roll back the most recent migration"},
		{database.MigrateStatus, "Print the state of every migration"},
	} {
		cmd.AddCommand(&cobra.Command{
			Use:   direction.name,
			Short: direction.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := config.LoadDatabase()
				if err != nil {
					return err
				}
				if cfg.Driver != config.StoragePostgres {
					return fmt.Errorf("migrations need STORAGE_DRIVER=%s (got %q)", config.StoragePostgres, cfg.Driver)
				}
				if err := database.Migrate(cmd.Context(), cfg.URL(), direction.name); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "migrate %s: done\n", direction.name)
				return nil
			},
		})
	}
	return cmd
}
