package cli

import (
	"fmt"

	"journal_backend/internal/platform/db"

	"github.com/spf13/cobra"
)

// NewMigrateCommand creates the migrate command group.
func NewMigrateCommand(deps Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := db.LoadConfigFromEnv()
			gdb, err := deps.OpenDB(cfg)
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			if err := db.Migrate(cmd.Context(), gdb, cfg.Driver); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrations applied (%s)\n", cfg.Driver)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := db.LoadConfigFromEnv()
			gdb, err := deps.OpenDB(cfg)
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			return db.Status(cmd.Context(), gdb, cfg.Driver)
		},
	})

	return cmd
}
