package cli

import (
	"fmt"

	"github.com/habit-hero/habit-hero/internal/infrastructure/persistence/postgres"
	"github.com/spf13/cobra"
)

func newMigrateCmd(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the PostgreSQL schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd, open, func(m *postgres.Migrator) error {
				n, err := m.Migrate(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Applied %d migration(s)\n", n)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the latest migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd, open, func(m *postgres.Migrator) error {
				if err := m.Rollback(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Rolled back latest migration")
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "List migrations and whether they are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd, open, func(m *postgres.Migrator) error {
				migrations, err := m.Status(cmd.Context())
				if err != nil {
					return err
				}
				printMigrations(cmd.OutOrStdout(), migrations)
				return nil
			})
		},
	})

	return cmd
}

func withMigrator(cmd *cobra.Command, open Opener, fn func(*postgres.Migrator) error) error {
	return withApp(cmd, open, OpenOptions{SkipMigrations: true}, func(app *App) error {
		if app.Conn == nil {
			return ErrMigrationsNeedPostgres
		}
		return fn(postgres.NewMigrator(app.Conn))
	})
}
