package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/osse101/TaskQuest_Go/internal/config"
	"github.com/osse101/TaskQuest_Go/internal/database"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrator(cmd.Context(), func(ctx context.Context, m *database.Migrator) error {
					n, err := m.Up(ctx)
					if err != nil {
						return err
					}
					printStatus(cmd.OutOrStdout(), "✓", fmt.Sprintf("Applied %d migration(s)", n), color.FgGreen)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the latest migration",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrator(cmd.Context(), func(ctx context.Context, m *database.Migrator) error {
					version, err := m.Down(ctx)
					if err != nil {
						return err
					}
					printStatus(cmd.OutOrStdout(), "✓", fmt.Sprintf("Rolled back version %d", version), color.FgGreen)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "List migrations and whether they are applied",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrator(cmd.Context(), func(ctx context.Context, m *database.Migrator) error {
					statuses, err := m.Status(ctx)
					if err != nil {
						return err
					}
					printHeader(cmd.OutOrStdout(), "Migrations")
					for _, s := range statuses {
						if s.Applied {
							printStatus(cmd.OutOrStdout(), "✓", s.Path, color.FgGreen)
						} else {
							printStatus(cmd.OutOrStdout(), "•", s.Path+" (pending)", color.FgYellow)
						}
					}
					return nil
				})
			},
		},
	)
	return cmd
}

// withMigrator connects with the application config and runs fn
func withMigrator(ctx context.Context, fn func(context.Context, *database.Migrator) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return err
	}
	defer pool.Close()

	return fn(ctx, database.NewMigrator(pool))
}
