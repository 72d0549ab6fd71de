package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-TurnosService/internal/config"
	"github.com/m04kA/SMC-TurnosService/internal/infra/migrator"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage PostgreSQL schema migrations",
	}

	var steps int

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withMigrator(cmd, func(m *migrator.Migrator) error {
				return m.Up()
			})
		},
	}

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back the last N migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withMigrator(cmd, func(m *migrator.Migrator) error {
				return m.Down(steps)
			})
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	force := &cobra.Command{
		Use:   "force <version>",
		Short: "Set schema version without running migrations (clears the dirty flag)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid version %q: %w", args[0], err)
			}
			return opts.withMigrator(cmd, func(m *migrator.Migrator) error {
				return m.Force(version)
			})
		},
	}

	version := &cobra.Command{
		Use:   "version",
		Short: "Print current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withMigrator(cmd, func(m *migrator.Migrator) error {
				v, dirty, err := m.Version()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", v, dirty)
				return nil
			})
		},
	}

	cmd.AddCommand(up, down, force, version)
	return cmd
}

func (o *rootOptions) withMigrator(cmd *cobra.Command, fn func(m *migrator.Migrator) error) error {
	cfg, log, err := o.loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Database.Driver != config.DriverPostgres {
		return fmt.Errorf("migrations require database.driver=%q, got %q", config.DriverPostgres, cfg.Database.Driver)
	}

	m, err := migrator.New(cfg.Database.DSN(), log)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn("Failed to close migrator: %v", err)
		}
	}()

	return fn(m)
}
