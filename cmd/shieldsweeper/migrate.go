package main

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"

	"github.com/vancomm/shieldsweeper/internal/database"
)

var errNoPostgres = errors.New("postgres is not configured")

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	var down bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the records store migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := opts.stderrLogger()
			if err != nil {
				return err
			}
			if !opts.cfg.Postgres.Enabled() {
				return errNoPostgres
			}
			url, err := opts.cfg.Postgres.ConnString()
			if err != nil {
				return err
			}

			if down {
				migrator, err := database.NewMigrator(url, database.Migrations)
				if err != nil {
					return err
				}
				defer migrator.Close()
				if err := migrator.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
					return fmt.Errorf("failed to roll back: %w", err)
				}
				log.Info("migrations rolled back")
				return nil
			}

			version, dirty, err := database.Migrate(url, database.Migrations)
			if err != nil {
				return err
			}
			log.WithField("version", version).WithField("dirty", dirty).Info("migration successful")
			return nil
		},
	}

	cmd.Flags().BoolVar(&down, "down", false, "roll back every migration")
	return cmd
}
