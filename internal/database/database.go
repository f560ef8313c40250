package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vancomm/shieldsweeper/internal/config"
)

//go:embed migrations/*.sql
var Migrations embed.FS

func Connect(ctx context.Context, cfg config.PostgresConfig) (*pgxpool.Pool, error) {
	poolConfig, err := cfg.PgxpoolConfig()
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}
	return pool, nil
}

func NewMigrator(url string, migrations fs.FS) (*migrate.Migrate, error) {
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("unable to create migrations iofs: %w", err)
	}
	migrator, err := migrate.NewWithSourceInstance("iofs", source, url)
	if err != nil {
		return nil, fmt.Errorf("unable to create migrator: %w", err)
	}
	return migrator, nil
}

// migrator is the part of *migrate.Migrate that Migrate drives.
type migrator interface {
	Up() error
	Version() (uint, bool, error)
	Close() (error, error)
}

// Migrate applies every pending migration from the migrations directory of
// the given filesystem and reports the resulting version. The migrator is
// closed before Migrate returns.
func Migrate(url string, migrations fs.FS) (uint, bool, error) {
	m, err := NewMigrator(url, migrations)
	if err != nil {
		return 0, false, err
	}
	return migrateUp(m)
}

func migrateUp(m migrator) (version uint, dirty bool, err error) {
	defer func() {
		srcErr, dbErr := m.Close()
		if closeErr := errors.Join(srcErr, dbErr); closeErr != nil && err == nil {
			err = fmt.Errorf("unable to close migrator: %w", closeErr)
		}
	}()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, false, fmt.Errorf("failed to migrate database: %w", err)
	}
	version, dirty, err = m.Version()
	if err != nil {
		return 0, false, fmt.Errorf("failed to check migration version: %w", err)
	}
	return version, dirty, nil
}

func ConnectAndMigrate(ctx context.Context, cfg config.PostgresConfig) (*pgxpool.Pool, error) {
	url, err := cfg.ConnString()
	if err != nil {
		return nil, err
	}
	if _, _, err := Migrate(url, Migrations); err != nil {
		return nil, err
	}
	return Connect(ctx, cfg)
}
