package database

import (
	"errors"
	"fmt"
	"net/url"

	"mood-journal/migrations"
	"mood-journal/pkg/common"
	"mood-journal/pkg/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// MigrateUp applies every pending migration. No pending migrations is not an error.
func MigrateUp(cfg config.Database) error {
	return runMigrations(cfg, func(m *migrate.Migrate) error { return m.Up() })
}

// MigrateDown reverts the last applied migration.
func MigrateDown(cfg config.Database) error {
	return runMigrations(cfg, func(m *migrate.Migrate) error { return m.Steps(-1) })
}

func runMigrations(cfg config.Database, step func(*migrate.Migrate) error) error {
	driver := normalizeDriver(cfg.Driver)
	switch driver {
	case common.DriverSQLite:
		if err := ensureParentDir(cfg.Path); err != nil {
			return err
		}
	case common.DriverPostgres:
		if err := EnsurePostgresDatabase(cfg); err != nil {
			return err
		}
	}

	databaseURL, err := MigrationURL(cfg)
	if err != nil {
		return err
	}

	src, err := iofs.New(migrations.FS, driver)
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}
	defer m.Close()

	if err := step(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

// MigrationURL returns the golang-migrate database URL for the configured driver.
func MigrationURL(cfg config.Database) (string, error) {
	switch normalizeDriver(cfg.Driver) {
	case common.DriverSQLite:
		return "sqlite3://" + cfg.Path, nil
	case common.DriverPostgres:
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(cfg.User, cfg.Password),
			Host:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Path:     "/" + cfg.DBName,
			RawQuery: "sslmode=" + cfg.SSLMode,
		}
		return u.String(), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
}
