package database

import (
	"database/sql"
	"errors"
	"fmt"

	"mood-journal/pkg/config"

	"github.com/lib/pq"
)

// duplicateDatabase is the SQLSTATE for CREATE DATABASE on an existing name.
const duplicateDatabase = "42P04"

// EnsurePostgresDatabase creates the configured database when it does not
// exist yet, connecting through the server's "postgres" maintenance database.
func EnsurePostgresDatabase(cfg config.Database) error {
	maintenance := cfg
	maintenance.DBName = "postgres"

	db, err := sql.Open("postgres", PostgresDSN(maintenance))
	if err != nil {
		return fmt.Errorf("failed to open postgres maintenance database: %w", err)
	}
	defer db.Close()

	var exists bool
	if err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", cfg.DBName).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check database %s: %w", cfg.DBName, err)
	}
	if exists {
		return nil
	}

	if _, err := db.Exec("CREATE DATABASE " + pq.QuoteIdentifier(cfg.DBName)); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == duplicateDatabase {
			return nil
		}
		return fmt.Errorf("failed to create database %s: %w", cfg.DBName, err)
	}
	return nil
}
