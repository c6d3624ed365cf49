package database

import (
	"context"
	"fmt"

	"mood-journal/pkg/config"
	"mood-journal/pkg/logger"

	"gorm.io/gorm"
)

// Lazy holds a database that is opened on first use. Every repository call
// goes through Get, which checks the connection state and connects (and
// migrates, when enabled) if needed. Close returns it to the disconnected
// state; the next Get reconnects. Not safe for concurrent first use.
type Lazy struct {
	cfg    config.Database
	logger *logger.Logger
	db     *DB
}

// NewLazy creates a disconnected Lazy for cfg.
func NewLazy(cfg config.Database, log *logger.Logger) *Lazy {
	return &Lazy{cfg: cfg, logger: log}
}

// Connected reports whether a connection is currently open.
func (l *Lazy) Connected() bool {
	return l.db != nil
}

// Get returns a context-bound gorm handle, connecting first if needed.
func (l *Lazy) Get(ctx context.Context) (*gorm.DB, error) {
	if !l.Connected() {
		if err := l.connect(); err != nil {
			return nil, err
		}
	}
	return l.db.DB.WithContext(ctx), nil
}

// Driver returns the normalised driver name.
func (l *Lazy) Driver() string {
	return normalizeDriver(l.cfg.Driver)
}

func (l *Lazy) connect() error {
	if l.cfg.AutoMigrate {
		if err := MigrateUp(l.cfg); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	db, err := NewDB(l.cfg)
	if err != nil {
		return err
	}
	l.db = db
	l.logger.Debug("Database connected", logger.StringField("driver", db.Driver))
	return nil
}

// Close closes the connection if one is open.
func (l *Lazy) Close() error {
	if !l.Connected() {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return err
}
