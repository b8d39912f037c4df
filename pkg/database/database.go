// Package database provides PostgreSQL connection management and schema
// migration for the service.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/vendetucasa/intake/pkg/lifecycle"
)

// System manages the database connection pool lifecycle.
type System interface {
	Connection() *sql.DB
	Migrate(migrations fs.FS) error
	Start(lc *lifecycle.Coordinator) error
}

type system struct {
	db     *sql.DB
	logger *slog.Logger
}

// New opens a connection pool from the configuration and verifies it
// with a ping.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	db, err := sql.Open("pgx", cfg.Dsn())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnTimeoutDuration())
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &system{
		db:     db,
		logger: logger.With("system", "database"),
	}, nil
}

// Connection returns the underlying connection pool.
func (s *system) Connection() *sql.DB {
	return s.db
}

// Migrate applies pending schema migrations from the provided filesystem.
func (s *system) Migrate(migrations fs.FS) error {
	source, err := iofs.New(migrations, ".")
	if err != nil {
		return fmt.Errorf("open migration source: %w", err)
	}

	driver, err := migratepgx.WithInstance(s.db, &migratepgx.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "pgx", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	s.logger.Info("migrations applied")
	return nil
}

// Start registers connection pool cleanup with the lifecycle coordinator.
func (s *system) Start(lc *lifecycle.Coordinator) error {
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		if err := s.db.Close(); err != nil {
			s.logger.Error("database close error", "error", err)
		} else {
			s.logger.Info("database connection closed")
		}
	})
	return nil
}
