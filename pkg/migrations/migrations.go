// Package migrations applies the SQL files under migrations/ to the
// PostgreSQL submission store.
package migrations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

type migrator interface {
	Up() error
	Steps(n int) error
	Version() (version uint, dirty bool, err error)
	Close() (sourceErr error, databaseErr error)
}

var driverFactory = func(db *sql.DB, cfg Config) (database.Driver, error) {
	return postgres.WithInstance(db, &postgres.Config{MigrationsTable: cfg.MigrationsTable})
}

var migratorFactory = func(sourceURL string, driver database.Driver) (migrator, error) {
	return migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
}

type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type Config struct {
	Dir             string
	MigrationsTable string
	Logger          Logger
}

func (cfg *Config) applyDefaults() {
	if strings.TrimSpace(cfg.Dir) == "" {
		cfg.Dir = "migrations"
	}
	if strings.TrimSpace(cfg.MigrationsTable) == "" {
		cfg.MigrationsTable = "schema_migrations"
	}
}

func (cfg Config) info(msg string, args ...any) {
	if cfg.Logger != nil {
		cfg.Logger.Info(msg, args...)
	}
}

func sourceURL(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("migrations: resolve dir: %w", err)
	}

	return (&url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(absDir),
	}).String(), nil
}

// run opens a migrator, executes op and always closes it. migrate has no
// context support, so cancellation closes the migrator to interrupt op.
func run(ctx context.Context, db *sql.DB, cfg Config, op func(migrator) error) error {
	if db == nil {
		return errors.New("migrations: db is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	cfg.applyDefaults()

	src, err := sourceURL(cfg.Dir)
	if err != nil {
		return err
	}

	driver, err := driverFactory(db, cfg)
	if err != nil {
		return fmt.Errorf("migrations: postgres driver: %w", err)
	}

	m, err := migratorFactory(src, driver)
	if err != nil {
		return fmt.Errorf("migrations: init: %w", err)
	}

	var closeOnce sync.Once
	closeMigrator := func() {
		closeOnce.Do(func() {
			srcErr, dbErr := m.Close()
			if cfg.Logger != nil {
				if srcErr != nil {
					cfg.Logger.Warn("Migrations source close error", "error", srcErr)
				}
				if dbErr != nil {
					cfg.Logger.Warn("Migrations db close error", "error", dbErr)
				}
			}
		})
	}
	defer closeMigrator()

	errCh := make(chan error, 1)
	go func() {
		errCh <- op(m)
	}()

	select {
	case <-ctx.Done():
		closeMigrator()
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

func Up(ctx context.Context, db *sql.DB, cfg Config) error {
	cfg.applyDefaults()
	cfg.info("Running SQL migrations", "dir", cfg.Dir, "table", cfg.MigrationsTable)

	err := run(ctx, db, cfg, func(m migrator) error {
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migrations: up: %w", err)
		} else if err != nil {
			return err
		}
		return nil
	})
	if errors.Is(err, migrate.ErrNoChange) {
		cfg.info("No migrations to apply")
		return nil
	}
	if err != nil {
		return err
	}

	cfg.info("Migrations applied successfully")
	return nil
}

// Down rolls back the given number of applied migrations.
func Down(ctx context.Context, db *sql.DB, cfg Config, steps int) error {
	if steps <= 0 {
		return fmt.Errorf("migrations: down steps must be positive, got %d", steps)
	}

	err := run(ctx, db, cfg, func(m migrator) error { return m.Steps(-steps) })
	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			cfg.info("No migrations to roll back")
			return nil
		}
		return fmt.Errorf("migrations: down: %w", err)
	}

	cfg.info("Migrations rolled back", "steps", steps)
	return nil
}

// Version reports the applied schema version; ok is false when nothing has been applied.
func Version(ctx context.Context, db *sql.DB, cfg Config) (version uint, dirty bool, ok bool, err error) {
	err = run(ctx, db, cfg, func(m migrator) error {
		var verr error
		version, dirty, verr = m.Version()
		return verr
	})
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, false, nil
	}
	if err != nil {
		return 0, false, false, fmt.Errorf("migrations: version: %w", err)
	}
	return version, dirty, true, nil
}
