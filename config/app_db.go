package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nataa-app/landing-gateway/internal/log"
	"github.com/nataa-app/landing-gateway/pkg/constants"
	"github.com/nataa-app/landing-gateway/pkg/store"
	"github.com/nataa-app/landing-gateway/pkg/utils"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type DBPoolConfig struct {
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	SSLMode         string
}

func defaultPoolConfig() DBPoolConfig {
	return DBPoolConfig{
		MaxIdleConns:    10,
		MaxOpenConns:    50,
		ConnMaxLifetime: 5 * time.Minute,
		SSLMode:         "require",
	}
}

// StoreConfig describes where submissions are written. The driver is either
// set with STORE_DRIVER or inferred from which credentials are present.
type StoreConfig struct {
	Driver       string
	DatabaseURL  string
	SQLitePath   string
	SupabaseURL  string
	SupabaseKey  string
	Timeout      time.Duration
	Pool         DBPoolConfig
	postgresHost string
}

func NewStoreConfig() *StoreConfig {
	return &StoreConfig{
		Driver:      strings.ToLower(sanitizeEnv(utils.GetEnvTrimmed("STORE_DRIVER"))),
		DatabaseURL: sanitizeEnv(utils.GetEnvTrimmed("APP_DATABASE_URL")),
		SQLitePath:  sanitizeEnv(utils.GetEnvTrimmed("SQLITE_PATH")),
		SupabaseURL: sanitizeEnv(utils.GetFirstEnvTrimmed("SUPABASE_URL", "NEXT_PUBLIC_SUPABASE_URL")),
		// Service-role key first; the anon key only works when row-level security allows inserts.
		SupabaseKey:  sanitizeEnv(utils.GetFirstEnvTrimmed("SUPABASE_SERVICE_ROLE", "SUPABASE_ANON_KEY", "NEXT_PUBLIC_SUPABASE_ANON_KEY")),
		Timeout:      utils.GetEnvDurationOrDefault("STORE_TIMEOUT", constants.DefaultStoreTimeout),
		Pool:         defaultPoolConfig(),
		postgresHost: sanitizeEnv(utils.GetEnvTrimmed("POSTGRES_HOST")),
	}
}

func (sc *StoreConfig) ResolveDriver() string {
	if sc.Driver != "" {
		return sc.Driver
	}

	switch {
	case sc.DatabaseURL != "" || sc.postgresHost != "":
		return store.DriverPostgres
	case sc.SupabaseURL != "" && sc.SupabaseKey != "":
		return store.DriverPostgREST
	case sc.SQLitePath != "":
		return store.DriverSQLite
	default:
		return ""
	}
}

func (sc *StoreConfig) IsConfigured() bool {
	return sc.ResolveDriver() != ""
}

// NewStore connects the configured backend. The returned *gorm.DB is nil for
// the PostgREST backend.
func (sc *StoreConfig) NewStore(logger *log.Logger) (store.Store, *gorm.DB, error) {
	driver := sc.ResolveDriver()

	switch driver {
	case "":
		return nil, nil, store.ErrNotConfigured
	case store.DriverPostgREST:
		s, err := store.NewPostgRESTStore(store.PostgRESTConfig{
			URL:     sc.SupabaseURL,
			APIKey:  sc.SupabaseKey,
			Timeout: sc.Timeout,
		})
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Store configured", "driver", driver)
		return s, nil, nil
	case store.DriverPostgres:
		dsn, err := buildPostgresDSN(sc.DatabaseURL, sc.Pool.SSLMode)
		if err != nil {
			return nil, nil, err
		}
		db, err := openGorm(postgres.Open(dsn), sc.Pool)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Store connected", "driver", driver)
		return store.NewGormStore(db, driver, sc.Timeout), db, nil
	case store.DriverSQLite:
		path := sc.SQLitePath
		if path == "" {
			path = "file::memory:?cache=shared"
		}
		// SQLite serialises writers; one connection avoids "database is locked".
		pool := sc.Pool
		pool.MaxOpenConns = 1
		pool.MaxIdleConns = 1
		db, err := openGorm(sqlite.Open(path), pool)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Store connected", "driver", driver, "path", path)
		return store.NewGormStore(db, driver, sc.Timeout), db, nil
	default:
		return nil, nil, fmt.Errorf("unsupported STORE_DRIVER %q (expected postgres, sqlite or postgrest)", driver)
	}
}

// NewStoreOrNil lets the gateway boot without a store; submissions then
// answer with a configuration error. A store that is configured but
// unreachable is still a startup failure.
func (sc *StoreConfig) NewStoreOrNil(logger *log.Logger) (store.Store, *gorm.DB, error) {
	s, db, err := sc.NewStore(logger)
	if errors.Is(err, store.ErrNotConfigured) {
		logger.Warn("Store is not configured; submission routes will report a configuration error")
		return nil, nil, nil
	}
	if err != nil {
		logger.Error("Failed to initialise store", "error", err)
		return nil, nil, err
	}
	return s, db, nil
}

func openGorm(dialector gorm.Dialector, pool DBPoolConfig) (*gorm.DB, error) {
	gdb, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return gdb, nil
}

func buildPostgresDSN(appDatabaseURL, defaultSSLMode string) (string, error) {
	if strings.TrimSpace(appDatabaseURL) != "" {
		return appDatabaseURL, nil
	}

	host, portStr, user, pass, dbName, ssl := getDatabaseEnvParams()
	if ssl == "" {
		ssl = defaultSSLMode
	}

	var missing []string
	if host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if portStr == "" {
		missing = append(missing, "POSTGRES_PORT")
	}
	if user == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if dbName == "" {
		missing = append(missing, "POSTGRES_DB_NAME")
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("missing required database env vars: %s", strings.Join(missing, ", "))
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", fmt.Errorf("invalid POSTGRES_PORT %q: %w", portStr, err)
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, pass, dbName, ssl,
	), nil
}

func getDatabaseEnvParams() (host, port, user, pass, dbName, ssl string) {
	host = sanitizeEnv(GetValueFromEnvironmentVariable("POSTGRES_HOST", ""))
	port = sanitizeEnv(GetValueFromEnvironmentVariable("POSTGRES_PORT", ""))
	user = sanitizeEnv(GetValueFromEnvironmentVariable("POSTGRES_USER", ""))
	pass = sanitizeEnv(GetValueFromEnvironmentVariable("POSTGRES_PASSWORD", ""))
	dbName = sanitizeEnv(GetValueFromEnvironmentVariable("POSTGRES_DB_NAME", ""))
	ssl = sanitizeEnv(GetValueFromEnvironmentVariable("POSTGRES_SSLMODE", ""))

	return host, port, user, pass, dbName, ssl
}

func AutoMigrate(logger *log.Logger, db *gorm.DB, models ...interface{}) error {
	if db == nil {
		logger.Error("Cannot migrate: no relational store configured")
		return errors.New("cannot migrate: no relational store configured")
	}

	if err := db.AutoMigrate(models...); err != nil {
		logger.Error("Database migration failed", "error", err)
		return fmt.Errorf("auto-migrate failed: %w", err)
	}

	logger.Info("Database migration completed successfully")
	return nil
}

func CloseStore(s store.Store, logger *log.Logger) {
	if s == nil {
		return
	}

	if err := s.Close(); err != nil {
		logger.Error("Failed to close store", "driver", s.Driver(), "error", err)
		return
	}
	logger.Info("Store closed", "driver", s.Driver())
}
