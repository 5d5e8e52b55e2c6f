package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/nataa-app/landing-gateway/internal/log"
	"github.com/nataa-app/landing-gateway/internal/models"
	"github.com/nataa-app/landing-gateway/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.NewLogger(&bytes.Buffer{})
}

func clearStoreEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"STORE_DRIVER", "APP_DATABASE_URL", "SQLITE_PATH", "POSTGRES_HOST", "POSTGRES_PORT",
		"POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB_NAME", "POSTGRES_SSLMODE",
		"SUPABASE_URL", "NEXT_PUBLIC_SUPABASE_URL", "SUPABASE_SERVICE_ROLE",
		"SUPABASE_ANON_KEY", "NEXT_PUBLIC_SUPABASE_ANON_KEY", "STORE_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func TestValidateAutoMigrateAllowed_AllowsDevLikeEnvs(t *testing.T) {
	for _, env := range []string{"", "dev", "development", "local", "test", "testing", "DEV", "  Local  "} {
		t.Run(env, func(t *testing.T) {
			assert.NoError(t, ValidateAutoMigrateAllowed(env))
		})
	}
}

func TestValidateAutoMigrateAllowed_RejectsProdAndOtherEnvs(t *testing.T) {
	for _, env := range []string{"prod", "production", "staging", "preprod", " Production ", "qa"} {
		t.Run(env, func(t *testing.T) {
			assert.Error(t, ValidateAutoMigrateAllowed(env))
		})
	}
}

func TestNewAppConfig_Defaults(t *testing.T) {
	for _, key := range []string{"RATE_LIMIT_REQUESTS", "RATE_LIMIT_WINDOW", "SUBMISSION_RATE_LIMIT_REQUESTS", "REQUEST_TIMEOUT", "CONTACT_INBOX", "NOTIFY_TIMEOUT", "NOTIFY_MAX_INFLIGHT"} {
		t.Setenv(key, "")
	}

	cfg := NewAppConfig()
	assert.Equal(t, 100, cfg.RateLimitRequests)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, 10, cfg.SubmissionRateLimitRequests)
	assert.Equal(t, "contact@nataa.app", cfg.ContactInbox)
	assert.Equal(t, 10*time.Second, cfg.NotifyTimeout)
	assert.Equal(t, 16, cfg.NotifyMaxInFlight)
}

func TestNewAppConfig_Overrides(t *testing.T) {
	t.Setenv("SUBMISSION_RATE_LIMIT_REQUESTS", "3")
	t.Setenv("CONTACT_INBOX", "ops@nataa.app")
	t.Setenv("NOTIFY_TIMEOUT", "5s")

	cfg := NewAppConfig()
	assert.Equal(t, 3, cfg.SubmissionRateLimitRequests)
	assert.Equal(t, "ops@nataa.app", cfg.ContactInbox)
	assert.Equal(t, 5*time.Second, cfg.NotifyTimeout)
}

func TestStoreConfig_ResolveDriver(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "nothing configured", env: nil, want: ""},
		{name: "database url", env: map[string]string{"APP_DATABASE_URL": "postgres://u:p@db/landing"}, want: store.DriverPostgres},
		{name: "postgres host", env: map[string]string{"POSTGRES_HOST": "db"}, want: store.DriverPostgres},
		{name: "supabase service role", env: map[string]string{"SUPABASE_URL": "https://x.supabase.co", "SUPABASE_SERVICE_ROLE": "srk"}, want: store.DriverPostgREST},
		{name: "public supabase anon key", env: map[string]string{"NEXT_PUBLIC_SUPABASE_URL": "https://x.supabase.co", "NEXT_PUBLIC_SUPABASE_ANON_KEY": "anon"}, want: store.DriverPostgREST},
		{name: "supabase url without key", env: map[string]string{"SUPABASE_URL": "https://x.supabase.co"}, want: ""},
		{name: "sqlite", env: map[string]string{"SQLITE_PATH": "landing.db"}, want: store.DriverSQLite},
		{name: "explicit driver wins", env: map[string]string{"STORE_DRIVER": "SQLite", "POSTGRES_HOST": "db"}, want: store.DriverSQLite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearStoreEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			assert.Equal(t, tt.want, NewStoreConfig().ResolveDriver())
		})
	}
}

func TestStoreConfig_SupabaseKeyPrecedence(t *testing.T) {
	clearStoreEnv(t)
	t.Setenv("SUPABASE_ANON_KEY", "anon")
	t.Setenv("SUPABASE_SERVICE_ROLE", `"service"`)

	assert.Equal(t, "service", NewStoreConfig().SupabaseKey)
}

func TestStoreConfig_NewStoreOrNil_Unconfigured(t *testing.T) {
	clearStoreEnv(t)

	s, db, err := NewStoreConfig().NewStoreOrNil(testLogger())
	assert.NoError(t, err)
	assert.Nil(t, s)
	assert.Nil(t, db)
}

func TestStoreConfig_NewStore_SQLiteInMemory(t *testing.T) {
	clearStoreEnv(t)
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "file:config_test?mode=memory&cache=shared")

	s, db, err := NewStoreConfig().NewStore(testLogger())
	require.NoError(t, err)
	require.NotNil(t, db)
	defer s.Close()

	assert.Equal(t, store.DriverSQLite, s.Driver())
	assert.NoError(t, AutoMigrate(testLogger(), db, models.ModelRegistry...))
}

func TestStoreConfig_NewStore_PostgREST(t *testing.T) {
	clearStoreEnv(t)
	t.Setenv("SUPABASE_URL", "https://x.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "anon")

	s, db, err := NewStoreConfig().NewStore(testLogger())
	require.NoError(t, err)
	assert.Nil(t, db)
	assert.Equal(t, store.DriverPostgREST, s.Driver())
}

func TestStoreConfig_NewStore_UnknownDriver(t *testing.T) {
	clearStoreEnv(t)
	t.Setenv("STORE_DRIVER", "mongo")

	_, _, err := NewStoreConfig().NewStoreOrNil(testLogger())
	assert.ErrorContains(t, err, "unsupported STORE_DRIVER")
}

func TestBuildPostgresDSN(t *testing.T) {
	clearStoreEnv(t)

	dsn, err := buildPostgresDSN("postgres://u:p@db/landing", "require")
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db/landing", dsn)

	_, err = buildPostgresDSN("", "require")
	assert.ErrorContains(t, err, "POSTGRES_HOST")

	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_PORT", "not-a-port")
	t.Setenv("POSTGRES_USER", "landing")
	t.Setenv("POSTGRES_DB_NAME", "landing")
	_, err = buildPostgresDSN("", "require")
	assert.ErrorContains(t, err, "invalid POSTGRES_PORT")

	t.Setenv("POSTGRES_PORT", "5432")
	t.Setenv("POSTGRES_PASSWORD", "'secret'")
	dsn, err = buildPostgresDSN("", "require")
	require.NoError(t, err)
	assert.Equal(t, "host=db port=5432 user=landing password=secret dbname=landing sslmode=require", dsn)
}

func TestNewMailConfig_And_NewMailerOrNil(t *testing.T) {
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "465")
	t.Setenv("SMTP_USER", "bot@nataa.app")
	t.Setenv("SMTP_PASS", "")
	t.Setenv("SMTP_FROM_NAME", "")

	cfg := NewMailConfig()
	assert.Equal(t, 465, cfg.Port)
	assert.Equal(t, "Nataa Contact", cfg.FromName)
	assert.False(t, cfg.IsConfigured())
	assert.Nil(t, NewMailerOrNil(testLogger(), cfg))

	t.Setenv("SMTP_PASS", "secret")
	cfg = NewMailConfig()
	assert.True(t, cfg.UsesImplicitTLS())
	assert.NotNil(t, NewMailerOrNil(testLogger(), cfg))
}

func TestNewCacheOrNil_Unconfigured(t *testing.T) {
	t.Setenv("REDIS_HOST", "")
	assert.Nil(t, NewCacheConfig().NewCacheOrNil(testLogger()))
}
