package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/nataa-app/landing-gateway/internal/log"
	"github.com/nataa-app/landing-gateway/pkg/constants"
	"github.com/nataa-app/landing-gateway/pkg/utils"
)

const AppEnvKey = "APP_ENV"

// AppConfig holds the gateway-level knobs read once at startup.
type AppConfig struct {
	RateLimitRequests           int
	RateLimitWindow             time.Duration
	SubmissionRateLimitRequests int
	RequestTimeout              time.Duration
	ContactInbox                string
	NotifyTimeout               time.Duration
	NotifyMaxInFlight           int
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		RateLimitRequests:           utils.GetEnvIntOrDefault("RATE_LIMIT_REQUESTS", constants.DefaultRateLimitRequests),
		RateLimitWindow:             utils.GetEnvDurationOrDefault("RATE_LIMIT_WINDOW", constants.DefaultRateLimitWindow()),
		SubmissionRateLimitRequests: utils.GetEnvIntOrDefault("SUBMISSION_RATE_LIMIT_REQUESTS", constants.DefaultSubmissionRateLimitRequests),
		RequestTimeout:              utils.GetEnvDurationOrDefault("REQUEST_TIMEOUT", 30*time.Second),
		ContactInbox:                utils.GetEnvTrimmedOrDefault("CONTACT_INBOX", constants.DefaultContactInbox),
		NotifyTimeout:               utils.GetEnvDurationOrDefault("NOTIFY_TIMEOUT", constants.DefaultNotifyTimeout),
		NotifyMaxInFlight:           utils.GetEnvIntOrDefault("NOTIFY_MAX_INFLIGHT", constants.DefaultNotifyWorkers),
	}
}

func InitializeEnvFile(logger *log.Logger) {
	if os.Getenv("SKIP_DOTENV") == "true" {
		logger.Info("Skipping .env file load (SKIP_DOTENV=true)")
		return
	}

	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found or failed to load it", "error", err.Error())
		return
	}

	logger.Info("Environment variables loaded from .env file")
}

func GetValueFromEnvironmentVariable(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultValue
}

func GetAppEnv() string {
	return strings.ToLower(strings.TrimSpace(os.Getenv(AppEnvKey)))
}

func ValidateAutoMigrateAllowed(appEnv string) error {
	env := strings.ToLower(strings.TrimSpace(appEnv))

	switch env {
	case "", "dev", "development", "local", "test", "testing":
		return nil
	default:
		return fmt.Errorf("--auto-migrate is not allowed when %s=%q (allowed: \"\", dev, development, local, test, testing)", AppEnvKey, env)
	}
}

// sanitizeEnv strips whitespace and one pair of matching quotes.
func sanitizeEnv(v string) string {
	s := strings.TrimSpace(v)

	if len(s) >= 2 && ((s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'')) {
		s = s[1 : len(s)-1]
	}

	return s
}
