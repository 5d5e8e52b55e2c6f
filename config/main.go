package config

import (
	"context"
	"time"

	"github.com/nataa-app/landing-gateway/config/router"
	"github.com/nataa-app/landing-gateway/internal/log"
	"github.com/nataa-app/landing-gateway/internal/models"
	"github.com/nataa-app/landing-gateway/pkg/mailer"
	"github.com/nataa-app/landing-gateway/pkg/notify"
	"github.com/nataa-app/landing-gateway/pkg/store"
	"gorm.io/gorm"
)

const cleanupTimeout = 10 * time.Second

// ApplicationConfig holds the process-wide clients. They are built once here
// and injected into controllers; nothing re-reads the environment per request.
type ApplicationConfig struct {
	// Store is nil when no store credentials were provided.
	Store store.Store
	// DB is set only for gorm-backed stores.
	DB              *gorm.DB
	RouterService   *router.RouterService
	Logger          *log.Logger
	Cache           Cache
	Mailer          mailer.Mailer
	Dispatcher      *notify.Dispatcher
	Config          *AppConfig
	TracingShutdown func(context.Context) error
}

func (ac *ApplicationConfig) Cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()

	if ac.RouterService != nil {
		ac.RouterService.Cleanup()
	}

	// Let queued notifications finish before their store and mail clients go away.
	if ac.Dispatcher != nil {
		if err := ac.Dispatcher.Close(ctx); err != nil {
			ac.Logger.Warn("Notification dispatcher did not drain before shutdown", "error", err)
		}
	}

	CloseStore(ac.Store, ac.Logger)
	CloseCache(ac.Cache, ac.Logger)

	if ac.TracingShutdown != nil {
		if err := ac.TracingShutdown(ctx); err != nil {
			ac.Logger.Error("Failed to shutdown tracer provider", "error", err)
		}
	}

	ac.Logger.Info("Application cleanup completed")
}

func LoadApplicationConfiguration(logger *log.Logger, autoMigrate bool) (*ApplicationConfig, error) {
	InitializeEnvFile(logger)

	if autoMigrate {
		appEnv := GetAppEnv()
		if err := ValidateAutoMigrateAllowed(appEnv); err != nil {
			return nil, err
		}
		if appEnv == "" {
			logger.Warn("APP_ENV not set; allowing --auto-migrate as development")
		}
	}

	tracingShutdown, err := SetupTracing(logger)
	if err != nil {
		return nil, err
	}

	submissionStore, db, err := NewStoreConfig().NewStoreOrNil(logger)
	if err != nil {
		return nil, err
	}

	if autoMigrate {
		if err := AutoMigrate(logger, db, models.ModelRegistry...); err != nil {
			CloseStore(submissionStore, logger)
			return nil, err
		}
	}

	appConfig := NewAppConfig()
	cache := NewCacheConfig().NewCacheOrNil(logger)

	routerService := router.CreateRouterService(logger, cache, &router.RouterConfig{
		RateLimitRequests: appConfig.RateLimitRequests,
		RateLimitWindow:   appConfig.RateLimitWindow,
		RequestTimeout:    appConfig.RequestTimeout,
	})

	dispatcher := notify.NewDispatcher(notify.Config{
		Timeout:     appConfig.NotifyTimeout,
		MaxInFlight: appConfig.NotifyMaxInFlight,
		Registerer:  routerService.MetricsRegisterer(),
	}, logger)

	logger.Info("Application configuration loaded successfully")

	return &ApplicationConfig{
		Store:           submissionStore,
		DB:              db,
		RouterService:   routerService,
		Logger:          logger,
		Cache:           cache,
		Mailer:          NewMailerOrNil(logger, NewMailConfig()),
		Dispatcher:      dispatcher,
		Config:          appConfig,
		TracingShutdown: tracingShutdown,
	}, nil
}
