package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/nataa-app/landing-gateway/config"
	"github.com/nataa-app/landing-gateway/internal/log"
	"github.com/nataa-app/landing-gateway/pkg/migrations"
	"github.com/nataa-app/landing-gateway/pkg/store"
	"github.com/nataa-app/landing-gateway/pkg/utils"
)

const migrateTimeout = 5 * time.Minute

func main() {
	logger := log.NewLoggerWithJSONOutput()

	config.InitializeEnvFile(logger) // Load envs early for CLI consistency

	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	switch args[0] {
	case "migrate":
		if err := runMigrate(logger, args[1:]); err != nil {
			logger.Error("Migration command failed", "error", err.Error())
			os.Exit(1)
		}
		return

	case "check-config":
		if !checkConfig(logger) {
			os.Exit(1)
		}
		return

	case "help", "-h", "--help":
		printUsage()
		return

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

func runMigrate(logger *log.Logger, args []string) error {
	storeCfg := config.NewStoreConfig()
	if driver := storeCfg.ResolveDriver(); driver != store.DriverPostgres {
		return fmt.Errorf("migrate needs a postgres store, resolved driver is %q", driver)
	}

	submissionStore, db, err := storeCfg.NewStore(logger)
	if err != nil {
		return err
	}
	defer config.CloseStore(submissionStore, logger)

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get SQL DB instance: %w", err)
	}

	cfg := migrations.Config{
		Dir:    utils.GetEnvTrimmedOrDefault("MIGRATIONS_DIR", "migrations"),
		Logger: logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
	defer cancel()

	sub := "up"
	if len(args) > 0 {
		sub = args[0]
	}

	switch sub {
	case "up":
		if err := migrations.Up(ctx, sqlDB, cfg); err != nil {
			return err
		}
		logger.Info("Database migrations completed")
	case "down":
		steps := 1
		if len(args) > 1 {
			if steps, err = strconv.Atoi(args[1]); err != nil || steps < 1 {
				return fmt.Errorf("invalid step count %q", args[1])
			}
		}
		if err := migrations.Down(ctx, sqlDB, cfg, steps); err != nil {
			return err
		}
		logger.Info("Database migrations rolled back", "steps", steps)
	case "version":
		return printVersion(ctx, sqlDB, cfg)
	default:
		return fmt.Errorf("unknown migrate subcommand %q", sub)
	}

	return nil
}

func printVersion(ctx context.Context, db *sql.DB, cfg migrations.Config) error {
	version, dirty, ok, err := migrations.Version(ctx, db, cfg)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("no migrations applied")
		return nil
	}
	fmt.Printf("version %d (dirty: %t)\n", version, dirty)
	return nil
}

// checkConfig reports which external collaborators the current environment
// enables. Only a failing store connection is fatal.
func checkConfig(logger *log.Logger) bool {
	healthy := true

	storeCfg := config.NewStoreConfig()
	if !storeCfg.IsConfigured() {
		fmt.Println("store:  not configured (submissions will fail with a configuration error)")
	} else {
		submissionStore, _, err := storeCfg.NewStore(logger)
		if err != nil {
			fmt.Printf("store:  %s FAILED: %v\n", storeCfg.ResolveDriver(), err)
			healthy = false
		} else {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := submissionStore.Ping(ctx); err != nil {
				fmt.Printf("store:  %s unreachable: %v\n", submissionStore.Driver(), err)
				healthy = false
			} else {
				fmt.Printf("store:  %s ok\n", submissionStore.Driver())
			}
			cancel()
			config.CloseStore(submissionStore, logger)
		}
	}

	mailCfg := config.NewMailConfig()
	if mailCfg.IsConfigured() {
		fmt.Printf("mail:   %s:%d (implicit TLS: %t)\n", mailCfg.Host, mailCfg.Port, mailCfg.UsesImplicitTLS())
	} else {
		fmt.Println("mail:   not configured (notification emails skipped)")
	}

	cacheCfg := config.NewCacheConfig()
	if cacheCfg.IsConfigured() {
		fmt.Printf("cache:  redis %s:%s\n", cacheCfg.Host, cacheCfg.Port)
	} else {
		fmt.Println("cache:  not configured (in-memory rate limiting)")
	}

	appCfg := config.NewAppConfig()
	fmt.Printf("limits: %d submissions per %s per client\n", appCfg.SubmissionRateLimitRequests, appCfg.RateLimitWindow)

	return healthy
}

func printUsage() {
	fmt.Println("Usage: cli <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  migrate [up]          Apply pending SQL migrations to the postgres store")
	fmt.Println("  migrate down [n]      Roll back n migrations (default 1)")
	fmt.Println("  migrate version       Print the applied migration version")
	fmt.Println("  check-config          Report which store, mail and cache settings are active")
}
