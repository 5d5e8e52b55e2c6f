package config

import (
	"context"
	"errors"
	"os"

	"github.com/nataa-app/landing-gateway/internal/log"
	pkgredis "github.com/nataa-app/landing-gateway/pkg/redis"
	"github.com/nataa-app/landing-gateway/pkg/utils"
)

var ErrCacheNotConfigured = errors.New("cache host is not configured")

// Cache is the shared Redis connection backing the distributed rate limiter.
type Cache interface {
	Ping(ctx context.Context) error
	Close() error
}

type CacheConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func NewCacheConfig() *CacheConfig {
	return &CacheConfig{
		Host:     os.Getenv("REDIS_HOST"),
		Port:     utils.GetEnvOrDefault("REDIS_PORT", "6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
	}
}

func (cc *CacheConfig) IsConfigured() bool {
	return cc.Host != ""
}

func (cc *CacheConfig) NewCache(logger *log.Logger) (*pkgredis.RedisCache, error) {
	if !cc.IsConfigured() {
		return nil, ErrCacheNotConfigured
	}

	cache, err := pkgredis.NewRedisCache(&pkgredis.Config{
		Host:     cc.Host,
		Port:     cc.Port,
		Password: cc.Password,
		DB:       cc.DB,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Cache (Redis) connected", "host", cc.Host, "port", cc.Port)
	return cache, nil
}

// NewCacheOrNil never fails: rate limiting falls back to in-memory buckets.
func (cc *CacheConfig) NewCacheOrNil(logger *log.Logger) Cache {
	if !cc.IsConfigured() {
		logger.Info("Cache (Redis) is not configured; rate limiting stays in-process")
		return nil
	}

	cache, err := cc.NewCache(logger)
	if err != nil {
		logger.Error("Failed to create Cache (Redis)", "error", err)
		return nil
	}

	return cache
}

func CloseCache(cache Cache, logger *log.Logger) {
	if cache == nil {
		return
	}

	if err := cache.Close(); err != nil {
		logger.Error("Failed to close cache", "error", err)
		return
	}
	logger.Info("Cache connection closed")
}
