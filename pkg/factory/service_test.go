package factory

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/nataa-app/landing-gateway/pkg/ratelimit"
	"github.com/stretchr/testify/assert"
)

type plainCache struct{}

func (plainCache) Ping(context.Context) error { return nil }

type redisCache struct {
	plainCache
	client *redis.Client
}

func (c redisCache) GetClient() *redis.Client { return c.client }

func TestCreateRateLimiter_InMemoryWithoutRedis(t *testing.T) {
	for _, cache := range []Cache{nil, plainCache{}} {
		f := NewDefaultRateLimiterFactory(cache, nil)
		assert.False(t, f.Distributed())

		limiter := f.CreateRateLimiter("submissions", 5, time.Minute)
		assert.IsType(t, &ratelimit.InMemoryRateLimiter{}, limiter)
		assert.Equal(t, "submissions", limiter.Scope())
	}
}

func TestCreateRateLimiter_RedisWhenProvided(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()

	f := NewDefaultRateLimiterFactory(redisCache{client: client}, nil)
	assert.True(t, f.Distributed())
	assert.IsType(t, &ratelimit.RedisRateLimiter{}, f.CreateRateLimiter("default", 100, time.Minute))
}
