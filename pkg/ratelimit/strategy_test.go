package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRateLimiter_IsLimited_IsPerKey(t *testing.T) {
	ctx := context.Background()
	limiter := NewInMemoryRateLimiter("submissions", 1, time.Second)

	limited, err := limiter.IsLimited(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.False(t, limited, "first request should pass")

	limited, err = limiter.IsLimited(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.True(t, limited, "second immediate request from the same client should be limited")

	limited, err = limiter.IsLimited(ctx, "198.51.100.2")
	require.NoError(t, err)
	assert.False(t, limited, "other clients keep their own budget")
}

func TestInMemoryRateLimiter_EmptyKeySharesBucket(t *testing.T) {
	limiter := NewInMemoryRateLimiter("", 1, time.Minute)

	first, _ := limiter.IsLimited(context.Background(), "")
	second, _ := limiter.IsLimited(context.Background(), "")

	assert.False(t, first)
	assert.True(t, second)
}

func TestNewRateLimiter_SelectsBackend(t *testing.T) {
	inMemory := NewRateLimiter(&RateLimitConfig{Scope: "default", Requests: 10, Window: time.Minute})
	assert.IsType(t, &InMemoryRateLimiter{}, inMemory)
	assert.Equal(t, "default", inMemory.Scope())

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()

	distributed := NewRateLimiter(&RateLimitConfig{Scope: "submissions", Requests: 5, Window: time.Minute, Redis: client})
	require.IsType(t, &RedisRateLimiter{}, distributed)

	requests, window := distributed.GetLimitDetails()
	assert.Equal(t, 5, requests)
	assert.Equal(t, time.Minute, window)
}

func TestRedisRateLimiter_KeysAreScoped(t *testing.T) {
	scoped := NewRedisRateLimiter(nil, "submissions", 5, time.Minute, nil)
	assert.Equal(t, "ratelimit:submissions:203.0.113.7", scoped.fullKey("203.0.113.7"))
	assert.Equal(t, "ratelimit:submissions:203.0.113.7", scoped.fullKey("ratelimit:submissions:203.0.113.7"))

	unscoped := NewRedisRateLimiter(nil, "", 5, time.Minute, nil)
	assert.Equal(t, "ratelimit:203.0.113.7", unscoped.fullKey("203.0.113.7"))
}

type recordingLogger struct{ messages []string }

func (l *recordingLogger) Error(msg string, _ ...any) { l.messages = append(l.messages, msg) }

func TestRedisRateLimiter_BackendErrorIsReturned(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	defer client.Close()

	logger := &recordingLogger{}
	limiter := NewRedisRateLimiter(client, "submissions", 5, time.Minute, logger)

	limited, err := limiter.IsLimited(context.Background(), "203.0.113.7")
	assert.Error(t, err)
	assert.False(t, limited)
	assert.Len(t, logger.messages, 1)
}
