package service

import (
	"context"
	"studytrack_backend/pkg/logger"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRateLimitCheckFailsOpen(t *testing.T) {
	logger.Log = zap.NewNop()

	// Nothing listens here; every pipeline exec fails.
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	limiter := NewRateLimitService(rdb)
	result := limiter.Check(context.Background(), "42", "export", 5, time.Hour)

	assert.True(t, result.Allowed)
	assert.Equal(t, int64(5), result.Remaining)
	assert.Greater(t, result.ResetAt, time.Now().UnixMilli())
}

func TestRateLimitKey(t *testing.T) {
	assert.Equal(t, "ratelimit:export:42", rateLimitKey("export", "42"))
}
