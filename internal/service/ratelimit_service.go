package service

import (
	"context"
	"fmt"
	"strconv"
	"studytrack_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RateLimitResult is the outcome of one sliding-window check.
type RateLimitResult struct {
	Allowed    bool  `json:"allowed"`
	Remaining  int64 `json:"remaining"`
	ResetAt    int64 `json:"resetAt"`              // epoch milliseconds
	RetryAfter int64 `json:"retryAfter,omitempty"` // seconds, only when denied
}

// RateLimitService is a Redis-backed sliding window: a sorted set per
// (bucket, subject) keyed by event timestamp. Expired members are pruned,
// the survivors counted and the current timestamp added in one pipeline.
// When Redis is unreachable the limiter fails open rather than blocking
// the caller.
type RateLimitService struct {
	Redis *redis.Client
}

func NewRateLimitService(rdb *redis.Client) *RateLimitService {
	return &RateLimitService{Redis: rdb}
}

func rateLimitKey(bucket, subjectID string) string {
	return fmt.Sprintf("ratelimit:%s:%s", bucket, subjectID)
}

// Check records one event for the subject and reports whether it fits the
// window. The event is counted even when denied, matching sorted-set
// sliding windows where abusive retries keep the window full.
func (s *RateLimitService) Check(ctx context.Context, subjectID, bucket string, limit int64, window time.Duration) RateLimitResult {
	key := rateLimitKey(bucket, subjectID)
	now := time.Now()
	nowMs := now.UnixMilli()
	windowStart := nowMs - window.Milliseconds()

	pipe := s.Redis.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	countCmd := pipe.ZCard(ctx, key)
	pipe.ZAdd(ctx, key, &redis.Z{
		Score:  float64(nowMs),
		Member: strconv.FormatInt(now.UnixNano(), 10),
	})
	pipe.Expire(ctx, key, window)

	if _, err := pipe.Exec(ctx); err != nil {
		// Fail open: a broken limiter must not take the endpoint down.
		logger.Log.Warn("rate limiter unavailable, failing open",
			zap.String("bucket", bucket), zap.Error(err))
		return RateLimitResult{
			Allowed:   true,
			Remaining: limit,
			ResetAt:   nowMs + window.Milliseconds(),
		}
	}

	priorCount := countCmd.Val()
	if priorCount < limit {
		return RateLimitResult{
			Allowed:   true,
			Remaining: limit - priorCount - 1,
			ResetAt:   nowMs + window.Milliseconds(),
		}
	}

	resetAt := s.windowResetAt(ctx, key, window, nowMs)
	retryAfter := (resetAt - nowMs + 999) / 1000
	if retryAfter < 1 {
		retryAfter = 1
	}

	return RateLimitResult{
		Allowed:    false,
		Remaining:  0,
		ResetAt:    resetAt,
		RetryAfter: retryAfter,
	}
}

// windowResetAt derives when the oldest in-window event slides out.
func (s *RateLimitService) windowResetAt(ctx context.Context, key string, window time.Duration, nowMs int64) int64 {
	oldest, err := s.Redis.ZRangeWithScores(ctx, key, 0, 0).Result()
	if err != nil || len(oldest) == 0 {
		return nowMs + window.Milliseconds()
	}
	return int64(oldest[0].Score) + window.Milliseconds()
}
