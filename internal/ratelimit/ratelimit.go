package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter counts calls per key in fixed windows stored in redis.
type RateLimiter struct {
	redis  *redis.Client
	limit  int
	window time.Duration
}

func NewRateLimiter(ctx context.Context, redisURL string, limit int, window time.Duration) (*RateLimiter, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return New(client, limit, window), nil
}

func New(client *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{redis: client, limit: limit, window: window}
}

// Allow records a call for key and reports whether it is within the limit,
// along with the number of calls seen in the current window.
func (rl *RateLimiter) Allow(ctx context.Context, key string) (bool, int, error) {
	windowKey := windowKey(key, time.Now(), rl.window)

	pipe := rl.redis.Pipeline()
	incr := pipe.Incr(ctx, windowKey)
	pipe.Expire(ctx, windowKey, rl.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, err
	}

	count := int(incr.Val())
	return count <= rl.limit, count, nil
}

func (rl *RateLimiter) Close() error {
	return rl.redis.Close()
}

func windowKey(key string, now time.Time, window time.Duration) string {
	secs := int64(window.Seconds())
	if secs < 1 {
		secs = 1
	}
	return fmt.Sprintf("finebook:ratelimit:%s:%d", key, now.Unix()/secs)
}
