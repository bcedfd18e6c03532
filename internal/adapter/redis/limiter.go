// Package redis provides a Redis-backed fixed-window rate-limit store so
// several API processes can share request counters.
package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const defaultPrefix = "ratelimit:"

// Limiter counts requests per key in fixed windows stored in Redis.
type Limiter struct {
	client *goredis.Client
	prefix string
}

// NewLimiter parses redisURL, connects and verifies the connection.
func NewLimiter(ctx context.Context, redisURL string) (*Limiter, error) {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := goredis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewLimiterWithClient(client), nil
}

// NewLimiterWithClient creates a limiter from an existing Redis client.
func NewLimiterWithClient(client *goredis.Client) *Limiter {
	return &Limiter{client: client, prefix: defaultPrefix}
}

func (l *Limiter) key(k string) string {
	return l.prefix + k
}

// Allow records one request for key and reports whether it fits within limit
// requests per window. When it does not, retryAfter is the time left until
// the current window resets.
func (l *Limiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, time.Duration, error) {
	k := l.key(key)

	var (
		count *goredis.IntCmd
		ttl   *goredis.DurationCmd
	)
	// PEXPIRE NX starts the window on the first hit and repairs a key that
	// somehow lost its expiry, without extending a running window.
	_, err := l.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		count = pipe.Incr(ctx, k)
		pipe.Do(ctx, "pexpire", k, window.Milliseconds(), "nx")
		ttl = pipe.PTTL(ctx, k)
		return nil
	})
	if err != nil {
		return false, 0, fmt.Errorf("rate limit: %w", err)
	}

	if count.Val() <= int64(limit) {
		return true, 0, nil
	}

	retryAfter := ttl.Val()
	if retryAfter <= 0 {
		retryAfter = window
	}
	return false, retryAfter, nil
}

// Ping checks if Redis is reachable.
func (l *Limiter) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (l *Limiter) Close() error {
	return l.client.Close()
}
