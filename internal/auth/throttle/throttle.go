package throttle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const failureKeyPrefix = "auth:login:failures:" // auth:login:failures:{identity_key}@{client_ip}

// LoginThrottle counts failed logins per key in Redis. Each failure
// pushes the key's expiry out by the window, so the counter clears after a
// quiet period of one window.
type LoginThrottle struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

func New(client *redis.Client, maxAttempts int, window time.Duration) *LoginThrottle {
	return &LoginThrottle{
		client:      client,
		maxAttempts: maxAttempts,
		window:      window,
	}
}

// Allowed reports whether another attempt is permitted for key.
func (t *LoginThrottle) Allowed(ctx context.Context, key string) (bool, error) {
	if t.maxAttempts <= 0 {
		return true, nil
	}
	n, err := t.client.Get(ctx, t.failureKey(key)).Int()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		return true, fmt.Errorf("failed to read login failures: %w", err)
	}
	return n < t.maxAttempts, nil
}

// RecordFailure increments the failure counter and refreshes its expiry.
func (t *LoginThrottle) RecordFailure(ctx context.Context, key string) error {
	k := t.failureKey(key)

	pipe := t.client.TxPipeline()
	pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, t.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record login failure: %w", err)
	}
	return nil
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, key string) error {
	if err := t.client.Del(ctx, t.failureKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to reset login failures: %w", err)
	}
	return nil
}

func (t *LoginThrottle) failureKey(key string) string {
	return failureKeyPrefix + key
}
