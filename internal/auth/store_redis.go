// Copyright (c) 2026 BrainWave. All rights reserved.
// Author: hamzahey@brainwave.health

package auth

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/hamzahey/brainwave-api/internal/platform/constants"
)

// RedisThrottle implements [LoginThrottle] with a per-key failure counter
// in Redis. The counter expires after [LoginAttemptWindow], so the budget
// refills on its own without a sweeper.
type RedisThrottle struct {
	client *redis.Client
}

// NewRedisThrottle creates a login throttle over the given Redis client.
func NewRedisThrottle(client *redis.Client) *RedisThrottle {
	return &RedisThrottle{client: client}
}

func throttleKey(key string) string {
	return constants.RedisPrefixLoginAttempts + key
}

// TooManyAttempts reports whether the key has exhausted its failure budget.
func (t *RedisThrottle) TooManyAttempts(ctx context.Context, key string) (bool, error) {
	count, err := t.client.Get(ctx, throttleKey(key)).Int()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("reading login attempts: %w", err)
	}
	return count >= MaxLoginAttempts, nil
}

// RecordFailure adds one failed attempt for the key. The expiry is set only
// when the counter is created, so the window is anchored at the first failure.
func (t *RedisThrottle) RecordFailure(ctx context.Context, key string) error {
	k := throttleKey(key)

	pipe := t.client.TxPipeline()
	pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, LoginAttemptWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("recording login failure: %w", err)
	}
	return nil
}

// Reset clears the failure count after a successful login.
func (t *RedisThrottle) Reset(ctx context.Context, key string) error {
	if err := t.client.Del(ctx, throttleKey(key)).Err(); err != nil {
		return fmt.Errorf("resetting login attempts: %w", err)
	}
	return nil
}
