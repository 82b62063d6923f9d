package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"communitypulse/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// Aside implements a cache-aside read: on a hit the cached JSON is
// decoded into a fresh T, on a miss fetch runs and the result is stored
// under key with the given TTL. Cache failures fall through to fetch.
func Aside[T any](ctx context.Context, key string, ttl time.Duration, fetch func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	c := GetClient()
	if c == nil {
		return fetch(ctx)
	}

	raw, err := c.Get(ctx, key).Result()
	if err == nil {
		var cached T
		if jsonErr := json.Unmarshal([]byte(raw), &cached); jsonErr == nil {
			return cached, nil
		}
		// Corrupt entry, drop it and refetch.
		c.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		middleware.Logger.WarnContext(ctx, "cache read failed", "key", key, "error", err)
	}

	value, err := fetch(ctx)
	if err != nil {
		return zero, err
	}

	if encoded, jsonErr := json.Marshal(value); jsonErr == nil {
		if setErr := c.Set(ctx, key, encoded, ttl).Err(); setErr != nil {
			middleware.Logger.WarnContext(ctx, "cache write failed", "key", key, "error", setErr)
		}
	}
	return value, nil
}

// Invalidate removes keys matching the given patterns. Used after writes
// that change data served from the cache.
func Invalidate(ctx context.Context, patterns ...string) {
	c := GetClient()
	if c == nil {
		return
	}
	for _, pattern := range patterns {
		iter := c.Scan(ctx, 0, pattern, 100).Iterator()
		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			middleware.Logger.WarnContext(ctx, "cache scan failed", "pattern", pattern, "error", err)
			continue
		}
		if len(keys) > 0 {
			if err := c.Del(ctx, keys...).Err(); err != nil {
				middleware.Logger.WarnContext(ctx, "cache invalidation failed", "pattern", pattern, "error", err)
			}
		}
	}
}
