package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func setupCache(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAside(t *testing.T) {
	ctx := context.Background()

	t.Run("miss fetches and stores", func(t *testing.T) {
		mr := setupCache(t)

		fetches := 0
		out, err := Aside(ctx, "test:key", time.Minute, func(_ context.Context) (payload, error) {
			fetches++
			return payload{Name: "a", Count: 1}, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, fetches)
		assert.Equal(t, "a", out.Name)
		assert.True(t, mr.Exists("test:key"))
	})

	t.Run("hit skips the fetch", func(t *testing.T) {
		setupCache(t)

		fetch := func(_ context.Context) (payload, error) {
			return payload{Name: "fresh", Count: 2}, nil
		}
		_, err := Aside(ctx, "test:key", time.Minute, fetch)
		require.NoError(t, err)

		out, err := Aside(ctx, "test:key", time.Minute, func(_ context.Context) (payload, error) {
			t.Fatal("fetch should not run on a cache hit")
			return payload{}, nil
		})
		require.NoError(t, err)
		assert.Equal(t, "fresh", out.Name)
	})

	t.Run("corrupt entry falls through to fetch", func(t *testing.T) {
		mr := setupCache(t)
		require.NoError(t, mr.Set("test:key", "{not json"))

		out, err := Aside(ctx, "test:key", time.Minute, func(_ context.Context) (payload, error) {
			return payload{Name: "rebuilt"}, nil
		})
		require.NoError(t, err)
		assert.Equal(t, "rebuilt", out.Name)
	})

	t.Run("fetch error propagates and nothing is cached", func(t *testing.T) {
		mr := setupCache(t)

		_, err := Aside(ctx, "test:key", time.Minute, func(_ context.Context) (payload, error) {
			return payload{}, errors.New("db down")
		})
		assert.Error(t, err)
		assert.False(t, mr.Exists("test:key"))
	})

	t.Run("no client falls through to fetch", func(t *testing.T) {
		SetClient(nil)

		out, err := Aside(ctx, "test:key", time.Minute, func(_ context.Context) (payload, error) {
			return payload{Name: "direct"}, nil
		})
		require.NoError(t, err)
		assert.Equal(t, "direct", out.Name)
	})
}

func TestInvalidate(t *testing.T) {
	ctx := context.Background()
	mr := setupCache(t)

	require.NoError(t, mr.Set("events:list:a", "1"))
	require.NoError(t, mr.Set("events:list:b", "2"))
	require.NoError(t, mr.Set("event:7", "3"))

	InvalidateEventsList(ctx)

	assert.False(t, mr.Exists("events:list:a"))
	assert.False(t, mr.Exists("events:list:b"))
	assert.True(t, mr.Exists("event:7"))
}
