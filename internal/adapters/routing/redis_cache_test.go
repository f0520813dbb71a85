package routing

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"carpool-planner/internal/domain"
)

func newTestRedisCache(t *testing.T) *RedisCache {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return NewRedisCache(rdb, time.Minute, zap.NewNop())
}

func TestRedisCacheRoundTrip(t *testing.T) {
	cache := newTestRedisCache(t)

	route := &domain.Route{
		DistanceMeters:  1234.5,
		DurationSeconds: 678.9,
		Source:          domain.SourceOSRM,
		Legs: []domain.Leg{
			{DistanceMeters: 1234.5, DurationSeconds: 678.9},
		},
	}

	cache.Put(context.Background(), "0,0|0,1", route)

	got, ok := cache.Get(context.Background(), "0,0|0,1")
	require.True(t, ok)
	require.Equal(t, route, got)
}

func TestRedisCacheMiss(t *testing.T) {
	cache := newTestRedisCache(t)

	_, ok := cache.Get(context.Background(), "missing")
	require.False(t, ok)
}

func TestRedisCacheCorruptEntry(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	require.NoError(t, mr.Set(redisKeyPrefix+"bad", "not json"))

	cache := NewRedisCache(rdb, time.Minute, zap.NewNop())

	_, ok := cache.Get(context.Background(), "bad")
	require.False(t, ok)
}
