package routing

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"carpool-planner/internal/domain"
)

const redisKeyPrefix = "route:"

// RedisCache shares computed routes across processes. Cache failures are
// logged and treated as misses so routing never depends on Redis health.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *RedisCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisCache{rdb: rdb, ttl: ttl, log: log}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*domain.Route, bool) {
	payload, err := c.rdb.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("route cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var route domain.Route
	if err := json.Unmarshal(payload, &route); err != nil {
		c.log.Warn("route cache entry corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	return &route, true
}

func (c *RedisCache) Put(ctx context.Context, key string, route *domain.Route) {
	payload, err := json.Marshal(route)
	if err != nil {
		c.log.Warn("route cache encode failed", zap.Error(err))
		return
	}

	if err := c.rdb.Set(ctx, redisKeyPrefix+key, payload, c.ttl).Err(); err != nil {
		c.log.Warn("route cache write failed", zap.Error(err))
	}
}
