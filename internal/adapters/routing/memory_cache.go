package routing

import (
	"context"
	"sync"

	"carpool-planner/internal/domain"
)

// MemoryCache is the default per-process route cache.
type MemoryCache struct {
	mu sync.RWMutex
	m  map[string]*domain.Route
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{m: make(map[string]*domain.Route)}
}

func (c *MemoryCache) Get(_ context.Context, key string) (*domain.Route, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	route, ok := c.m[key]
	return route, ok
}

func (c *MemoryCache) Put(_ context.Context, key string, route *domain.Route) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = route
}
