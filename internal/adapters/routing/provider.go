package routing

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"carpool-planner/internal/domain"
	"carpool-planner/internal/platform/obs"
)

// Backend computes a route through an ordered coordinate sequence. A backend
// failure is an ordinary event: the provider logs it and tries the next one.
type Backend interface {
	Name() domain.RouteSource
	Compute(ctx context.Context, seq []domain.Coordinate) (*domain.Route, error)
}

// RouteCache stores routes keyed by the exact coordinate sequence that
// requested them. Implementations must tolerate concurrent use; last write
// wins is acceptable because routes for the same key are idempotent.
type RouteCache interface {
	Get(ctx context.Context, key string) (*domain.Route, bool)
	Put(ctx context.Context, key string, route *domain.Route)
}

// Provider tries backends in priority order with a shared cache in front.
// The chain is built once per instance from configuration; the straight-line
// estimator at the end of a normal chain guarantees every call succeeds.
type Provider struct {
	backends []Backend
	cache    RouteCache
	limiter  *rate.Limiter
	log      *zap.Logger
}

// minRequestSpacing throttles backend calls; the limiter state is shared
// across all calls on the same provider instance.
const minRequestSpacing = 100 * time.Millisecond

func NewProvider(backends []Backend, cache RouteCache, log *zap.Logger) *Provider {
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &Provider{
		backends: backends,
		cache:    cache,
		limiter:  rate.NewLimiter(rate.Every(minRequestSpacing), 1),
		log:      log,
	}
}

func (p *Provider) ComputeRoute(ctx context.Context, seq []domain.Coordinate) (_ *domain.Route, err error) {
	defer obs.Time(p.log, "routing.ComputeRoute")(&err)

	if len(seq) < 2 {
		return nil, errors.New("compute route: at least two coordinates required")
	}
	for _, c := range seq {
		if err := c.Validate(); err != nil {
			return nil, err
		}
	}

	key := CacheKey(seq)
	if route, ok := p.cache.Get(ctx, key); ok {
		p.log.Debug("route cache hit", zap.String("key", key))
		return route, nil
	}

	for _, backend := range p.backends {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		route, err := backend.Compute(ctx, seq)
		if err != nil {
			p.log.Warn("routing backend failed, falling through",
				zap.String("backend", string(backend.Name())),
				zap.Error(err),
			)
			continue
		}

		p.cache.Put(ctx, key, route)
		return route, nil
	}

	return nil, &domain.RoutingExhaustedError{Attempts: len(p.backends)}
}

// CacheKey serializes the coordinate sequence losslessly, so two sequences
// collide only when they are exactly equal, stop order included.
func CacheKey(seq []domain.Coordinate) string {
	parts := make([]string, 0, len(seq))
	for _, c := range seq {
		parts = append(parts,
			strconv.FormatFloat(c.Lat, 'f', -1, 64)+","+strconv.FormatFloat(c.Lng, 'f', -1, 64))
	}
	return strings.Join(parts, "|")
}
