package geocode

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"carpool-planner/internal/domain"
	"carpool-planner/internal/geo"
	"carpool-planner/internal/platform/obs"
	"carpool-planner/internal/ports"
)

// geocoder is the external lookup the resolver falls back to when the address
// carries no compact location code.
type geocoder interface {
	Search(ctx context.Context, query string) (ports.ResolvedLocation, error)
}

// Resolver turns address text into coordinates. Methods are tried in order,
// short-circuiting on the first success:
//
//  1. compact location code embedded in the text,
//  2. external geocoder,
//  3. static gazetteer.
//
// Every result is memoized by the exact input string for the lifetime of the
// resolver. Concurrent resolution of the same uncached key may duplicate an
// upstream call; results are idempotent and the cache write is last-write-wins.
type Resolver struct {
	geocoder  geocoder
	gazetteer *Gazetteer
	log       *zap.Logger

	mu    sync.RWMutex
	cache map[string]ports.ResolvedLocation
}

func NewResolver(gc geocoder, gaz *Gazetteer, log *zap.Logger) *Resolver {
	if gaz == nil {
		gaz = NewGazetteer()
	}
	return &Resolver{
		geocoder:  gc,
		gazetteer: gaz,
		log:       log,
		cache:     make(map[string]ports.ResolvedLocation),
	}
}

func (r *Resolver) Resolve(ctx context.Context, address string) (_ ports.ResolvedLocation, err error) {
	defer obs.Time(r.log, "geocode.Resolve")(&err)

	r.mu.RLock()
	cached, ok := r.cache[address]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	loc, err := r.resolve(ctx, address)
	if err != nil {
		return ports.ResolvedLocation{}, err
	}

	r.mu.Lock()
	r.cache[address] = loc
	r.mu.Unlock()

	return loc, nil
}

func (r *Resolver) resolve(ctx context.Context, address string) (ports.ResolvedLocation, error) {
	if strings.TrimSpace(address) == "" {
		return ports.ResolvedLocation{}, &domain.UnresolvableAddressError{Address: address}
	}

	if code, locality, found := geo.FindCode(address); found {
		loc, err := r.decodeCode(code, locality)
		if err == nil {
			return loc, nil
		}

		var missing *domain.MissingLocalityContextError
		if errors.As(err, &missing) {
			return ports.ResolvedLocation{}, err
		}

		// Malformed codes fall through to the remaining methods.
		r.log.Warn("location code decode failed",
			zap.String("code", code),
			zap.Error(err),
		)
	}

	if r.geocoder != nil {
		loc, err := r.geocoder.Search(ctx, address)
		if err == nil {
			return loc, nil
		}
		r.log.Warn("external geocoding failed, falling back to gazetteer",
			zap.String("address", address),
			zap.Error(err),
		)
	}

	if loc, ok := r.gazetteer.Lookup(address); ok {
		return loc, nil
	}

	return ports.ResolvedLocation{}, &domain.UnresolvableAddressError{Address: address}
}

func (r *Resolver) decodeCode(code, locality string) (ports.ResolvedLocation, error) {
	var anchor *domain.Coordinate
	if locality != "" {
		if center, ok := r.gazetteer.LocalityCenter(locality); ok {
			anchor = &center
		} else {
			// Unknown locality still anchors somewhere deterministic.
			anchor = &domain.Coordinate{}
		}
	}

	coord, err := geo.Decode(code, anchor)
	if err != nil {
		return ports.ResolvedLocation{}, err
	}

	name := fmt.Sprintf("Location code %s", code)
	if locality != "" {
		name = fmt.Sprintf("%s (location code %s)", locality, code)
	}

	return ports.ResolvedLocation{Coordinate: coord, DisplayName: name}, nil
}
