package geocode

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"carpool-planner/internal/domain"
	"carpool-planner/internal/ports"
)

type fakeGeocoder struct {
	calls     int
	locations map[string]ports.ResolvedLocation
}

func (f *fakeGeocoder) Search(_ context.Context, query string) (ports.ResolvedLocation, error) {
	f.calls++
	if loc, ok := f.locations[query]; ok {
		return loc, nil
	}
	return ports.ResolvedLocation{}, errors.New("no result")
}

func TestResolverMemoizesResults(t *testing.T) {
	gc := &fakeGeocoder{locations: map[string]ports.ResolvedLocation{
		"123 Main St": {Coordinate: domain.Coordinate{Lat: 42.0, Lng: -83.0}, DisplayName: "123 Main St"},
	}}
	r := NewResolver(gc, NewGazetteer(), zap.NewNop())

	first, err := r.Resolve(context.Background(), "123 Main St")
	require.NoError(t, err)

	second, err := r.Resolve(context.Background(), "123 Main St")
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, 1, gc.calls)
}

func TestResolverPrefersEmbeddedCode(t *testing.T) {
	gc := &fakeGeocoder{}
	r := NewResolver(gc, NewGazetteer(), zap.NewNop())

	loc, err := r.Resolve(context.Background(), "8QQ7+V8, Windsor, Ontario")
	require.NoError(t, err)

	// Anchored at the Windsor locality center, offset by the code symbols.
	require.InDelta(t, 42.3149+0.0530, loc.Coordinate.Lat, 1e-6)
	require.InDelta(t, -83.0364+0.050125, loc.Coordinate.Lng, 1e-6)
	require.Equal(t, 0, gc.calls, "embedded code should short-circuit the geocoder")
}

func TestResolverShortCodeWithoutLocality(t *testing.T) {
	r := NewResolver(&fakeGeocoder{}, NewGazetteer(), zap.NewNop())

	_, err := r.Resolve(context.Background(), "8QQ7+V8")

	var missing *domain.MissingLocalityContextError
	require.True(t, errors.As(err, &missing))
}

func TestResolverFallsBackToGazetteer(t *testing.T) {
	gc := &fakeGeocoder{}
	r := NewResolver(gc, NewGazetteer(), zap.NewNop())

	loc, err := r.Resolve(context.Background(), "Times Square, New York, NY")
	require.NoError(t, err)

	require.InDelta(t, 40.7580, loc.Coordinate.Lat, 1e-9)
	require.InDelta(t, -73.9855, loc.Coordinate.Lng, 1e-9)
	require.Equal(t, 1, gc.calls, "geocoder is tried before the gazetteer")
}

func TestResolverUnresolvableAddress(t *testing.T) {
	r := NewResolver(&fakeGeocoder{}, NewGazetteer(), zap.NewNop())

	_, err := r.Resolve(context.Background(), "Nowhere In Particular")

	var unresolvable *domain.UnresolvableAddressError
	require.True(t, errors.As(err, &unresolvable))
	require.Equal(t, "Nowhere In Particular", unresolvable.Address)
}

func TestResolverEmptyAddress(t *testing.T) {
	r := NewResolver(&fakeGeocoder{}, NewGazetteer(), zap.NewNop())

	_, err := r.Resolve(context.Background(), "   ")

	var unresolvable *domain.UnresolvableAddressError
	require.True(t, errors.As(err, &unresolvable))
}
