package routing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"carpool-planner/internal/domain"
	"carpool-planner/internal/geo"
)

func TestEstimatorCompute(t *testing.T) {
	seq := []domain.Coordinate{
		{Lat: 0, Lng: 0},
		{Lat: 0, Lng: 1},
		{Lat: 1, Lng: 1},
	}

	est := NewEstimator(30)

	route, err := est.Compute(context.Background(), seq)
	require.NoError(t, err)

	require.Equal(t, domain.SourceEstimator, route.Source)
	require.Len(t, route.Legs, 2)
	require.Equal(t, seq, route.Geometry)

	wantMeters := geo.DistanceMeters(seq[0], seq[1]) + geo.DistanceMeters(seq[1], seq[2])
	require.InDelta(t, wantMeters, route.DistanceMeters, 1e-6)

	// 30 km/h means 120 seconds per kilometre.
	require.InDelta(t, wantMeters/1000*120, route.DurationSeconds, 1e-6)

	for _, leg := range route.Legs {
		require.Len(t, leg.Steps, 1)
		require.InDelta(t, leg.DistanceMeters, leg.Steps[0].DistanceMeters, 1e-9)
	}
}

func TestEstimatorDefaultSpeed(t *testing.T) {
	est := NewEstimator(0)

	route, err := est.Compute(context.Background(), []domain.Coordinate{
		{Lat: 0, Lng: 0},
		{Lat: 0, Lng: 1},
	})
	require.NoError(t, err)

	want := geo.DistanceMeters(domain.Coordinate{}, domain.Coordinate{Lng: 1}) / 1000 * (3600 / DefaultEstimatorSpeedKmh)
	require.InDelta(t, want, route.DurationSeconds, 1e-6)
}
