package routing

import (
	"context"
	"fmt"

	"carpool-planner/internal/domain"
	"carpool-planner/internal/geo"
)

// DefaultEstimatorSpeedKmh matches the reference average driving speed.
const DefaultEstimatorSpeedKmh = 30.0

// Estimator is the terminal backend: straight-line haversine legs at a fixed
// average speed. It never fails, which bounds the fallback chain.
type Estimator struct {
	speedKmh float64
}

func NewEstimator(speedKmh float64) *Estimator {
	if speedKmh <= 0 {
		speedKmh = DefaultEstimatorSpeedKmh
	}
	return &Estimator{speedKmh: speedKmh}
}

func (e *Estimator) Name() domain.RouteSource { return domain.SourceEstimator }

func (e *Estimator) Compute(_ context.Context, seq []domain.Coordinate) (*domain.Route, error) {
	legs := make([]domain.Leg, 0, len(seq)-1)
	var totalMeters, totalSeconds float64

	for i := 0; i < len(seq)-1; i++ {
		meters := geo.DistanceMeters(seq[i], seq[i+1])
		seconds := (meters / 1000) * (3600 / e.speedKmh)

		legs = append(legs, domain.Leg{
			DistanceMeters:  meters,
			DurationSeconds: seconds,
			Steps: []domain.Step{{
				Instruction: fmt.Sprintf(
					"Drive from %.4f, %.4f to %.4f, %.4f",
					seq[i].Lat, seq[i].Lng, seq[i+1].Lat, seq[i+1].Lng,
				),
				DistanceMeters:  meters,
				DurationSeconds: seconds,
			}},
		})

		totalMeters += meters
		totalSeconds += seconds
	}

	geometry := make([]domain.Coordinate, len(seq))
	copy(geometry, seq)

	return &domain.Route{
		DistanceMeters:  totalMeters,
		DurationSeconds: totalSeconds,
		Geometry:        geometry,
		Legs:            legs,
		Source:          domain.SourceEstimator,
	}, nil
}
