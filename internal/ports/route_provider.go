package ports

import (
	"context"

	"carpool-planner/internal/domain"
)

// Contract for computing a route through an ordered coordinate sequence
// (at least two points: origin, then zero or more stops, then destination).
type RouteProvider interface {
	ComputeRoute(ctx context.Context, seq []domain.Coordinate) (*domain.Route, error)
}
