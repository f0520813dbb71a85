package ports

import (
	"context"

	"carpool-planner/internal/domain"
)

// ResolvedLocation is a coordinate plus the canonical display name the
// resolving method reported for it.
type ResolvedLocation struct {
	Coordinate  domain.Coordinate
	DisplayName string
}

// Contract for turning an address string into a coordinate.
type GeoResolver interface {
	// Resolve returns the best coordinate for the address text, or a
	// domain.UnresolvableAddressError when no method succeeds.
	Resolve(ctx context.Context, address string) (ResolvedLocation, error)
}
