package services

import (
	"carpool-planner/internal/domain"
	"carpool-planner/internal/geo"
)

// OrderStops arranges a driver's assigned pickups into a visiting sequence
// with the nearest-neighbor heuristic: from the driver's position, repeatedly
// step to the closest unvisited pickup. Ties resolve to input order. The
// result is a heuristic tour and is never reordered afterward.
func OrderStops(driver *domain.Driver, pickups []*domain.PickupRequest) []*domain.PickupRequest {
	if len(pickups) <= 1 {
		return pickups
	}

	ordered := make([]*domain.PickupRequest, 0, len(pickups))
	remaining := make([]*domain.PickupRequest, len(pickups))
	copy(remaining, pickups)

	current := driver.Coordinate

	for len(remaining) > 0 {
		nearest := 0
		nearestDistance := geo.DistanceKm(current, remaining[0].Coordinate)

		for i := 1; i < len(remaining); i++ {
			if d := geo.DistanceKm(current, remaining[i].Coordinate); d < nearestDistance {
				nearestDistance = d
				nearest = i
			}
		}

		next := remaining[nearest]
		ordered = append(ordered, next)
		remaining = append(remaining[:nearest], remaining[nearest+1:]...)
		current = next.Coordinate
	}

	return ordered
}
