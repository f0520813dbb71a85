package services

import (
	"carpool-planner/internal/domain"
	"carpool-planner/internal/geo"
)

// DefaultLoadPenaltyWeight is the per-seat penalty added to a driver's
// score as their load grows; it discourages piling onto a busy driver.
// Kept configurable: the value is heuristic, not derived.
const DefaultLoadPenaltyWeight = 2.0

// AllocationResult always carries a complete assignment. Warnings record
// drivers pushed over capacity because no feasible driver existed; they are
// advisory and must be surfaced, never dropped.
type AllocationResult struct {
	Assignments domain.Allocation
	Warnings    []domain.CapacityWarning
}

// AllocationStrategy assigns every pickup to exactly one driver. It never
// fails: infeasible inputs degrade to an explicit over-capacity assignment.
type AllocationStrategy interface {
	Name() string
	Allocate(drivers []*domain.Driver, pickups []*domain.PickupRequest) AllocationResult
}

// CapacityGreedy iteratively picks the (pickup, driver) pair minimizing
// distance + penaltyWeight*load among pairs that fit the driver's remaining
// seats. Ties resolve to the first-encountered pair in input order.
type CapacityGreedy struct {
	PenaltyWeight float64
}

func NewCapacityGreedy(penaltyWeight float64) *CapacityGreedy {
	if penaltyWeight <= 0 {
		penaltyWeight = DefaultLoadPenaltyWeight
	}
	return &CapacityGreedy{PenaltyWeight: penaltyWeight}
}

func (s *CapacityGreedy) Name() string { return "capacity_greedy" }

func (s *CapacityGreedy) Allocate(drivers []*domain.Driver, pickups []*domain.PickupRequest) AllocationResult {
	result := AllocationResult{Assignments: make(domain.Allocation, len(drivers))}
	for _, d := range drivers {
		result.Assignments[d.ID] = []string{}
	}
	if len(drivers) == 0 {
		return result
	}

	loads := make(map[string]int, len(drivers))
	remaining := make([]*domain.PickupRequest, len(pickups))
	copy(remaining, pickups)

	for len(remaining) > 0 {
		bestScore := 0.0
		bestPickup := -1
		var bestDriver *domain.Driver

		for pi, pickup := range remaining {
			for _, driver := range drivers {
				if loads[driver.ID]+pickup.PartySize > driver.SeatCapacity {
					continue
				}

				score := geo.DistanceKm(driver.Coordinate, pickup.Coordinate) +
					s.PenaltyWeight*float64(loads[driver.ID])

				if bestPickup == -1 || score < bestScore {
					bestScore = score
					bestPickup = pi
					bestDriver = driver
				}
			}
		}

		if bestPickup >= 0 {
			pickup := remaining[bestPickup]
			result.Assignments[bestDriver.ID] = append(result.Assignments[bestDriver.ID], pickup.ID)
			loads[bestDriver.ID] += pickup.PartySize
			remaining = append(remaining[:bestPickup], remaining[bestPickup+1:]...)
			continue
		}

		// No pair fits. Assign the first remaining pickup anyway: prefer a
		// driver with enough remaining seats, else the driver with the
		// greatest remaining margin, accepting the over-capacity result.
		pickup := remaining[0]
		driver := overflowDriver(drivers, loads, pickup.PartySize)

		result.Assignments[driver.ID] = append(result.Assignments[driver.ID], pickup.ID)
		loads[driver.ID] += pickup.PartySize
		remaining = remaining[1:]

		if loads[driver.ID] > driver.SeatCapacity {
			result.Warnings = append(result.Warnings, domain.CapacityWarning{
				DriverID:     driver.ID,
				PickupID:     pickup.ID,
				Load:         loads[driver.ID],
				SeatCapacity: driver.SeatCapacity,
			})
		}
	}

	return result
}

func overflowDriver(drivers []*domain.Driver, loads map[string]int, partySize int) *domain.Driver {
	best := drivers[0]
	bestMargin := best.SeatCapacity - loads[best.ID]

	for _, d := range drivers[1:] {
		margin := d.SeatCapacity - loads[d.ID]
		if margin > bestMargin {
			best = d
			bestMargin = margin
		}
	}

	if bestMargin >= partySize {
		// A fitting driver exists after all; take the first one in input
		// order rather than the largest margin.
		for _, d := range drivers {
			if d.SeatCapacity-loads[d.ID] >= partySize {
				return d
			}
		}
	}

	return best
}

// ProximityCluster assigns each pickup independently to the nearest driver
// by straight-line distance, ignoring capacity. A simpler baseline.
type ProximityCluster struct{}

func (s *ProximityCluster) Name() string { return "proximity_cluster" }

func (s *ProximityCluster) Allocate(drivers []*domain.Driver, pickups []*domain.PickupRequest) AllocationResult {
	result := AllocationResult{Assignments: make(domain.Allocation, len(drivers))}
	for _, d := range drivers {
		result.Assignments[d.ID] = []string{}
	}
	if len(drivers) == 0 {
		return result
	}

	for _, pickup := range pickups {
		closest := drivers[0]
		minDistance := geo.DistanceKm(drivers[0].Coordinate, pickup.Coordinate)

		for _, driver := range drivers[1:] {
			if d := geo.DistanceKm(driver.Coordinate, pickup.Coordinate); d < minDistance {
				minDistance = d
				closest = driver
			}
		}

		result.Assignments[closest.ID] = append(result.Assignments[closest.ID], pickup.ID)
	}

	return result
}
