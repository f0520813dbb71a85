package services

import (
	"time"

	"carpool-planner/internal/domain"
)

// DefaultBuffer is subtracted from the deadline before any leg math so the
// group arrives with slack.
const DefaultBuffer = 5 * time.Minute

// ComputeSchedule derives stop times from an already-computed route: subtract
// the buffer from the deadline, then walk the legs last to first, subtracting
// each leg's duration. Every subtraction point where a pickup stop occurs
// yields that pickup's required arrival time; what remains after all legs is
// the driver's departure time. No routing calls happen here.
//
// The route's legs are expected to follow driver -> ordered pickups ->
// destination, so len(legs) == len(orderedPickups) + 1. A driver with no
// pickups gets a departure time only.
func ComputeSchedule(
	deadline time.Time,
	route *domain.Route,
	orderedPickups []*domain.PickupRequest,
	buffer time.Duration,
) domain.Schedule {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}

	target := deadline.Add(-buffer)
	legs := route.Legs

	stopTimes := make([]domain.StopTime, len(orderedPickups))

	current := target
	for i := len(legs) - 1; i >= 1; i-- {
		current = current.Add(-legDuration(legs[i]))

		if stop := i - 1; stop < len(orderedPickups) {
			stopTimes[stop] = domain.StopTime{
				PickupID:  orderedPickups[stop].ID,
				ArrivalAt: current,
			}
		}
	}

	if len(legs) > 0 {
		current = current.Add(-legDuration(legs[0]))
	}

	return domain.Schedule{
		DriverDepartureAt: current,
		StopTimes:         stopTimes,
	}
}

func legDuration(leg domain.Leg) time.Duration {
	return time.Duration(leg.DurationSeconds * float64(time.Second))
}
