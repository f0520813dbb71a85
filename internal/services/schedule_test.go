package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"carpool-planner/internal/domain"
)

func TestComputeSchedule(t *testing.T) {
	deadline := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	buffer := 5 * time.Minute

	p1 := pickupAt("p1", 0, 1, 1)
	p2 := pickupAt("p2", 0, 2, 1)

	route := &domain.Route{
		Legs: []domain.Leg{
			{DurationSeconds: 100}, // driver -> p1
			{DurationSeconds: 200}, // p1 -> p2
			{DurationSeconds: 300}, // p2 -> destination
		},
	}

	schedule := ComputeSchedule(deadline, route, []*domain.PickupRequest{p1, p2}, buffer)

	target := deadline.Add(-buffer)

	require.Len(t, schedule.StopTimes, 2)
	require.Equal(t, p1.ID, schedule.StopTimes[0].PickupID)
	require.Equal(t, p2.ID, schedule.StopTimes[1].PickupID)

	require.Equal(t, target.Add(-500*time.Second), schedule.StopTimes[0].ArrivalAt)
	require.Equal(t, target.Add(-300*time.Second), schedule.StopTimes[1].ArrivalAt)
	require.Equal(t, target.Add(-600*time.Second), schedule.DriverDepartureAt)
}

func TestComputeScheduleDefaultBuffer(t *testing.T) {
	deadline := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	route := &domain.Route{
		Legs: []domain.Leg{{DurationSeconds: 60}},
	}

	schedule := ComputeSchedule(deadline, route, nil, 0)

	require.Empty(t, schedule.StopTimes)
	require.Equal(t, deadline.Add(-DefaultBuffer).Add(-time.Minute), schedule.DriverDepartureAt)
}

func TestComputeScheduleArrivalsAreOrdered(t *testing.T) {
	deadline := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	pickups := []*domain.PickupRequest{
		pickupAt("p1", 0, 1, 1),
		pickupAt("p2", 0, 2, 1),
		pickupAt("p3", 0, 3, 1),
	}

	route := &domain.Route{
		Legs: []domain.Leg{
			{DurationSeconds: 120},
			{DurationSeconds: 240},
			{DurationSeconds: 180},
			{DurationSeconds: 300},
		},
	}

	schedule := ComputeSchedule(deadline, route, pickups, 5*time.Minute)

	require.True(t, schedule.DriverDepartureAt.Before(schedule.StopTimes[0].ArrivalAt))
	for i := 1; i < len(schedule.StopTimes); i++ {
		require.True(t, schedule.StopTimes[i-1].ArrivalAt.Before(schedule.StopTimes[i].ArrivalAt))
	}
	require.True(t, schedule.StopTimes[len(schedule.StopTimes)-1].ArrivalAt.Before(deadline))
}
