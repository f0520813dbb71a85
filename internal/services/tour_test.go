package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"carpool-planner/internal/domain"
)

func TestOrderStopsNearestNeighbor(t *testing.T) {
	driver := driverAt("d", 0, 0, 4)

	far := pickupAt("far", 0, 5, 1)
	near := pickupAt("near", 0, 1, 1)

	ordered := OrderStops(driver, []*domain.PickupRequest{far, near})

	require.Equal(t, []*domain.PickupRequest{near, far}, ordered)
}

func TestOrderStopsChainsFromLastStop(t *testing.T) {
	driver := driverAt("d", 0, 0, 4)

	// b is closer to the driver, but after visiting b the next nearest is c,
	// not a; the tour chains from the previous stop, not from the driver.
	a := pickupAt("a", 0, 10, 1)
	b := pickupAt("b", 0, 4, 1)
	c := pickupAt("c", 0, 6, 1)

	ordered := OrderStops(driver, []*domain.PickupRequest{a, b, c})

	require.Equal(t, []*domain.PickupRequest{b, c, a}, ordered)
}

func TestOrderStopsSmallInputs(t *testing.T) {
	driver := driverAt("d", 0, 0, 4)

	require.Empty(t, OrderStops(driver, nil))

	single := []*domain.PickupRequest{pickupAt("only", 0, 1, 1)}
	require.Equal(t, single, OrderStops(driver, single))
}

func TestOrderStopsTiesKeepInputOrder(t *testing.T) {
	driver := driverAt("d", 0, 0, 4)

	first := pickupAt("first", 0, 1, 1)
	second := pickupAt("second", 0, -1, 1)

	ordered := OrderStops(driver, []*domain.PickupRequest{first, second})

	require.Equal(t, []*domain.PickupRequest{first, second}, ordered)
}
