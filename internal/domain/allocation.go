package domain

import "fmt"

// Allocation maps a driver id to the set of pickup ids assigned to them.
// Order within a driver's set carries no meaning; stop ordering happens later.
type Allocation map[string][]string

// PickupIDs returns every assigned pickup id across all drivers.
func (a Allocation) PickupIDs() []string {
	var ids []string
	for _, assigned := range a {
		ids = append(ids, assigned...)
	}
	return ids
}

// CapacityWarning is a non-fatal advisory: allocation completed but the
// driver ended up over seat capacity because no feasible driver existed.
type CapacityWarning struct {
	DriverID     string
	PickupID     string
	Load         int
	SeatCapacity int
}

func (w CapacityWarning) String() string {
	return fmt.Sprintf(
		"driver %s over capacity after pickup %s: load=%d capacity=%d",
		w.DriverID, w.PickupID, w.Load, w.SeatCapacity,
	)
}
