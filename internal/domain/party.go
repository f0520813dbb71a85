package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultSeatCapacity is used when a driver is created without one.
const DefaultSeatCapacity = 4

// Driver offers seats and starts from their own location.
// Never mutated after creation except removal from the session.
type Driver struct {
	ID           string
	Name         string
	Address      string
	Coordinate   Coordinate
	SeatCapacity int
}

func NewDriver(name, address string, seatCapacity int) *Driver {
	if seatCapacity < 1 {
		seatCapacity = DefaultSeatCapacity
	}
	return &Driver{
		ID:           uuid.NewString(),
		Name:         name,
		Address:      address,
		SeatCapacity: seatCapacity,
	}
}

// PickupRequest is a party waiting at a location for a seat assignment.
type PickupRequest struct {
	ID         string
	Name       string
	Address    string
	Coordinate Coordinate
	PartySize  int
}

func NewPickupRequest(name, address string, partySize int) *PickupRequest {
	if partySize < 1 {
		partySize = 1
	}
	return &PickupRequest{
		ID:        uuid.NewString(),
		Name:      name,
		Address:   address,
		PartySize: partySize,
	}
}

// Destination is the shared target everyone must reach by Deadline.
// Singleton per planning session.
type Destination struct {
	Address    string
	Coordinate Coordinate
	Deadline   time.Time
}
