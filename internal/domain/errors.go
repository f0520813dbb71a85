package domain

import "fmt"

// UnresolvableAddressError means no resolution method produced a coordinate
// for the address. Planning cannot proceed for that entity.
type UnresolvableAddressError struct {
	Address string
}

func (e *UnresolvableAddressError) Error() string {
	return fmt.Sprintf("address %q could not be resolved by any method", e.Address)
}

// MissingLocalityContextError means a short location code was given without
// any locality text to anchor it.
type MissingLocalityContextError struct {
	Code string
}

func (e *MissingLocalityContextError) Error() string {
	return fmt.Sprintf("short code %q requires locality context", e.Code)
}

// RoutingExhaustedError means every routing backend failed. The straight-line
// estimator never fails, so seeing this in practice is a wiring defect.
type RoutingExhaustedError struct {
	Attempts int
}

func (e *RoutingExhaustedError) Error() string {
	return fmt.Sprintf("all %d routing backends failed", e.Attempts)
}
