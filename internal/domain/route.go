package domain

import "time"

// RouteSource identifies which backend produced a route.
type RouteSource string

const (
	SourceGoogleMaps RouteSource = "google_maps"
	SourceOSRM       RouteSource = "osrm"
	SourceEstimator  RouteSource = "estimator"
)

// Step is a single driving instruction inside a leg.
type Step struct {
	Instruction     string
	DistanceMeters  float64
	DurationSeconds float64
}

// Leg is one segment between two consecutive stops in a route.
type Leg struct {
	DistanceMeters  float64
	DurationSeconds float64
	Steps           []Step
}

// Route is the realized path through an ordered coordinate sequence.
// Produced fresh per computation and cached by the exact sequence that
// requested it; never updated in place.
type Route struct {
	DistanceMeters  float64
	DurationSeconds float64
	Geometry        []Coordinate
	Legs            []Leg
	Source          RouteSource
	// TrafficDelaySeconds is set only when the producing backend had
	// traffic data for every leg.
	TrafficDelaySeconds *float64
}

// StopTime is the required arrival time at one pickup.
type StopTime struct {
	PickupID  string
	ArrivalAt time.Time
}

// Schedule is derived from a Route and a deadline; it is never persisted
// independently of the route it was computed from.
type Schedule struct {
	DriverDepartureAt time.Time
	StopTimes         []StopTime
}
