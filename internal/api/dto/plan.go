package dto

import "time"

type CoordinateDTO struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type DestinationRequest struct {
	Address    string         `json:"address"`
	Coordinate *CoordinateDTO `json:"coordinate,omitempty"`
	Deadline   time.Time      `json:"deadline"`
}

type DriverRequest struct {
	Name         string         `json:"name"`
	Address      string         `json:"address"`
	Coordinate   *CoordinateDTO `json:"coordinate,omitempty"`
	SeatCapacity int            `json:"seat_capacity"`
}

type PickupRequestDTO struct {
	Name       string         `json:"name"`
	Address    string         `json:"address"`
	Coordinate *CoordinateDTO `json:"coordinate,omitempty"`
	PartySize  int            `json:"party_size"`
}

type PlanRequest struct {
	Destination   DestinationRequest `json:"destination"`
	Drivers       []DriverRequest    `json:"drivers"`
	Pickups       []PickupRequestDTO `json:"pickups"`
	Strategy      string             `json:"strategy,omitempty"`
	BufferMinutes int                `json:"buffer_minutes,omitempty"`
}

type StopResponse struct {
	PickupID   string    `json:"pickup_id"`
	PickupName string    `json:"pickup_name"`
	PartySize  int       `json:"party_size"`
	ArriveAt   time.Time `json:"arrive_at"`
}

type RouteResponse struct {
	DistanceMeters      float64         `json:"distance_meters"`
	DurationSeconds     float64         `json:"duration_seconds"`
	Source              string          `json:"source"`
	TrafficDelaySeconds *float64        `json:"traffic_delay_seconds,omitempty"`
	Geometry            []CoordinateDTO `json:"geometry,omitempty"`
}

type DriverPlanResponse struct {
	DriverID   string         `json:"driver_id"`
	DriverName string         `json:"driver_name"`
	DepartAt   time.Time      `json:"depart_at"`
	Stops      []StopResponse `json:"stops"`
	Route      RouteResponse  `json:"route"`
}

type CapacityWarningResponse struct {
	DriverID     string `json:"driver_id"`
	PickupID     string `json:"pickup_id"`
	Load         int    `json:"load"`
	SeatCapacity int    `json:"seat_capacity"`
}

type PlanResponse struct {
	Plans    []DriverPlanResponse      `json:"plans"`
	Warnings []CapacityWarningResponse `json:"warnings"`
}
