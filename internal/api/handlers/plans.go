package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"carpool-planner/internal/api/dto"
	"carpool-planner/internal/domain"
	"carpool-planner/internal/ports"
	"carpool-planner/internal/services"
)

type PlanHandler struct {
	Resolver      ports.GeoResolver
	Provider      ports.RouteProvider
	PenaltyWeight float64
	SeatCapacity  int
	Buffer        time.Duration
	Log           *zap.Logger
}

// Plan orchestrates the full pipeline for one request: resolve addresses,
// allocate pickups to drivers, route each driver, and schedule backward from
// the deadline.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(h.Log, w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PlanRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(h.Log, w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(h.Log, w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if req.Destination.Deadline.IsZero() {
		writeError(h.Log, w, r, http.StatusBadRequest, "destination.deadline is required")
		return
	}
	if len(req.Drivers) == 0 {
		writeError(h.Log, w, r, http.StatusBadRequest, "at least one driver is required")
		return
	}

	strategy, err := h.strategyFor(req.Strategy)
	if err != nil {
		writeError(h.Log, w, r, http.StatusBadRequest, err.Error())
		return
	}

	buffer := h.Buffer
	if req.BufferMinutes > 0 {
		buffer = time.Duration(req.BufferMinutes) * time.Minute
	}

	destination := &domain.Destination{
		Address:  strings.TrimSpace(req.Destination.Address),
		Deadline: req.Destination.Deadline,
	}
	if req.Destination.Coordinate != nil {
		destination.Coordinate = coordinateFromDTO(*req.Destination.Coordinate)
	}

	drivers := make([]*domain.Driver, 0, len(req.Drivers))
	for _, d := range req.Drivers {
		seats := d.SeatCapacity
		if seats == 0 {
			seats = h.SeatCapacity
		}
		driver := domain.NewDriver(strings.TrimSpace(d.Name), strings.TrimSpace(d.Address), seats)
		if d.Coordinate != nil {
			driver.Coordinate = coordinateFromDTO(*d.Coordinate)
		}
		drivers = append(drivers, driver)
	}

	pickups := make([]*domain.PickupRequest, 0, len(req.Pickups))
	for _, p := range req.Pickups {
		pickup := domain.NewPickupRequest(strings.TrimSpace(p.Name), strings.TrimSpace(p.Address), p.PartySize)
		if p.Coordinate != nil {
			pickup.Coordinate = coordinateFromDTO(*p.Coordinate)
		}
		pickups = append(pickups, pickup)
	}

	svcReq := services.PlanRequest{
		Destination: destination,
		Drivers:     drivers,
		Pickups:     pickups,
		Strategy:    strategy,
		Buffer:      buffer,
	}

	result, err := services.PlanCarpool(r.Context(), svcReq, h.Resolver, h.Provider)
	if err != nil {
		var unresolvable *domain.UnresolvableAddressError
		var missingLocality *domain.MissingLocalityContextError
		switch {
		case errors.As(err, &unresolvable), errors.As(err, &missingLocality):
			writeError(h.Log, w, r, http.StatusUnprocessableEntity, err.Error())
		default:
			h.Log.Error("plan carpool failed", zap.Error(err))
			writeError(h.Log, w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(h.Log, w, r, http.StatusOK, planResponseFrom(result))
}

func (h *PlanHandler) strategyFor(name string) (services.AllocationStrategy, error) {
	switch strings.TrimSpace(name) {
	case "", "capacity_greedy":
		return services.NewCapacityGreedy(h.PenaltyWeight), nil
	case "proximity_cluster":
		return &services.ProximityCluster{}, nil
	default:
		return nil, errors.New("unknown strategy: " + name)
	}
}

func planResponseFrom(result *services.PlanResult) dto.PlanResponse {
	res := dto.PlanResponse{
		Plans:    make([]dto.DriverPlanResponse, 0, len(result.Plans)),
		Warnings: make([]dto.CapacityWarningResponse, 0, len(result.Warnings)),
	}

	for _, p := range result.Plans {
		arrivals := make(map[string]time.Time, len(p.Schedule.StopTimes))
		for _, st := range p.Schedule.StopTimes {
			arrivals[st.PickupID] = st.ArrivalAt
		}

		stops := make([]dto.StopResponse, 0, len(p.Pickups))
		for _, pickup := range p.Pickups {
			stops = append(stops, dto.StopResponse{
				PickupID:   pickup.ID,
				PickupName: pickup.Name,
				PartySize:  pickup.PartySize,
				ArriveAt:   arrivals[pickup.ID],
			})
		}

		geometry := make([]dto.CoordinateDTO, 0, len(p.Route.Geometry))
		for _, c := range p.Route.Geometry {
			geometry = append(geometry, dto.CoordinateDTO{Lat: c.Lat, Lng: c.Lng})
		}

		res.Plans = append(res.Plans, dto.DriverPlanResponse{
			DriverID:   p.Driver.ID,
			DriverName: p.Driver.Name,
			DepartAt:   p.Schedule.DriverDepartureAt,
			Stops:      stops,
			Route: dto.RouteResponse{
				DistanceMeters:      p.Route.DistanceMeters,
				DurationSeconds:     p.Route.DurationSeconds,
				Source:              string(p.Route.Source),
				TrafficDelaySeconds: p.Route.TrafficDelaySeconds,
				Geometry:            geometry,
			},
		})
	}

	for _, warn := range result.Warnings {
		res.Warnings = append(res.Warnings, dto.CapacityWarningResponse{
			DriverID:     warn.DriverID,
			PickupID:     warn.PickupID,
			Load:         warn.Load,
			SeatCapacity: warn.SeatCapacity,
		})
	}

	return res
}

func coordinateFromDTO(c dto.CoordinateDTO) domain.Coordinate {
	return domain.Coordinate{Lat: c.Lat, Lng: c.Lng}
}
