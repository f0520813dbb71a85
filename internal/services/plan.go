package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"carpool-planner/internal/domain"
	"carpool-planner/internal/ports"
)

// PlanRequest is one consistent input snapshot. Allocation, routes, and
// schedules are recomputed from scratch on every call; any change to
// drivers, pickups, or the destination requires a fresh request.
type PlanRequest struct {
	Destination *domain.Destination
	Drivers     []*domain.Driver
	Pickups     []*domain.PickupRequest
	Strategy    AllocationStrategy
	Buffer      time.Duration
}

// DriverPlan is the complete result for one driver: their ordered pickups,
// the realized route through them, and the backward-propagated schedule.
type DriverPlan struct {
	Driver   *domain.Driver
	Pickups  []*domain.PickupRequest
	Route    *domain.Route
	Schedule domain.Schedule
}

type PlanResult struct {
	Plans      []*DriverPlan
	Allocation domain.Allocation
	Warnings   []domain.CapacityWarning
}

type driverPlanResult struct {
	index int
	plan  *DriverPlan
	err   error
}

// PlanCarpool runs the whole pipeline: resolve unresolved addresses, assign
// pickups to drivers, order each driver's stops, compute the realized route
// driver -> pickups -> destination, and derive the schedule from the
// deadline. Per-driver routes are independent given the shared cache, so
// they are computed with bounded concurrency.
func PlanCarpool(
	ctx context.Context,
	req PlanRequest,
	resolver ports.GeoResolver,
	provider ports.RouteProvider,
) (*PlanResult, error) {
	if req.Destination == nil {
		return nil, errors.New("plan carpool: destination is required")
	}
	if len(req.Drivers) == 0 {
		return nil, errors.New("plan carpool: at least one driver is required")
	}

	strategy := req.Strategy
	if strategy == nil {
		strategy = NewCapacityGreedy(DefaultLoadPenaltyWeight)
	}

	if err := resolveAll(ctx, req, resolver); err != nil {
		return nil, err
	}

	allocated := strategy.Allocate(req.Drivers, req.Pickups)

	pickupsByID := make(map[string]*domain.PickupRequest, len(req.Pickups))
	for _, p := range req.Pickups {
		pickupsByID[p.ID] = p
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := make(chan struct{}, 5)
	resultsCh := make(chan driverPlanResult, len(req.Drivers))
	var wg sync.WaitGroup

	for i, driver := range req.Drivers {
		assigned := make([]*domain.PickupRequest, 0, len(allocated.Assignments[driver.ID]))
		for _, id := range allocated.Assignments[driver.ID] {
			if p, ok := pickupsByID[id]; ok {
				assigned = append(assigned, p)
			}
		}

		wg.Add(1)
		go func(index int, driver *domain.Driver, assigned []*domain.PickupRequest) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			plan, err := planDriver(ctx, driver, assigned, req, provider)
			if err != nil {
				resultsCh <- driverPlanResult{index: index, err: err}
				cancel()
				return
			}
			resultsCh <- driverPlanResult{index: index, plan: plan}
		}(i, driver, assigned)
	}

	wg.Wait()
	close(resultsCh)

	plans := make([]*DriverPlan, len(req.Drivers))
	var planErr error
	for res := range resultsCh {
		if res.err != nil {
			if planErr == nil {
				planErr = res.err
			}
			continue
		}
		plans[res.index] = res.plan
	}
	if planErr != nil {
		return nil, planErr
	}

	return &PlanResult{
		Plans:      plans,
		Allocation: allocated.Assignments,
		Warnings:   allocated.Warnings,
	}, nil
}

func planDriver(
	ctx context.Context,
	driver *domain.Driver,
	assigned []*domain.PickupRequest,
	req PlanRequest,
	provider ports.RouteProvider,
) (*DriverPlan, error) {
	ordered := OrderStops(driver, assigned)

	seq := make([]domain.Coordinate, 0, len(ordered)+2)
	seq = append(seq, driver.Coordinate)
	for _, p := range ordered {
		seq = append(seq, p.Coordinate)
	}
	seq = append(seq, req.Destination.Coordinate)

	route, err := provider.ComputeRoute(ctx, seq)
	if err != nil {
		return nil, fmt.Errorf("plan carpool: route for driver %q: %w", driver.ID, err)
	}

	return &DriverPlan{
		Driver:   driver,
		Pickups:  ordered,
		Route:    route,
		Schedule: ComputeSchedule(req.Destination.Deadline, route, ordered, req.Buffer),
	}, nil
}

// resolveAll fills in coordinates for any entity that still carries only an
// address. The geocoder is rate-limited, so resolution stays sequential.
func resolveAll(ctx context.Context, req PlanRequest, resolver ports.GeoResolver) error {
	resolve := func(address string, coord *domain.Coordinate) error {
		if !coord.IsZero() || address == "" {
			return coord.Validate()
		}
		if resolver == nil {
			return &domain.UnresolvableAddressError{Address: address}
		}
		loc, err := resolver.Resolve(ctx, address)
		if err != nil {
			return err
		}
		*coord = loc.Coordinate
		return nil
	}

	if err := resolve(req.Destination.Address, &req.Destination.Coordinate); err != nil {
		return fmt.Errorf("plan carpool: destination: %w", err)
	}
	for _, d := range req.Drivers {
		if err := resolve(d.Address, &d.Coordinate); err != nil {
			return fmt.Errorf("plan carpool: driver %q: %w", d.Name, err)
		}
	}
	for _, p := range req.Pickups {
		if err := resolve(p.Address, &p.Coordinate); err != nil {
			return fmt.Errorf("plan carpool: pickup %q: %w", p.Name, err)
		}
	}

	return nil
}
