package routing

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"googlemaps.github.io/maps"

	"carpool-planner/internal/domain"
)

// DefaultMaxWaypoints leaves room for origin and destination under the
// Directions API limit of 25 locations per request.
const DefaultMaxWaypoints = 23

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// GoogleBackend requests traffic-aware driving routes from the Google Maps
// Directions API.
type GoogleBackend struct {
	client       *maps.Client
	maxWaypoints int
}

func NewGoogleBackend(apiKey string, maxWaypoints int) (*GoogleBackend, error) {
	if apiKey == "" {
		return nil, errors.New("google maps api key is empty")
	}
	if maxWaypoints <= 0 {
		maxWaypoints = DefaultMaxWaypoints
	}

	client, err := maps.NewClient(
		maps.WithAPIKey(apiKey),
		maps.WithHTTPClient(&http.Client{Timeout: 15 * time.Second}),
	)
	if err != nil {
		return nil, fmt.Errorf("create maps client: %w", err)
	}

	return &GoogleBackend{client: client, maxWaypoints: maxWaypoints}, nil
}

func (g *GoogleBackend) Name() domain.RouteSource { return domain.SourceGoogleMaps }

func (g *GoogleBackend) Compute(ctx context.Context, seq []domain.Coordinate) (*domain.Route, error) {
	origin := latLngString(seq[0])
	destination := latLngString(seq[len(seq)-1])

	waypoints := make([]string, 0, len(seq))
	for _, c := range seq[1 : len(seq)-1] {
		if len(waypoints) == g.maxWaypoints {
			break
		}
		waypoints = append(waypoints, latLngString(c))
	}

	req := &maps.DirectionsRequest{
		Origin:        origin,
		Destination:   destination,
		Waypoints:     waypoints,
		Mode:          maps.TravelModeDriving,
		Units:         maps.UnitsMetric,
		DepartureTime: "now",
		TrafficModel:  maps.TrafficModelBestGuess,
		Avoid:         []maps.Avoid{maps.AvoidTolls},
	}

	routes, _, err := g.client.Directions(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("directions request: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return nil, errors.New("directions returned no routes")
	}

	best := routes[0]

	var (
		totalMeters     float64
		nominalSeconds  float64
		trafficSeconds  float64
		trafficEveryLeg = true
	)

	legs := make([]domain.Leg, 0, len(best.Legs))
	for _, leg := range best.Legs {
		nominal := leg.Duration.Seconds()

		effective := nominal
		if leg.DurationInTraffic > 0 {
			effective = leg.DurationInTraffic.Seconds()
		} else {
			trafficEveryLeg = false
		}

		steps := make([]domain.Step, 0, len(leg.Steps))
		for _, step := range leg.Steps {
			steps = append(steps, domain.Step{
				Instruction:     htmlTagPattern.ReplaceAllString(step.HTMLInstructions, ""),
				DistanceMeters:  float64(step.Distance.Meters),
				DurationSeconds: step.Duration.Seconds(),
			})
		}

		legs = append(legs, domain.Leg{
			DistanceMeters:  float64(leg.Distance.Meters),
			DurationSeconds: effective,
			Steps:           steps,
		})

		totalMeters += float64(leg.Distance.Meters)
		nominalSeconds += nominal
		trafficSeconds += effective
	}

	route := &domain.Route{
		DistanceMeters:  totalMeters,
		DurationSeconds: trafficSeconds,
		Legs:            legs,
		Source:          domain.SourceGoogleMaps,
	}

	// The delay is meaningful only when traffic data covered the whole route.
	if trafficEveryLeg {
		delay := trafficSeconds - nominalSeconds
		if delay < 0 {
			delay = 0
		}
		route.TrafficDelaySeconds = &delay
	}

	path, err := best.OverviewPolyline.Decode()
	if err != nil {
		return nil, fmt.Errorf("decode overview polyline: %w", err)
	}
	for _, pt := range path {
		route.Geometry = append(route.Geometry, domain.Coordinate{Lat: pt.Lat, Lng: pt.Lng})
	}

	return route, nil
}

func latLngString(c domain.Coordinate) string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lng, 'f', -1, 64)
}
