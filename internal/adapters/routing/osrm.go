package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"carpool-planner/internal/domain"
)

// OSRMBackend requests road-network routes (full geometry, per-step
// directions, no traffic data) from an OSRM instance.
type OSRMBackend struct {
	session *http.Client
	baseURL string
}

func NewOSRMBackend(baseURL string) *OSRMBackend {
	if baseURL == "" {
		baseURL = "https://router.project-osrm.org"
	}
	return &OSRMBackend{
		session: &http.Client{Timeout: 15 * time.Second},
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

func (o *OSRMBackend) Name() domain.RouteSource { return domain.SourceOSRM }

type osrmResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Legs []struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
			Steps    []struct {
				Distance float64 `json:"distance"`
				Duration float64 `json:"duration"`
				Maneuver struct {
					Type     string `json:"type"`
					Modifier string `json:"modifier"`
				} `json:"maneuver"`
				Name string `json:"name"`
			} `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}

func (o *OSRMBackend) Compute(ctx context.Context, seq []domain.Coordinate) (*domain.Route, error) {
	// OSRM takes lng,lat pairs separated by semicolons.
	parts := make([]string, 0, len(seq))
	for _, c := range seq {
		parts = append(parts,
			strconv.FormatFloat(c.Lng, 'f', -1, 64)+","+strconv.FormatFloat(c.Lat, 'f', -1, 64))
	}

	endpoint := fmt.Sprintf(
		"%s/route/v1/driving/%s?overview=full&steps=true&geometries=geojson",
		o.baseURL, strings.Join(parts, ";"),
	)

	resp, err := o.doWithRetry(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("osrm request: %w", err)
	}
	defer resp.Body.Close()

	var decoded osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode osrm response: %w", err)
	}

	if decoded.Code != "Ok" {
		return nil, fmt.Errorf("osrm error: %s - %s", decoded.Code, decoded.Message)
	}
	if len(decoded.Routes) == 0 {
		return nil, errors.New("osrm returned no routes")
	}

	best := decoded.Routes[0]

	legs := make([]domain.Leg, 0, len(best.Legs))
	for _, leg := range best.Legs {
		steps := make([]domain.Step, 0, len(leg.Steps))
		for _, step := range leg.Steps {
			instruction := strings.TrimSpace(step.Maneuver.Type + " " + step.Maneuver.Modifier)
			if step.Name != "" {
				instruction += " onto " + step.Name
			}
			steps = append(steps, domain.Step{
				Instruction:     instruction,
				DistanceMeters:  step.Distance,
				DurationSeconds: step.Duration,
			})
		}
		legs = append(legs, domain.Leg{
			DistanceMeters:  leg.Distance,
			DurationSeconds: leg.Duration,
			Steps:           steps,
		})
	}

	geometry := make([]domain.Coordinate, 0, len(best.Geometry.Coordinates))
	for _, pair := range best.Geometry.Coordinates {
		if len(pair) != 2 {
			return nil, fmt.Errorf("osrm geometry has invalid coordinate pair of length %d", len(pair))
		}
		geometry = append(geometry, domain.Coordinate{Lat: pair[1], Lng: pair[0]})
	}

	return &domain.Route{
		DistanceMeters:  best.Distance,
		DurationSeconds: best.Duration,
		Geometry:        geometry,
		Legs:            legs,
		Source:          domain.SourceOSRM,
	}, nil
}
