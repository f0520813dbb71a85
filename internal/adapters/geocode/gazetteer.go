package geocode

import (
	"strings"

	"carpool-planner/internal/domain"
	"carpool-planner/internal/ports"
)

// Gazetteer is the static last-resort lookup table of known places, keyed by
// normalized (lowercased, trimmed) address text.
type Gazetteer struct {
	places     map[string]ports.ResolvedLocation
	localities map[string]domain.Coordinate
}

func NewGazetteer() *Gazetteer {
	return &Gazetteer{
		places: map[string]ports.ResolvedLocation{
			"times square, new york, ny":           {Coordinate: domain.Coordinate{Lat: 40.7580, Lng: -73.9855}, DisplayName: "Times Square, New York, NY"},
			"central park, new york, ny":           {Coordinate: domain.Coordinate{Lat: 40.7829, Lng: -73.9654}, DisplayName: "Central Park, New York, NY"},
			"brooklyn bridge, new york, ny":        {Coordinate: domain.Coordinate{Lat: 40.7061, Lng: -73.9969}, DisplayName: "Brooklyn Bridge, New York, NY"},
			"empire state building, new york, ny":  {Coordinate: domain.Coordinate{Lat: 40.7484, Lng: -73.9857}, DisplayName: "Empire State Building, New York, NY"},
			"statue of liberty, new york, ny":      {Coordinate: domain.Coordinate{Lat: 40.6892, Lng: -74.0445}, DisplayName: "Statue of Liberty, New York, NY"},
			"jfk airport, new york, ny":            {Coordinate: domain.Coordinate{Lat: 40.6413, Lng: -73.7781}, DisplayName: "JFK Airport, New York, NY"},
			"laguardia airport, new york, ny":      {Coordinate: domain.Coordinate{Lat: 40.7769, Lng: -73.8740}, DisplayName: "LaGuardia Airport, New York, NY"},
			"grand central station, new york, ny":  {Coordinate: domain.Coordinate{Lat: 40.7527, Lng: -73.9772}, DisplayName: "Grand Central Terminal, New York, NY"},
			"wall street, new york, ny":            {Coordinate: domain.Coordinate{Lat: 40.7074, Lng: -74.0113}, DisplayName: "Wall Street, New York, NY"},
		},
		localities: map[string]domain.Coordinate{
			"windsor, ontario": {Lat: 42.3149, Lng: -83.0364},
			"windsor":          {Lat: 42.3149, Lng: -83.0364},
			"toronto, ontario": {Lat: 43.6532, Lng: -79.3832},
			"toronto":          {Lat: 43.6532, Lng: -79.3832},
			"new york, ny":     {Lat: 40.7128, Lng: -74.0060},
			"new york":         {Lat: 40.7128, Lng: -74.0060},
			"ontario":          {Lat: 44.2619, Lng: -78.2957},
			"ny":               {Lat: 43.2994, Lng: -74.2179},
		},
	}
}

// Lookup tries an exact match on the normalized address, then substring
// containment in either direction.
func (g *Gazetteer) Lookup(address string) (ports.ResolvedLocation, bool) {
	normalized := strings.ToLower(strings.TrimSpace(address))
	if normalized == "" {
		return ports.ResolvedLocation{}, false
	}

	if loc, ok := g.places[normalized]; ok {
		return loc, true
	}

	for key, loc := range g.places {
		if strings.Contains(key, normalized) || strings.Contains(normalized, key) {
			return loc, true
		}
	}

	return ports.ResolvedLocation{}, false
}

// LocalityCenter returns an approximate center for a named locality, used to
// anchor short location codes.
func (g *Gazetteer) LocalityCenter(locality string) (domain.Coordinate, bool) {
	c, ok := g.localities[strings.ToLower(strings.TrimSpace(locality))]
	return c, ok
}
