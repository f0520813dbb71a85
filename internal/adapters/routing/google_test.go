package routing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"carpool-planner/internal/domain"
)

func TestLatLngString(t *testing.T) {
	require.Equal(t, "42.3149,-83.0364", latLngString(domain.Coordinate{Lat: 42.3149, Lng: -83.0364}))
	require.Equal(t, "0,0", latLngString(domain.Coordinate{}))
}

func TestHTMLTagStripping(t *testing.T) {
	in := `Turn <b>left</b> onto <div style="font-size:0.9em">Main St</div>`
	require.Equal(t, "Turn left onto Main St", htmlTagPattern.ReplaceAllString(in, ""))
}

func TestNewGoogleBackendRequiresKey(t *testing.T) {
	_, err := NewGoogleBackend("", 0)
	require.Error(t, err)

	backend, err := NewGoogleBackend("test-key", 0)
	require.NoError(t, err)
	require.Equal(t, DefaultMaxWaypoints, backend.maxWaypoints)
	require.Equal(t, domain.SourceGoogleMaps, backend.Name())
}
