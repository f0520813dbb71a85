// Package geo contains pure geographic computation: great-circle distance
// and the compact location-code codec.
package geo

import (
	"math"

	"carpool-planner/internal/domain"
)

const earthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance in kilometres between two
// points, using the haversine formula on a spherical Earth.
func DistanceKm(a, b domain.Coordinate) float64 {
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLng := degreesToRadians(b.Lng - a.Lng)

	rLat1 := degreesToRadians(a.Lat)
	rLat2 := degreesToRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// DistanceMeters returns the haversine distance in meters.
func DistanceMeters(a, b domain.Coordinate) float64 {
	return DistanceKm(a, b) * 1000
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
