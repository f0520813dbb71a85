package domain

import "fmt"

// Immutable geographic coordinate (latitude, longitude) in decimal degrees.
type Coordinate struct {
	Lat float64
	Lng float64
}

// Validate checks the coordinate is within the WGS84 range.
func (c Coordinate) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("latitude %f out of range [-90, 90]", c.Lat)
	}
	if c.Lng < -180 || c.Lng > 180 {
		return fmt.Errorf("longitude %f out of range [-180, 180]", c.Lng)
	}
	return nil
}

// IsZero reports whether the coordinate is the unset zero value.
// (0, 0) is a valid point in the Gulf of Guinea but never a resolved address here.
func (c Coordinate) IsZero() bool {
	return c.Lat == 0 && c.Lng == 0
}
