package models

import "fmt"

// Coordinates represents a geographical point defined by its longitude and latitude in degrees.
// Values are taken as-is from the geocoding provider; no range validation is applied.
type Coordinates struct {
	Longitude float64 // Longitude of the geographical point.
	Latitude  float64 // Latitude of the geographical point.
}

// String returns the point in "<longitude> <latitude>" order, the same order providers use.
func (c Coordinates) String() string {
	return fmt.Sprintf("%g %g", c.Longitude, c.Latitude)
}
