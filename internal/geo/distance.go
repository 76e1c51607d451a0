package geo

import (
	"math"

	"github.com/UnknownOlympus/distancer/internal/models"
)

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// Distance returns the great-circle distance in kilometers between two points using the haversine formula.
// The Earth is treated as a sphere of radius EarthRadiusKm. Non-finite inputs propagate to the result.
func Distance(from, to models.Coordinates) float64 {
	lon1, lat1 := radians(from.Longitude), radians(from.Latitude)
	lon2, lat2 := radians(to.Longitude), radians(to.Latitude)

	dLon := lon2 - lon1
	dLat := lat2 - lat1

	h := math.Pow(math.Sin(dLat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dLon/2), 2)

	return EarthRadiusKm * 2 * math.Asin(math.Sqrt(h))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
