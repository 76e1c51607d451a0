package geo_test

import (
	"math"
	"testing"

	"github.com/UnknownOlympus/distancer/internal/geo"
	"github.com/UnknownOlympus/distancer/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	mkadNorth := models.Coordinates{Longitude: 37.632206, Latitude: 55.898947}
	kirovogradskaya := models.Coordinates{Longitude: 37.605939, Latitude: 55.622609}

	t.Run("known distances", func(t *testing.T) {
		assert.InDelta(t, 30.8, geo.Distance(mkadNorth, kirovogradskaya), 0.1)
		assert.InDelta(t, 5226.0, geo.Distance(mkadNorth, models.Coordinates{Longitude: 20.3131, Latitude: 10.8888}), 0.1)
		assert.InDelta(t, 6669.1, geo.Distance(kirovogradskaya, models.Coordinates{Longitude: -3, Latitude: 5.1}), 0.1)
	})

	t.Run("zero for identical points", func(t *testing.T) {
		points := []models.Coordinates{
			mkadNorth,
			{Longitude: 0, Latitude: 0},
			{Longitude: -120.200676, Latitude: 49.064265},
			{Longitude: 180, Latitude: -90},
		}
		for _, p := range points {
			assert.Zero(t, geo.Distance(p, p), "point %s", p)
		}
	})

	t.Run("symmetric", func(t *testing.T) {
		pairs := [][2]models.Coordinates{
			{mkadNorth, kirovogradskaya},
			{{Longitude: -74.006, Latitude: 40.7128}, {Longitude: 139.6917, Latitude: 35.6895}},
			{{Longitude: 179.9, Latitude: 0}, {Longitude: -179.9, Latitude: 0}},
		}
		for _, pair := range pairs {
			assert.InDelta(t, geo.Distance(pair[0], pair[1]), geo.Distance(pair[1], pair[0]), 1e-9)
		}
	})

	t.Run("antipodal points are half the circumference apart", func(t *testing.T) {
		d := geo.Distance(models.Coordinates{Longitude: 0, Latitude: 0}, models.Coordinates{Longitude: 180, Latitude: 0})
		assert.InDelta(t, math.Pi*geo.EarthRadiusKm, d, 1e-6)
	})

	t.Run("non-finite input propagates", func(t *testing.T) {
		d := geo.Distance(models.Coordinates{Longitude: math.NaN(), Latitude: 0}, mkadNorth)
		assert.True(t, math.IsNaN(d))
	})
}
