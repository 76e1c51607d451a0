package geo

import (
	"sync"

	"github.com/UnknownOlympus/distancer/internal/models"
)

// mkadVertices traces the Moscow Ring Road (MKAD) as longitude/latitude pairs.
// Source: https://habr.com/ru/post/127446/
var mkadVertices = []models.Coordinates{
	{Longitude: 37.842762, Latitude: 55.774558},
	{Longitude: 37.842789, Latitude: 55.76522},
	{Longitude: 37.842627, Latitude: 55.755723},
	{Longitude: 37.841828, Latitude: 55.747399},
	{Longitude: 37.841217, Latitude: 55.739103},
	{Longitude: 37.840175, Latitude: 55.730482},
	{Longitude: 37.83916, Latitude: 55.721939},
	{Longitude: 37.837121, Latitude: 55.712203},
	{Longitude: 37.83262, Latitude: 55.703048},
	{Longitude: 37.829512, Latitude: 55.694287},
	{Longitude: 37.831353, Latitude: 55.68529},
	{Longitude: 37.834605, Latitude: 55.675945},
	{Longitude: 37.837597, Latitude: 55.667752},
	{Longitude: 37.839348, Latitude: 55.658667},
	{Longitude: 37.833842, Latitude: 55.650053},
	{Longitude: 37.824787, Latitude: 55.643713},
	{Longitude: 37.814564, Latitude: 55.637347},
	{Longitude: 37.802473, Latitude: 55.62913},
	{Longitude: 37.794235, Latitude: 55.623758},
	{Longitude: 37.781928, Latitude: 55.617713},
	{Longitude: 37.771139, Latitude: 55.611755},
	{Longitude: 37.758725, Latitude: 55.604956},
	{Longitude: 37.747945, Latitude: 55.599677},
	{Longitude: 37.734785, Latitude: 55.594143},
	{Longitude: 37.723062, Latitude: 55.589234},
	{Longitude: 37.709425, Latitude: 55.583983},
	{Longitude: 37.696256, Latitude: 55.578834},
	{Longitude: 37.683167, Latitude: 55.574019},
	{Longitude: 37.668911, Latitude: 55.571999},
	{Longitude: 37.647765, Latitude: 55.573093},
	{Longitude: 37.633419, Latitude: 55.573928},
	{Longitude: 37.616719, Latitude: 55.574732},
	{Longitude: 37.60107, Latitude: 55.575816},
	{Longitude: 37.586536, Latitude: 55.5778},
	{Longitude: 37.571938, Latitude: 55.581271},
	{Longitude: 37.555732, Latitude: 55.585143},
	{Longitude: 37.545132, Latitude: 55.587509},
	{Longitude: 37.526366, Latitude: 55.5922},
	{Longitude: 37.516108, Latitude: 55.594728},
	{Longitude: 37.502274, Latitude: 55.60249},
	{Longitude: 37.49391, Latitude: 55.609685},
	{Longitude: 37.484846, Latitude: 55.617424},
	{Longitude: 37.474668, Latitude: 55.625801},
	{Longitude: 37.469925, Latitude: 55.630207},
	{Longitude: 37.456864, Latitude: 55.641041},
	{Longitude: 37.448195, Latitude: 55.648794},
	{Longitude: 37.441125, Latitude: 55.654675},
	{Longitude: 37.434424, Latitude: 55.660424},
	{Longitude: 37.42598, Latitude: 55.670701},
	{Longitude: 37.418712, Latitude: 55.67994},
	{Longitude: 37.414868, Latitude: 55.686873},
	{Longitude: 37.407528, Latitude: 55.695697},
	{Longitude: 37.397952, Latitude: 55.702805},
	{Longitude: 37.388969, Latitude: 55.709657},
	{Longitude: 37.383283, Latitude: 55.718273},
	{Longitude: 37.378369, Latitude: 55.728581},
	{Longitude: 37.374991, Latitude: 55.735201},
	{Longitude: 37.370248, Latitude: 55.744789},
	{Longitude: 37.369188, Latitude: 55.75435},
	{Longitude: 37.369053, Latitude: 55.762936},
	{Longitude: 37.369619, Latitude: 55.771444},
	{Longitude: 37.369853, Latitude: 55.779722},
	{Longitude: 37.372943, Latitude: 55.789542},
	{Longitude: 37.379824, Latitude: 55.79723},
	{Longitude: 37.386876, Latitude: 55.805796},
	{Longitude: 37.390397, Latitude: 55.814629},
	{Longitude: 37.393236, Latitude: 55.823606},
	{Longitude: 37.395275, Latitude: 55.83251},
	{Longitude: 37.394709, Latitude: 55.840376},
	{Longitude: 37.393056, Latitude: 55.850141},
	{Longitude: 37.397314, Latitude: 55.858801},
	{Longitude: 37.405588, Latitude: 55.867051},
	{Longitude: 37.416601, Latitude: 55.872703},
	{Longitude: 37.429429, Latitude: 55.877041},
	{Longitude: 37.443596, Latitude: 55.881091},
	{Longitude: 37.459065, Latitude: 55.882828},
	{Longitude: 37.473096, Latitude: 55.884625},
	{Longitude: 37.48861, Latitude: 55.888897},
	{Longitude: 37.5016, Latitude: 55.894232},
	{Longitude: 37.513206, Latitude: 55.899578},
	{Longitude: 37.527597, Latitude: 55.90526},
	{Longitude: 37.543443, Latitude: 55.907687},
	{Longitude: 37.559577, Latitude: 55.909388},
	{Longitude: 37.575531, Latitude: 55.910907},
	{Longitude: 37.590344, Latitude: 55.909257},
	{Longitude: 37.604637, Latitude: 55.905472},
	{Longitude: 37.619603, Latitude: 55.901637},
	{Longitude: 37.635961, Latitude: 55.898533},
	{Longitude: 37.647648, Latitude: 55.896973},
	{Longitude: 37.667878, Latitude: 55.895449},
	{Longitude: 37.681721, Latitude: 55.894868},
	{Longitude: 37.698807, Latitude: 55.893884},
	{Longitude: 37.712363, Latitude: 55.889094},
	{Longitude: 37.723636, Latitude: 55.883555},
	{Longitude: 37.735791, Latitude: 55.877501},
	{Longitude: 37.741261, Latitude: 55.874698},
	{Longitude: 37.764519, Latitude: 55.862464},
	{Longitude: 37.765992, Latitude: 55.861979},
	{Longitude: 37.788216, Latitude: 55.850257},
	{Longitude: 37.788522, Latitude: 55.850383},
	{Longitude: 37.800586, Latitude: 55.844167},
	{Longitude: 37.822819, Latitude: 55.832707},
	{Longitude: 37.829754, Latitude: 55.828789},
	{Longitude: 37.837148, Latitude: 55.821072},
	{Longitude: 37.838926, Latitude: 55.811599},
	{Longitude: 37.840004, Latitude: 55.802781},
	{Longitude: 37.840965, Latitude: 55.793991},
	{Longitude: 37.841576, Latitude: 55.785017},
}

var mkad = sync.OnceValue(func() *Polygon {
	polygon, err := NewPolygon(mkadVertices)
	if err != nil {
		panic("geo: invalid MKAD polygon: " + err.Error())
	}

	return polygon
})

// MKAD returns the shared Moscow Ring Road boundary. It is built once and never modified.
func MKAD() *Polygon {
	return mkad()
}
