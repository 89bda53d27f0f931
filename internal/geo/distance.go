package geo

import (
	"math"

	"github.com/julianstephens/flamday/internal/models"
)

// EarthRadius is the mean Earth radius in meters
const EarthRadius = 6371000.0

// Distance returns the great-circle distance between two coordinates in
// meters. Inputs are not range-checked; NaN coordinates yield NaN.
func Distance(a, b models.Coordinate) float64 {
	toRad := func(d float64) float64 { return d * math.Pi / 180 }

	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadius * c
}

// RoundedDistance is Distance rounded to the nearest meter
func RoundedDistance(a, b models.Coordinate) float64 {
	return math.Round(Distance(a, b))
}
