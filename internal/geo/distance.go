package geo

import (
	"math"

	"github.com/skylinegeo/quote-service/internal/model"
)

const earthRadiusMiles = 3958.8

// DistanceMiles returns the great-circle distance between two points in
// miles. Malformed input yields 0 rather than an error so callers can
// treat bad coordinates as a no-op surcharge.
func DistanceMiles(a, b model.Coordinate) float64 {
	if !a.Valid() || !b.Valid() {
		return 0
	}

	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	d := 2 * earthRadiusMiles * math.Asin(math.Min(1, math.Sqrt(h)))

	if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return 0
	}
	return d
}
