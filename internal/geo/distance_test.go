package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skylinegeo/quote-service/internal/model"
)

// milesNorth returns a coordinate the given number of great-circle miles
// due north of the origin, so the expected distance is exact.
func milesNorth(origin model.Coordinate, miles float64) model.Coordinate {
	return model.Coordinate{
		Lng: origin.Lng,
		Lat: origin.Lat + miles/earthRadiusMiles*180/math.Pi,
	}
}

func TestDistanceMiles(t *testing.T) {
	depot := model.Coordinate{Lng: -86.7816, Lat: 36.1627}

	t.Run("zero for identical points", func(t *testing.T) {
		assert.Equal(t, 0.0, DistanceMiles(depot, depot))
	})

	t.Run("exact along a meridian", func(t *testing.T) {
		for _, miles := range []float64{1, 30, 45, 120} {
			got := DistanceMiles(depot, milesNorth(depot, miles))
			assert.InDelta(t, miles, got, 1e-6)
		}
	})

	t.Run("symmetric", func(t *testing.T) {
		other := model.Coordinate{Lng: -90.049, Lat: 35.1495}
		assert.InDelta(t, DistanceMiles(depot, other), DistanceMiles(other, depot), 1e-9)
	})

	t.Run("known city pair within tolerance", func(t *testing.T) {
		memphis := model.Coordinate{Lng: -90.049, Lat: 35.1495}
		got := DistanceMiles(depot, memphis)
		// Nashville to Memphis is roughly 197 miles great circle.
		assert.InDelta(t, 197, got, 5)
	})

	t.Run("malformed input yields zero", func(t *testing.T) {
		tests := []struct {
			name string
			a, b model.Coordinate
		}{
			{"nan lat", model.Coordinate{Lng: 0, Lat: math.NaN()}, depot},
			{"inf lng", model.Coordinate{Lng: math.Inf(1), Lat: 0}, depot},
			{"lat out of range", model.Coordinate{Lng: 0, Lat: 95}, depot},
			{"lng out of range", depot, model.Coordinate{Lng: 181, Lat: 0}},
		}
		for _, tc := range tests {
			assert.Equal(t, 0.0, DistanceMiles(tc.a, tc.b), tc.name)
		}
	})

	t.Run("always non-negative and finite", func(t *testing.T) {
		a := model.Coordinate{Lng: -180, Lat: -90}
		b := model.Coordinate{Lng: 180, Lat: 90}
		got := DistanceMiles(a, b)
		assert.False(t, math.IsNaN(got))
		assert.False(t, math.IsInf(got, 0))
		assert.GreaterOrEqual(t, got, 0.0)
	})
}
