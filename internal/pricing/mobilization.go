package pricing

import (
	"math"

	"github.com/skylinegeo/quote-service/internal/geo"
	"github.com/skylinegeo/quote-service/internal/model"
)

const (
	freeRadiusMiles     = 30.0
	mobilizationBaseFee = 250.0
)

// MobilizationResult carries the depot-to-site distance (rounded to whole
// miles) and the travel surcharge derived from it.
type MobilizationResult struct {
	Miles  float64
	Charge float64
}

// Mobilization computes the travel surcharge from the fixed depot to the
// submission centroid. Not requested, or a missing/malformed centroid,
// yields zero miles and zero charge.
func Mobilization(depot model.Coordinate, centroid *model.Coordinate, requested bool) MobilizationResult {
	if !requested || centroid == nil {
		return MobilizationResult{}
	}
	distance := geo.DistanceMiles(depot, *centroid)
	return MobilizationResult{
		Miles:  math.Round(distance),
		Charge: chargeForDistance(distance),
	}
}

// chargeForDistance is a flat fee plus one currency unit per mile beyond
// the free radius. The overage rounds half away from zero.
func chargeForDistance(miles float64) float64 {
	if miles <= freeRadiusMiles {
		return 0
	}
	return mobilizationBaseFee + math.Round(miles-freeRadiusMiles)
}
