package eligibility

import (
	"github.com/twpayne/go-geom"

	"github.com/skylinegeo/quote-service/internal/geo"
	"github.com/skylinegeo/quote-service/internal/model"
)

// MaxAutoQuoteAcres is the ceiling above which a job needs manual review.
const MaxAutoQuoteAcres = 300.0

// Evaluate classifies a submission for automated pricing. Service-area
// membership is a logical OR across AOI features: the submission is in
// area when any feature overlaps the reference geometry. An empty feature
// set or a failed intersection check leaves membership unknown (nil), and
// unknown never yields eligibility.
func Evaluate(acres float64, features []geom.T, serviceArea geom.T) model.EligibilityFlags {
	flags := model.EligibilityFlags{
		AreaOver300Acres: acres > MaxAutoQuoteAcres,
	}
	flags.InServiceArea = inServiceArea(features, serviceArea)
	flags.AutoQuoteEligible = !flags.AreaOver300Acres &&
		flags.InServiceArea != nil && *flags.InServiceArea
	return flags
}

func inServiceArea(features []geom.T, serviceArea geom.T) *bool {
	if len(features) == 0 || serviceArea == nil {
		return nil
	}
	inside := false
	for _, feature := range features {
		hit, err := geo.Intersects(feature, serviceArea)
		if err != nil {
			return nil
		}
		if hit {
			inside = true
			break
		}
	}
	return &inside
}
