package pricing

import (
	"github.com/skylinegeo/quote-service/internal/model"
)

// ComputeQuote prices a normalized submission: the tiered formula for the
// selected service (unknown types behave as lidar), plus the mobilization
// surcharge. Manual quotes carry no price but still record mobilization
// figures in the breakdown for transparency.
func ComputeQuote(opts model.ServiceOptions, acres float64, centroid *model.Coordinate, depot model.Coordinate) model.Quote {
	var quote model.Quote
	switch opts.Type {
	case model.ServicePhotogrammetry:
		quote = photoQuote(opts, acres)
	default:
		quote = lidarQuote(opts, acres)
	}

	mob := Mobilization(depot, centroid, opts.Mobilization)
	quote.Breakdown.MobilizationMiles = mob.Miles
	quote.Breakdown.MobilizationCharge = mob.Charge
	if !quote.Manual {
		total := *quote.Price + mob.Charge
		quote.Price = &total
	}
	return quote
}

func lidarQuote(opts model.ServiceOptions, acres float64) model.Quote {
	density := factorFor(densityFactors, opts.Density, DefaultDensityTier)
	accuracy := factorFor(accuracyFactors, opts.Accuracy, DefaultAccuracyTier)
	fees, addOns := addOnTotal(opts.AddOns)

	breakdown := model.Breakdown{
		DensityFactor:  density,
		AccuracyFactor: accuracy,
		AddOns:         fees,
		AddOnsTotal:    addOns,
	}

	base, ok := lidarBase(acres)
	if !ok {
		return model.ManualQuote(breakdown)
	}
	breakdown.Base = &base
	return model.PricedQuote(base*density*accuracy+addOns, breakdown)
}

func photoQuote(opts model.ServiceOptions, acres float64) model.Quote {
	gsd := factorFor(gsdFactors, opts.GSD, DefaultGSDTier)
	breakdown := model.Breakdown{GSDFactor: gsd}

	base, ok := photoBase(acres)
	if !ok {
		return model.ManualQuote(breakdown)
	}
	breakdown.Base = &base
	return model.PricedQuote(base*gsd, breakdown)
}
