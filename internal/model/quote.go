package model

// Breakdown records every multiplicand and addend used to build a price so
// the final figure can be reconstructed:
//
//	price = base * factors + addOnsTotal + mobilizationCharge
//
// Base is nil for manual quotes. Mobilization figures are always recorded,
// manual or not.
type Breakdown struct {
	Base               *float64           `json:"base"`
	DensityFactor      float64            `json:"densityFactor,omitempty"`
	AccuracyFactor     float64            `json:"accuracyFactor,omitempty"`
	GSDFactor          float64            `json:"gsdFactor,omitempty"`
	AddOns             map[string]float64 `json:"addOns,omitempty"`
	AddOnsTotal        float64            `json:"addOnsTotal"`
	MobilizationMiles  float64            `json:"mobilizationMiles"`
	MobilizationCharge float64            `json:"mobilizationCharge"`
}

// Quote is the outcome of pricing a submission: either a priced estimate
// or a manual-review sentinel for jobs the engine declines to auto-price.
// Price is non-nil exactly when Manual is false.
type Quote struct {
	Manual    bool      `json:"manual"`
	Price     *float64  `json:"price"`
	Breakdown Breakdown `json:"breakdown"`
}

func PricedQuote(price float64, breakdown Breakdown) Quote {
	return Quote{Manual: false, Price: &price, Breakdown: breakdown}
}

func ManualQuote(breakdown Breakdown) Quote {
	breakdown.Base = nil
	return Quote{Manual: true, Breakdown: breakdown}
}
