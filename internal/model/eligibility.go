package model

// EligibilityFlags classify a submission for automated pricing.
// InServiceArea is nil when membership could not be determined (no
// geometry, or the intersection check failed); unknown never counts as
// eligible.
type EligibilityFlags struct {
	AreaOver300Acres  bool  `json:"areaOver300Acres"`
	InServiceArea     *bool `json:"inServiceArea"`
	AutoQuoteEligible bool  `json:"autoQuoteEligible"`
}
