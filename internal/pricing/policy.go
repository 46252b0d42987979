package pricing

// Tiered pricing policy for the two survey services. All tables are static
// configuration: unknown tier keys resolve to the neutral factor and
// unknown add-on keys contribute nothing, so option lookups never fail.

const (
	smallJobMaxAcres  = 35.0
	autoQuoteMaxAcres = 300.0

	lidarMinimumFee = 2000.0
	lidarSmallRate  = 100.0
	lidarMidRate    = 45.0
	lidarMidBaseFee = 3500.0
	photoMinimumFee = 800.0
	photoSmallRate  = 40.0
	photoMidRate    = 20.0
	photoMidBaseFee = 1400.0

	neutralFactor = 1.0

	// Default tier keys applied when a submission leaves them unset.
	DefaultDensityTier  = "20"
	DefaultAccuracyTier = "0.3"
	DefaultGSDTier      = "3in"
)

// Lidar point-density factor by points-per-square-meter tier.
var densityFactors = map[string]float64{
	"10":  0.90,
	"20":  1.00,
	"35":  1.10,
	"50":  1.20,
	"100": 1.35,
}

// Lidar vertical-accuracy factor by tolerance tier (feet).
var accuracyFactors = map[string]float64{
	"0.3": 1.00,
	"0.2": 1.10,
	"0.1": 1.30,
}

// Photogrammetry ground-sample-distance factor.
var gsdFactors = map[string]float64{
	"3in":   1.00,
	"2in":   1.10,
	"1in":   1.25,
	"0.5in": 1.45,
}

// Flat add-on fees, additive on top of the factored base.
var addOnFees = map[string]float64{
	"dtm":          450,
	"contours":     350,
	"planimetrics": 650,
	"orthomosaic":  300,
}

// lidarBase returns the lidar base price for an acreage, or ok=false when
// the job exceeds the auto-quote ceiling and needs manual review.
func lidarBase(acres float64) (float64, bool) {
	switch {
	case acres <= smallJobMaxAcres:
		return max(lidarMinimumFee, acres*lidarSmallRate), true
	case acres <= autoQuoteMaxAcres:
		return acres*lidarMidRate + lidarMidBaseFee, true
	default:
		return 0, false
	}
}

func photoBase(acres float64) (float64, bool) {
	switch {
	case acres <= smallJobMaxAcres:
		return max(photoMinimumFee, acres*photoSmallRate), true
	case acres <= autoQuoteMaxAcres:
		return acres*photoMidRate + photoMidBaseFee, true
	default:
		return 0, false
	}
}

func factorFor(table map[string]float64, key, defaultKey string) float64 {
	if key == "" {
		key = defaultKey
	}
	if factor, ok := table[key]; ok {
		return factor
	}
	return neutralFactor
}

// addOnTotal resolves selected add-on keys against the catalog. Unknown
// keys are ignored; the total is independent of selection order.
func addOnTotal(keys []string) (map[string]float64, float64) {
	if len(keys) == 0 {
		return nil, 0
	}
	selected := make(map[string]float64, len(keys))
	total := 0.0
	for _, key := range keys {
		fee, ok := addOnFees[key]
		if !ok {
			continue
		}
		if _, seen := selected[key]; seen {
			continue
		}
		selected[key] = fee
		total += fee
	}
	if len(selected) == 0 {
		return nil, 0
	}
	return selected, total
}
