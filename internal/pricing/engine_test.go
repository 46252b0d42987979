package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skylinegeo/quote-service/internal/model"
)

func TestComputeQuoteLidarSmallJob(t *testing.T) {
	// 20-acre lidar job at default tiers with a DTM add-on; mobilization is
	// off even though the site is 50 miles out.
	opts := model.ServiceOptions{
		Type:     model.ServiceLidar,
		Density:  "20",
		Accuracy: "0.3",
		AddOns:   []string{"dtm"},
	}

	quote := ComputeQuote(opts, 20, centroidAtMiles(50), testDepot)

	require.False(t, quote.Manual)
	require.NotNil(t, quote.Price)
	assert.InDelta(t, 2450, *quote.Price, 1e-9)
	require.NotNil(t, quote.Breakdown.Base)
	assert.InDelta(t, 2000, *quote.Breakdown.Base, 1e-9)
	assert.Equal(t, 1.0, quote.Breakdown.DensityFactor)
	assert.Equal(t, 1.0, quote.Breakdown.AccuracyFactor)
	assert.Equal(t, 450.0, quote.Breakdown.AddOnsTotal)
	assert.Equal(t, 0.0, quote.Breakdown.MobilizationMiles)
	assert.Equal(t, 0.0, quote.Breakdown.MobilizationCharge)
}

func TestComputeQuoteLidarManual(t *testing.T) {
	// 310 acres exceeds the auto-quote ceiling; mobilization figures are
	// still recorded for transparency.
	opts := model.ServiceOptions{Type: model.ServiceLidar, Mobilization: true}

	quote := ComputeQuote(opts, 310, centroidAtMiles(45), testDepot)

	assert.True(t, quote.Manual)
	assert.Nil(t, quote.Price)
	assert.Nil(t, quote.Breakdown.Base)
	assert.Equal(t, 45.0, quote.Breakdown.MobilizationMiles)
	assert.Equal(t, 265.0, quote.Breakdown.MobilizationCharge)
}

func TestComputeQuotePhotoWithMobilization(t *testing.T) {
	// 10-acre photogrammetry job at 1in GSD, 40 miles out with
	// mobilization on: base 800, price 1000, charge 260, total 1260.
	opts := model.ServiceOptions{
		Type:         model.ServicePhotogrammetry,
		GSD:          "1in",
		Mobilization: true,
	}

	quote := ComputeQuote(opts, 10, centroidAtMiles(40), testDepot)

	require.False(t, quote.Manual)
	require.NotNil(t, quote.Price)
	assert.InDelta(t, 1260, *quote.Price, 1e-9)
	require.NotNil(t, quote.Breakdown.Base)
	assert.InDelta(t, 800, *quote.Breakdown.Base, 1e-9)
	assert.Equal(t, 1.25, quote.Breakdown.GSDFactor)
	assert.Equal(t, 40.0, quote.Breakdown.MobilizationMiles)
	assert.Equal(t, 260.0, quote.Breakdown.MobilizationCharge)
}

func TestComputeQuoteUnknownServiceTypeBehavesAsLidar(t *testing.T) {
	quote := ComputeQuote(model.ServiceOptions{Type: "sonar"}, 20, nil, testDepot)

	require.False(t, quote.Manual)
	require.NotNil(t, quote.Breakdown.Base)
	assert.InDelta(t, 2000, *quote.Breakdown.Base, 1e-9)
}

func TestComputeQuoteBreakdownReconstructsPrice(t *testing.T) {
	tests := []struct {
		name  string
		opts  model.ServiceOptions
		acres float64
	}{
		{
			name: "lidar with factors and add-ons",
			opts: model.ServiceOptions{
				Type: model.ServiceLidar, Density: "50", Accuracy: "0.1",
				AddOns: []string{"dtm", "contours"}, Mobilization: true,
			},
			acres: 120,
		},
		{
			name:  "photo mid tier",
			opts:  model.ServiceOptions{Type: model.ServicePhotogrammetry, GSD: "2in", Mobilization: true},
			acres: 80,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			quote := ComputeQuote(tc.opts, tc.acres, centroidAtMiles(75), testDepot)
			require.False(t, quote.Manual)
			b := quote.Breakdown

			var reconstructed float64
			if tc.opts.Type == model.ServicePhotogrammetry {
				reconstructed = *b.Base*b.GSDFactor + b.MobilizationCharge
			} else {
				reconstructed = *b.Base*b.DensityFactor*b.AccuracyFactor + b.AddOnsTotal + b.MobilizationCharge
			}
			assert.InDelta(t, *quote.Price, reconstructed, 1e-9)
		})
	}
}
