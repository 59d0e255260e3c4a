package distribution_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dako7777777/rental-bidding-tool/internal/domain/distribution"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/market"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/shared"
)

func cooling() market.Parameters {
	return market.Parameters{DistributionType: market.DistributionLogNormal, Median: 0.98, Sigma: 0.05, Skew: 0.1}
}

func TestForMarketSumsToOne(t *testing.T) {
	params := []market.Parameters{
		cooling(),
		{DistributionType: market.DistributionLogNormal, Median: 0.92, Sigma: 0.06, Skew: 0.05},
		{DistributionType: market.DistributionSkewedNormal, Median: 1.08, Sigma: 0.15, Skew: -0.6},
		{DistributionType: market.DistributionLogNormal, Median: 1.5, Sigma: 0.01, Skew: 1},
		{DistributionType: market.DistributionLogNormal, Median: 0.5, Sigma: 0.5, Skew: -1},
	}
	for _, p := range params {
		for level := 1; level <= 3; level++ {
			d, err := distribution.ForMarket(p, 2200, level, distribution.DefaultSamples)
			require.NoError(t, err)
			require.Len(t, d.Points, distribution.DefaultSamples)
			assert.InDelta(t, 1.0, d.Total(), 1e-9, "median=%v level=%d", p.Median, level)
			for _, pt := range d.Points {
				assert.GreaterOrEqual(t, pt.Probability, 0.0)
				assert.GreaterOrEqual(t, pt.Bid, 0.85*2200-1e-9)
				assert.LessOrEqual(t, pt.Bid, 1.30*2200+1e-9)
			}
		}
	}
}

func TestForMarketCoolingWindow(t *testing.T) {
	d, err := distribution.ForMarket(cooling(), 2200, 2, distribution.DefaultSamples)
	require.NoError(t, err)

	// median 2156, cooling window is -2.0 / +2.5 sigma of listing
	assert.InDelta(t, 1936.0, d.Points[0].Bid, 1e-6)
	assert.InDelta(t, 2431.0, d.Points[len(d.Points)-1].Bid, 1e-6)
	assert.Equal(t, 2, d.Competitors)
	assert.False(t, d.Degenerate)
}

func TestMoreCompetitorsRaiseTheExpectedMaximum(t *testing.T) {
	one, err := distribution.ForMarket(cooling(), 2200, 1, distribution.DefaultSamples)
	require.NoError(t, err)
	three, err := distribution.ForMarket(cooling(), 2200, 3, distribution.DefaultSamples)
	require.NoError(t, err)

	assert.Greater(t, three.Mean(), one.Mean())
}

func TestForMarketRejectsBadConfiguration(t *testing.T) {
	bad := cooling()
	bad.Sigma = 0.9
	_, err := distribution.ForMarket(bad, 2200, 2, distribution.DefaultSamples)
	assert.ErrorIs(t, err, market.ErrInvalidParameters)
	assert.ErrorIs(t, err, shared.ErrInvalidConfiguration)

	_, err = distribution.ForMarket(cooling(), 2200, 4, distribution.DefaultSamples)
	assert.ErrorIs(t, err, shared.ErrInvalidConfiguration)

	_, err = distribution.ForMarket(cooling(), 0, 2, distribution.DefaultSamples)
	assert.ErrorIs(t, err, shared.ErrInvalidConfiguration)
}

func TestProbabilityQueriesAreMonotone(t *testing.T) {
	d, err := distribution.ForMarket(cooling(), 2200, 2, distribution.DefaultSamples)
	require.NoError(t, err)

	prevBelow, prevAtMost := 0.0, 0.0
	for bid := 1800.0; bid <= 2500; bid += 10 {
		below, atMost := d.ProbabilityBelow(bid), d.ProbabilityAtMost(bid)
		assert.GreaterOrEqual(t, below, prevBelow)
		assert.GreaterOrEqual(t, atMost, prevAtMost)
		assert.LessOrEqual(t, below, atMost)
		prevBelow, prevAtMost = below, atMost
	}
	assert.InDelta(t, 1.0, d.ProbabilityAtMost(3000), 1e-9)
	assert.Equal(t, 0.0, d.ProbabilityBelow(1000))
}

func TestByDescendingProbability(t *testing.T) {
	d, err := distribution.ForMarket(cooling(), 2200, 2, distribution.DefaultSamples)
	require.NoError(t, err)

	sorted := d.ByDescendingProbability()
	require.Len(t, sorted, len(d.Points))
	for i := 1; i < len(sorted); i++ {
		assert.GreaterOrEqual(t, sorted[i-1].Probability, sorted[i].Probability)
	}
	// original order untouched
	assert.Less(t, d.Points[0].Bid, d.Points[1].Bid)
}
