package distribution

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatisticsUniformFallback(t *testing.T) {
	bids := []float64{100, 200, 300, 400}
	masses, degenerate := orderStatistics(bids, func(float64) float64 { return 0 }, 3)

	assert.True(t, degenerate)
	assert.InDeltaSlice(t, []float64{0.25, 0.25, 0.25, 0.25}, masses, 1e-12)
}

func TestOrderStatisticsMaxOfDraws(t *testing.T) {
	// single-bidder CDF 0.25 / 0.5 / 1 with two bidders: 1/16, 3/16, 12/16
	cdf := map[float64]float64{1: 0.25, 2: 0.5, 3: 1}
	masses, degenerate := orderStatistics([]float64{1, 2, 3}, func(x float64) float64 { return cdf[x] }, 2)

	assert.False(t, degenerate)
	assert.InDeltaSlice(t, []float64{1.0 / 16, 3.0 / 16, 12.0 / 16}, masses, 1e-12)
}
