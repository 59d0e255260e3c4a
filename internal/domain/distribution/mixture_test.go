package distribution_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/dako7777777/rental-bidding-tool/internal/domain/distribution"
)

func TestNewMixtureNormalizesWeights(t *testing.T) {
	a := distuv.LogNormal{Mu: math.Log(100), Sigma: 0.1}
	b := distuv.LogNormal{Mu: math.Log(120), Sigma: 0.2}

	m, err := distribution.NewMixture([]distribution.Component{a, b}, []float64{3, 1})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.75, 0.25}, m.Weights(), 1e-12)

	clamped, err := distribution.NewMixture([]distribution.Component{a, b}, []float64{-2, 1})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 1}, clamped.Weights(), 1e-12)
}

func TestNewMixtureRejectsUnusableInput(t *testing.T) {
	a := distuv.LogNormal{Mu: 0, Sigma: 0.1}

	_, err := distribution.NewMixture(nil, nil)
	assert.ErrorIs(t, err, distribution.ErrInvalidMixture)

	_, err = distribution.NewMixture([]distribution.Component{a}, []float64{1, 2})
	assert.ErrorIs(t, err, distribution.ErrInvalidMixture)

	_, err = distribution.NewMixture([]distribution.Component{a, a}, []float64{0, 0})
	assert.ErrorIs(t, err, distribution.ErrInvalidMixture)
}

func TestMixtureMoments(t *testing.T) {
	a := distuv.LogNormal{Mu: math.Log(100), Sigma: 0.1}
	b := distuv.LogNormal{Mu: math.Log(130), Sigma: 0.15}
	m, err := distribution.NewMixture([]distribution.Component{a, b}, []float64{0.6, 0.4})
	require.NoError(t, err)

	mean := 0.6*a.Mean() + 0.4*b.Mean()
	assert.InDelta(t, mean, m.Mean(), 1e-9)

	variance := 0.6*a.Variance() + 0.4*b.Variance() +
		0.6*math.Pow(a.Mean()-mean, 2) + 0.4*math.Pow(b.Mean()-mean, 2)
	assert.InDelta(t, math.Sqrt(variance), m.StdDev(), 1e-9)

	x := 115.0
	assert.InDelta(t, 0.6*a.CDF(x)+0.4*b.CDF(x), m.CDF(x), 1e-12)
	assert.InDelta(t, 0.6*a.Prob(x)+0.4*b.Prob(x), m.Prob(x), 1e-12)
}

func TestNewSkewedLogNormal(t *testing.T) {
	t.Run("negligible skew is a single log-normal centered on the median", func(t *testing.T) {
		m := distribution.NewSkewedLogNormal(2000, 0.05, 0.005)
		assert.Equal(t, []float64{1}, m.Weights())
		assert.InDelta(t, 0.5, m.CDF(2000), 1e-9)
	})

	t.Run("positive skew shifts mass above the median", func(t *testing.T) {
		m := distribution.NewSkewedLogNormal(2000, 0.05, 0.5)
		assert.InDeltaSlice(t, []float64{0.65, 0.35}, m.Weights(), 1e-12)
		assert.Less(t, m.CDF(2000), 0.5)
		assert.Greater(t, m.Mean(), 2000.0)
	})

	t.Run("negative skew shifts mass below the median", func(t *testing.T) {
		m := distribution.NewSkewedLogNormal(2000, 0.05, -0.5)
		assert.InDeltaSlice(t, []float64{0.65, 0.35}, m.Weights(), 1e-12)
		assert.Greater(t, m.CDF(2000), 0.5)
	})

	t.Run("skew beyond one saturates the weight", func(t *testing.T) {
		m := distribution.NewSkewedLogNormal(2000, 0.05, 3)
		assert.InDeltaSlice(t, []float64{0.5, 0.5}, m.Weights(), 1e-12)
	})
}
