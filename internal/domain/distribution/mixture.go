package distribution

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Component is a continuous distribution that can take part in a Mixture.
// distuv.LogNormal satisfies it.
type Component interface {
	Prob(x float64) float64
	CDF(x float64) float64
	Mean() float64
	StdDev() float64
}

// ErrInvalidMixture is returned when a mixture has no usable components or weights.
var ErrInvalidMixture = errors.New("invalid mixture")

// Mixture is a weighted combination of continuous components. Weights are
// clamped to be non-negative and renormalized to sum to 1.
type Mixture struct {
	components []Component
	weights    []float64
}

// NewMixture builds a mixture from parallel component and weight slices.
func NewMixture(components []Component, weights []float64) (*Mixture, error) {
	if len(components) == 0 || len(components) != len(weights) {
		return nil, ErrInvalidMixture
	}
	normalized := make([]float64, len(weights))
	total := 0.0
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) {
			w = 0
		}
		normalized[i] = w
		total += w
	}
	if total <= 0 {
		return nil, ErrInvalidMixture
	}
	for i := range normalized {
		normalized[i] /= total
	}
	return &Mixture{components: append([]Component(nil), components...), weights: normalized}, nil
}

// Weights returns a copy of the normalized weights.
func (m *Mixture) Weights() []float64 {
	return append([]float64(nil), m.weights...)
}

// Prob returns the mixture density at x.
func (m *Mixture) Prob(x float64) float64 {
	sum := 0.0
	for i, c := range m.components {
		sum += m.weights[i] * c.Prob(x)
	}
	return sum
}

// CDF returns P(X <= x).
func (m *Mixture) CDF(x float64) float64 {
	sum := 0.0
	for i, c := range m.components {
		sum += m.weights[i] * c.CDF(x)
	}
	return sum
}

// Mean returns the weighted mean of the component means.
func (m *Mixture) Mean() float64 {
	sum := 0.0
	for i, c := range m.components {
		sum += m.weights[i] * c.Mean()
	}
	return sum
}

// StdDev combines component spreads with the law of total variance:
// the weighted mean of component variances plus the weighted variance of
// component means.
func (m *Mixture) StdDev() float64 {
	mean := m.Mean()
	within, between := 0.0, 0.0
	for i, c := range m.components {
		sd := c.StdDev()
		within += m.weights[i] * sd * sd
		d := c.Mean() - mean
		between += m.weights[i] * d * d
	}
	return math.Sqrt(within + between)
}

// skewThreshold is the |skew| below which a single log-normal is used.
const skewThreshold = 0.01

// NewSkewedLogNormal approximates a skewed bid distribution with median
// (in currency units) and log-space shape sigma.
//
// Positive skew mixes the base log-normal with a wider, higher-median one;
// negative skew mixes it with a tighter, lower-median one. The base weight
// is 0.8 - 0.3*min(skew, 1) or 0.8 + 0.3*max(skew, -1) respectively.
func NewSkewedLogNormal(median, sigma, skew float64) *Mixture {
	base := logNormal(median, sigma)
	if math.Abs(skew) < skewThreshold {
		return &Mixture{components: []Component{base}, weights: []float64{1}}
	}

	var tail Component
	var weight float64
	if skew > 0 {
		tail = logNormal(median*1.1, sigma*1.5)
		weight = 0.8 - 0.3*math.Min(skew, 1)
	} else {
		tail = logNormal(median*0.95, sigma*0.7)
		weight = 0.8 + 0.3*math.Max(skew, -1)
	}
	return &Mixture{components: []Component{base, tail}, weights: []float64{weight, 1 - weight}}
}

// logNormal parameterizes by median (scale) and log-space shape.
func logNormal(median, sigma float64) distuv.LogNormal {
	return distuv.LogNormal{Mu: math.Log(median), Sigma: sigma}
}
