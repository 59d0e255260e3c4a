package distribution

import (
	"fmt"
	"math"
	"sort"

	"github.com/dako7777777/rental-bidding-tool/internal/domain/market"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/shared"
	"github.com/dako7777777/rental-bidding-tool/pkg/utils"
)

// DefaultSamples is the number of discrete points in a competitor distribution.
const DefaultSamples = 20

// Sample window clamp, as fractions of the listing price.
const (
	MinBidRatio = 0.85
	MaxBidRatio = 1.30
)

// rangeMultipliers widen the sample window (in sigma units around the median)
// for hotter markets.
var rangeMultipliers = map[market.Regime]struct{ lower, upper float64 }{
	market.RegimeVeryCool: {-1.5, 2.0},
	market.RegimeCooling:  {-2.0, 2.5},
	market.RegimeBalanced: {-1.0, 3.0},
	market.RegimeVeryHot:  {-0.5, 4.0},
}

// BidProbability is one point of a discrete distribution.
type BidProbability struct {
	Bid         float64
	Probability float64
}

// Distribution is the discretized distribution of the highest bid among all
// competing bidders, ordered by ascending bid.
type Distribution struct {
	Points      []BidProbability
	Competitors int
	// Degenerate is set when every order-statistics mass was zero and a
	// uniform distribution was substituted.
	Degenerate bool
}

// CompetitorCount maps a competitive level (1..3) to a number of rival bidders.
func CompetitorCount(level int) (int, error) {
	switch level {
	case 1, 2, 3:
		return level, nil
	default:
		return 0, fmt.Errorf("%w: competitive level %d outside [1, 3]", shared.ErrInvalidConfiguration, level)
	}
}

// ForMarket builds the highest-competitor-bid distribution for a listing.
// Out-of-range parameters are configuration errors.
func ForMarket(params market.Parameters, listing float64, competitiveLevel, samples int) (Distribution, error) {
	if err := params.Validate(); err != nil {
		return Distribution{}, err
	}
	if listing <= 0 {
		return Distribution{}, fmt.Errorf("%w: listing price must be positive", shared.ErrInvalidConfiguration)
	}
	competitors, err := CompetitorCount(competitiveLevel)
	if err != nil {
		return Distribution{}, err
	}
	if samples < 2 {
		samples = DefaultSamples
	}

	median := params.Median * listing
	bidder := NewSkewedLogNormal(median, params.Sigma, params.Skew)
	bids := BidRange(median, params.Sigma, listing, market.Classify(params), samples)

	masses, degenerate := orderStatistics(bids, bidder.CDF, competitors)
	points := make([]BidProbability, len(bids))
	for i, bid := range bids {
		points[i] = BidProbability{Bid: bid, Probability: masses[i]}
	}
	return Distribution{Points: points, Competitors: competitors, Degenerate: degenerate}, nil
}

// BidRange returns n evenly spaced bids spanning a regime-dependent number of
// sigmas around median, clamped to [0.85, 1.30] x listing. An inverted window
// (median far outside the clamp) falls back to the whole clamp.
func BidRange(median, sigma, listing float64, regime market.Regime, n int) []float64 {
	mult, ok := rangeMultipliers[regime]
	if !ok {
		mult = rangeMultipliers[market.RegimeBalanced]
	}
	lower := math.Max(MinBidRatio*listing, median+mult.lower*sigma*listing)
	upper := math.Min(MaxBidRatio*listing, median+mult.upper*sigma*listing)
	if lower >= upper {
		lower, upper = MinBidRatio*listing, MaxBidRatio*listing
	}
	return utils.Linspace(lower, upper, n)
}

// orderStatistics converts single-bidder CDF values into the mass of
// "the maximum of n draws lands at bid i": CDF(b_i)^n - CDF(b_{i-1})^n, with
// the first point taking CDF(b_0)^n. Masses are normalized; when all are zero
// a uniform distribution is returned and degenerate is true.
func orderStatistics(bids []float64, cdf func(float64) float64, n int) (masses []float64, degenerate bool) {
	masses = make([]float64, len(bids))
	total := 0.0
	prev := 0.0
	for i, bid := range bids {
		cur := math.Pow(cdf(bid), float64(n))
		mass := cur
		if i > 0 {
			mass = cur - prev
		}
		if mass < 0 || math.IsNaN(mass) {
			mass = 0
		}
		masses[i] = mass
		total += mass
		prev = cur
	}

	if total <= 0 {
		for i := range masses {
			masses[i] = 1 / float64(len(masses))
		}
		return masses, true
	}
	for i := range masses {
		masses[i] /= total
	}
	return masses, false
}

// Total returns the sum of all probabilities.
func (d Distribution) Total() float64 {
	sum := 0.0
	for _, p := range d.Points {
		sum += p.Probability
	}
	return sum
}

// ProbabilityBelow returns P(highest competitor bid < bid).
func (d Distribution) ProbabilityBelow(bid float64) float64 {
	sum := 0.0
	for _, p := range d.Points {
		if p.Bid < bid {
			sum += p.Probability
		}
	}
	return sum
}

// ProbabilityAtMost returns P(highest competitor bid <= bid).
func (d Distribution) ProbabilityAtMost(bid float64) float64 {
	sum := 0.0
	for _, p := range d.Points {
		if p.Bid <= bid {
			sum += p.Probability
		}
	}
	return sum
}

// Mean returns the expected highest competitor bid.
func (d Distribution) Mean() float64 {
	sum := 0.0
	for _, p := range d.Points {
		sum += p.Bid * p.Probability
	}
	return sum
}

// ByDescendingProbability returns the points ordered most likely first. Ties
// keep ascending bid order.
func (d Distribution) ByDescendingProbability() []BidProbability {
	sorted := append([]BidProbability(nil), d.Points...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Probability > sorted[j].Probability
	})
	return sorted
}
