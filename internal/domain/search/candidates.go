package search

import (
	"math"

	"github.com/dako7777777/rental-bidding-tool/internal/domain/market"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/negotiation"
	"github.com/dako7777777/rental-bidding-tool/pkg/utils"
)

type bidWindow struct {
	centerOffset float64
	width        float64
}

// riskLevels are the table keys; fractional risk tolerances use the nearest one.
var riskLevels = []float64{1, 1.5, 2, 3, 4, 4.5, 5}

// Bid windows around the market median ratio, per risk level. Hot and
// balanced markets sit higher.
var (
	coolWindows = map[float64]bidWindow{
		1: {-0.08, 0.10}, 1.5: {-0.06, 0.12}, 2: {-0.04, 0.14}, 3: {-0.02, 0.16},
		4: {0.00, 0.18}, 4.5: {0.02, 0.20}, 5: {0.04, 0.22},
	}
	warmWindows = map[float64]bidWindow{
		1: {-0.04, 0.10}, 1.5: {-0.02, 0.12}, 2: {0.00, 0.14}, 3: {0.02, 0.16},
		4: {0.04, 0.18}, 4.5: {0.06, 0.20}, 5: {0.08, 0.22},
	}
)

const (
	minBidRatio          = 0.85
	fallbackCeilingRatio = 1.05
	fallbackBandRatio    = 0.95
	finalRaiseMin        = 1.02
	finalRaiseMax        = 1.10
	defaultReferenceBid  = 0.98
)

// NearestRiskLevel maps a possibly fractional risk tolerance to a table key.
// Ties resolve to the lower level.
func NearestRiskLevel(risk float64) float64 {
	best := riskLevels[0]
	for _, level := range riskLevels[1:] {
		if math.Abs(level-risk) < math.Abs(best-risk) {
			best = level
		}
	}
	return best
}

// Candidates returns the tenant's candidate bids at s.
//
//   - final round after a counter offer: exactly the counter price and the
//     original bid
//   - final round after a best-and-final request: a 2%..10% raise band over the
//     previous bid, respecting the requested minimum increase
//   - otherwise: a risk- and regime-dependent window around the market median,
//     clamped to [0.85 x listing, flexible budget]
func Candidates(s negotiation.State, t Tuning) []float64 {
	if s.Round == negotiation.RoundFinal {
		if fb, ok := s.Feedback.Get(); ok {
			switch fb {
			case negotiation.FeedbackCounterOffer:
				if counter, ok := s.CounterPrice.Get(); ok {
					return counterCandidates(s, counter)
				}
			case negotiation.FeedbackRequestBestFinal:
				return raiseCandidates(s, t)
			}
		}
	}
	return windowCandidates(s, t)
}

func counterCandidates(s negotiation.State, counter float64) []float64 {
	original, ok := s.PreviousBid.Get()
	if !ok {
		original, ok = s.TenantBid.Get()
	}
	if !ok || original == counter {
		return []float64{counter}
	}
	return []float64{counter, original}
}

func raiseCandidates(s negotiation.State, t Tuning) []float64 {
	flexible := s.FlexibleBudget(t.BudgetFlexibility)

	reference, ok := s.PreviousBid.Get()
	if !ok {
		reference, ok = s.TenantBid.Get()
	}
	if !ok || reference <= 0 {
		reference = s.ListingPrice() * defaultReferenceBid
	}

	lo := reference * finalRaiseMin
	if inc, ok := s.MinIncrease.Get(); ok {
		lo = math.Max(lo, reference+inc)
	}
	hi := math.Min(reference*finalRaiseMax, flexible)
	if lo > hi {
		return []float64{flexible}
	}
	if lo == hi {
		return []float64{lo}
	}
	return utils.Linspace(lo, hi, t.FinalRoundSamples)
}

func windowCandidates(s negotiation.State, t Tuning) []float64 {
	listing := s.ListingPrice()
	flexible := s.FlexibleBudget(t.BudgetFlexibility)

	windows := warmWindows
	if market.Classify(s.Market).IsCool() {
		windows = coolWindows
	}
	w := windows[NearestRiskLevel(s.Modifiers.RiskTolerance)]

	center := s.Market.Median + w.centerOffset
	lo := math.Max((center-w.width/2)*listing, minBidRatio*listing)
	hi := math.Min((center+w.width/2)*listing, flexible)

	if lo >= hi {
		hi = math.Min(flexible, listing*fallbackCeilingRatio)
		lo = hi * fallbackBandRatio
	}
	if lo >= hi {
		return []float64{lo}
	}
	return utils.Linspace(lo, hi, t.TenantSamples)
}
