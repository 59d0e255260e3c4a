package payoff

import (
	"math"

	"github.com/dako7777777/rental-bidding-tool/internal/domain/distribution"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/landlord"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/negotiation"
	"github.com/dako7777777/rental-bidding-tool/pkg/utils"
)

// Payoff bounds. Chance-node pruning relies on every evaluation lying inside them.
const (
	MaxPayoff = 1.0
	MinPayoff = -1.0
)

const (
	rejectAllPayoff       = -0.2
	lostPropertyPenalty   = -0.5
	forcedIncreaseBonus   = 0.1
	competitionBonusScale = 0.1
	overpaymentScale      = 2.0
)

// Evaluator scores negotiation states for one search. It holds the competitor
// distribution, which depends only on inputs shared by every node of a tree.
type Evaluator struct {
	competitors distribution.Distribution
}

// NewEvaluator creates an evaluator over a precomputed competitor distribution.
func NewEvaluator(competitors distribution.Distribution) *Evaluator {
	return &Evaluator{competitors: competitors}
}

// Competitors returns the distribution the evaluator was built with.
func (e *Evaluator) Competitors() distribution.Distribution {
	return e.competitors
}

// FairValue is the fair market value as seen from s (listing age grows in the final round).
func FairValue(s negotiation.State) float64 {
	return FairMarketValue(s.ListingPrice(), s.Situation.NeighborhoodAvg, s.DaysOnMarket(), s.Market)
}

// Evaluate scores s from the tenant's point of view, always within [-1, 1].
// Terminal states are scored exactly; others with a win-probability heuristic.
func (e *Evaluator) Evaluate(s negotiation.State) float64 {
	if decision, ok := s.Decision.Get(); ok {
		switch decision {
		case negotiation.DecisionAcceptTenant:
			return e.wonPayoff(s)
		case negotiation.DecisionAcceptCompetitor:
			return lostPayoff(s)
		default:
			return rejectAllPayoff
		}
	}
	return e.heuristic(s)
}

// wonPayoff scores winning the unit at the tenant's bid.
//
// Business Rules:
//   - base = property value term - 2 x overpayment ratio x overpayment weight
//   - + 0.1 x competitive level / 3 for winning against competition
//   - - negotiation cost per extra round
//   - x (1 + (risk tolerance - 3) / 10)
func (e *Evaluator) wonPayoff(s negotiation.State) float64 {
	bid := s.TenantBid.OrElse(0)
	overpaymentRatio := (bid - FairValue(s)) / s.ListingPrice()

	base := propertyTerm(s) - overpaymentScale*overpaymentRatio*s.Modifiers.OverpaymentWeight
	competitionBonus := competitionBonusScale * float64(s.Situation.CompetitiveLevel) / 3
	roundPenalty := s.Modifiers.NegotiationCost * float64(s.Round-1)
	riskFactor := (s.Modifiers.RiskTolerance - 3) / 10

	return utils.Clamp((base+competitionBonus-roundPenalty)*(1+riskFactor), MinPayoff, MaxPayoff)
}

func lostPayoff(s negotiation.State) float64 {
	v := lostPropertyPenalty * float64(s.Preferences.PropertyValue) / 5
	if s.CompetitorIncreaseForced {
		v += forcedIncreaseBonus
	}
	return utils.Clamp(v, MinPayoff, MaxPayoff)
}

// heuristic estimates a non-terminal state for move ordering and pruning.
func (e *Evaluator) heuristic(s negotiation.State) float64 {
	bid, ok := s.TenantBid.Get()
	if !ok || bid <= 0 {
		return 0
	}

	win := e.WinEstimate(s)
	if win <= 0 {
		return utils.Clamp(lostPropertyPenalty*float64(s.Preferences.PropertyValue)/5, MinPayoff, MaxPayoff)
	}

	overpaymentRatio := (bid - FairValue(s)) / s.ListingPrice()
	value := win * (propertyTerm(s) - overpaymentScale*overpaymentRatio*s.Modifiers.OverpaymentWeight)
	return utils.Clamp(value, MinPayoff, MaxPayoff)
}

// WinEstimate is the heuristic chance that the tenant's current bid wins,
// adjusted for where it sits against the landlord's thresholds and capped at 1.
func (e *Evaluator) WinEstimate(s negotiation.State) float64 {
	bid := s.TenantBid.OrElse(0)

	var win float64
	if comp, ok := s.HighestCompetitorBid.Get(); ok {
		switch {
		case bid > comp:
			win = 0.7
		case bid == comp:
			win = 0.5
		default:
			win = 0.3
		}
	} else {
		win = e.competitors.ProbabilityBelow(bid)
	}

	profile := landlord.ProfileFor(s)
	ratio := bid / s.ListingPrice()
	switch {
	case ratio >= profile.AcceptanceThreshold:
		win *= 1.2
	case ratio < profile.RejectionThreshold:
		win *= 0.3
	}
	return math.Min(win, 1)
}

func propertyTerm(s negotiation.State) float64 {
	return s.Modifiers.PropertyValueWeight * float64(s.Preferences.PropertyValue) / 5
}
