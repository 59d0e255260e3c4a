package payoff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dako7777777/rental-bidding-tool/internal/domain/distribution"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/market"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/negotiation"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/payoff"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/shared"
)

var cooling = market.Parameters{DistributionType: market.DistributionLogNormal, Median: 0.98, Sigma: 0.05, Skew: 0.1}

func newState(t *testing.T, mods negotiation.Modifiers) (negotiation.State, *payoff.Evaluator) {
	t.Helper()
	sc := negotiation.Scenario{
		Preferences: negotiation.Preferences{MaxBudget: 2500, PropertyValue: 4, RiskTolerance: mods.RiskTolerance},
		Situation: negotiation.RentalSituation{
			ListingPrice: 2200, NeighborhoodAvg: 2156, DaysOnMarket: 7,
			PriceSensitivity: 2, CompetitiveLevel: 2,
		},
		Market: cooling,
	}
	d, err := distribution.ForMarket(sc.Market, sc.Situation.ListingPrice, sc.Situation.CompetitiveLevel, distribution.DefaultSamples)
	require.NoError(t, err)
	return negotiation.NewState(sc, mods), payoff.NewEvaluator(d)
}

func TestFairMarketValue(t *testing.T) {
	assert.InDelta(t, 2134.44, payoff.FairMarketValue(2200, 2156, 7, cooling), 1e-9)

	hot := market.Parameters{DistributionType: market.DistributionLogNormal, Median: 1.08, Sigma: 0.12}
	// 0.7 x 2376 + 0.3 x 2156, no discount in the first week
	assert.InDelta(t, 2310.0, payoff.FairMarketValue(2200, 2156, 3, hot), 1e-9)
}

func TestStalenessNeverIncreasesFairValue(t *testing.T) {
	markets := []market.Parameters{
		cooling,
		{DistributionType: market.DistributionLogNormal, Median: 0.92, Sigma: 0.06},
		{DistributionType: market.DistributionLogNormal, Median: 1.02, Sigma: 0.05},
		{DistributionType: market.DistributionLogNormal, Median: 1.08, Sigma: 0.12},
	}
	for _, m := range markets {
		prev := payoff.FairMarketValue(2200, 2156, 0, m)
		for days := 1; days <= 120; days++ {
			cur := payoff.FairMarketValue(2200, 2156, days, m)
			assert.LessOrEqual(t, cur, prev, "regime %s day %d", m.Regime(), days)
			prev = cur
		}
	}
}

func TestEvaluateTerminalStates(t *testing.T) {
	s, eval := newState(t, negotiation.DefaultModifiers(3, 1.0, 0.6))
	fair := payoff.FairValue(s)

	won := s.SubmitBid(fair).Decide(negotiation.DecisionAcceptTenant)
	assert.InDelta(t, 0.8+0.1*2.0/3.0, eval.Evaluate(won), 1e-9)

	lost := s.SubmitBid(2000).WithCompetitorBid(2100).Decide(negotiation.DecisionAcceptCompetitor)
	assert.InDelta(t, -0.4, eval.Evaluate(lost), 1e-9)

	rejected := s.SubmitBid(1700).Decide(negotiation.DecisionRejectAll)
	assert.Equal(t, -0.2, eval.Evaluate(rejected))
}

func TestEvaluateRoundPenaltyAndRisk(t *testing.T) {
	s, eval := newState(t, negotiation.DefaultModifiers(3, 1.0, 0.6))
	opening := eval.Evaluate(s.SubmitBid(2100).Decide(negotiation.DecisionAcceptTenant))
	final := eval.Evaluate(s.SubmitBid(2100).
		EnterFinalRound(negotiation.FeedbackCounterOffer, shared.Some(2200.0), shared.None[float64]()).
		SubmitBid(2100).
		Decide(negotiation.DecisionAcceptTenant))
	assert.Less(t, final, opening)

	bold, boldEval := newState(t, negotiation.DefaultModifiers(5, 1.0, 0.6))
	boldValue := boldEval.Evaluate(bold.SubmitBid(2100).Decide(negotiation.DecisionAcceptTenant))
	assert.Greater(t, boldValue, opening)
}

func TestEvaluateHeuristic(t *testing.T) {
	s, eval := newState(t, negotiation.DefaultModifiers(3, 1.0, 0.6))

	assert.Equal(t, 0.0, eval.Evaluate(s), "no bid yet")

	ahead := eval.WinEstimate(s.SubmitBid(2100).WithCompetitorBid(2050))
	behind := eval.WinEstimate(s.SubmitBid(2000).WithCompetitorBid(2050))
	assert.InDelta(t, 0.84, ahead, 1e-9, "0.7 lifted by clearing the acceptance threshold")
	assert.InDelta(t, 0.3, behind, 1e-9)

	assert.Equal(t, 1.0, eval.WinEstimate(s.SubmitBid(2800)), "capped")
}

func TestEvaluateIsBounded(t *testing.T) {
	modifiers := []negotiation.Modifiers{
		negotiation.DefaultModifiers(1, 0.9, 0.78),
		negotiation.DefaultModifiers(3, 1.0, 0.6),
		negotiation.DefaultModifiers(5, 1.2, 0.42),
		{RiskTolerance: 5, NegotiationCost: 0.5, PropertyValueWeight: 3, OverpaymentWeight: 3},
	}
	decisions := []negotiation.Decision{
		negotiation.DecisionAcceptTenant, negotiation.DecisionAcceptCompetitor, negotiation.DecisionRejectAll,
	}

	for _, mods := range modifiers {
		s, eval := newState(t, mods)
		for bid := 500.0; bid <= 5000; bid += 250 {
			bidState := s.SubmitBid(bid)
			states := []negotiation.State{bidState, bidState.WithCompetitorBid(2100), bidState.WithCompetitorBid(bid)}
			for _, d := range decisions {
				states = append(states, bidState.Decide(d))
			}
			for _, st := range states {
				v := eval.Evaluate(st)
				assert.GreaterOrEqual(t, v, payoff.MinPayoff)
				assert.LessOrEqual(t, v, payoff.MaxPayoff)
			}
		}
	}
}
