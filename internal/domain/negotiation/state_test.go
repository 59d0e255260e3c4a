package negotiation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dako7777777/rental-bidding-tool/internal/domain/market"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/negotiation"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/shared"
)

func scenario() negotiation.Scenario {
	return negotiation.Scenario{
		MarketName:  "downtown",
		Preferences: negotiation.Preferences{MaxBudget: 2500, PropertyValue: 4, RiskTolerance: 3},
		Situation: negotiation.RentalSituation{
			ListingPrice: 2200, NeighborhoodAvg: 2156, DaysOnMarket: 7,
			PriceSensitivity: 2, CompetitiveLevel: 2,
		},
		Market: market.Parameters{DistributionType: market.DistributionLogNormal, Median: 0.98, Sigma: 0.05, Skew: 0.1},
	}
}

func root() negotiation.State {
	return negotiation.NewState(scenario(), negotiation.DefaultModifiers(3, 1.0, 0.6))
}

func TestTransitionsNeverTouchTheReceiver(t *testing.T) {
	// Arrange
	parent := root().SubmitBid(2100).WithCompetitorBid(2050)

	// Act
	left := parent.WithCompetitorBid(2300)
	right := parent.Decide(negotiation.DecisionAcceptTenant)

	// Assert
	assert.Equal(t, []float64{2050}, parent.CompetitorBids)
	assert.Equal(t, []float64{2050, 2300}, left.CompetitorBids)
	assert.False(t, parent.IsTerminal())
	assert.True(t, right.IsTerminal())
	assert.True(t, right.WonProperty)

	comp, ok := parent.HighestCompetitorBid.Get()
	require.True(t, ok)
	assert.Equal(t, 2050.0, comp)
}

func TestCloneDeepCopiesCompetitorBids(t *testing.T) {
	original := root().WithCompetitorBid(2000)
	clone := original.Clone()
	clone.CompetitorBids[0] = 1

	assert.Equal(t, 2000.0, original.CompetitorBids[0])
}

func TestEnterFinalRound(t *testing.T) {
	opening := root().SubmitBid(2100)
	assert.False(t, opening.FinalBidsSubmitted)
	assert.Equal(t, 7, opening.DaysOnMarket())

	final := opening.EnterFinalRound(negotiation.FeedbackCounterOffer, shared.Some(2200.0), shared.None[float64]())

	assert.Equal(t, negotiation.RoundFinal, final.Round)
	assert.Equal(t, 10, final.DaysOnMarket())
	assert.Equal(t, 2100.0, final.PreviousBid.OrElse(0))
	assert.Equal(t, 2200.0, final.CounterPrice.OrElse(0))
	assert.False(t, final.MinIncrease.IsSet())

	submitted := final.SubmitBid(2200)
	assert.True(t, submitted.FinalBidsSubmitted)
	assert.False(t, final.FinalBidsSubmitted)
}

func TestDecideAfterBestAndFinalMarksForcedIncrease(t *testing.T) {
	final := root().SubmitBid(2100).
		EnterFinalRound(negotiation.FeedbackRequestBestFinal, shared.None[float64](), shared.Some(44.0))

	lost := final.Decide(negotiation.DecisionAcceptCompetitor)
	assert.True(t, lost.CompetitorIncreaseForced)
	assert.False(t, lost.WonProperty)

	openingLoss := root().SubmitBid(2100).Decide(negotiation.DecisionAcceptCompetitor)
	assert.False(t, openingLoss.CompetitorIncreaseForced)
}

func TestHighestBid(t *testing.T) {
	_, ok := root().HighestBid()
	assert.False(t, ok)

	tie, _ := root().SubmitBid(2100).WithCompetitorBid(2100).HighestBid()
	assert.Equal(t, 2100.0, tie)

	comp, _ := root().SubmitBid(2100).WithCompetitorBid(2150).HighestBid()
	assert.Equal(t, 2150.0, comp)
}

func TestFlexibleBudget(t *testing.T) {
	assert.InDelta(t, 2750.0, root().FlexibleBudget(0.10), 1e-9)
}
