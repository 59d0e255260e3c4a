package recommendation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dako7777777/rental-bidding-tool/internal/domain/negotiation"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/search"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/shared"
	"github.com/dako7777777/rental-bidding-tool/test/helpers"
)

func byBid(_ int, bid float64) float64 { return bid }

func TestDifferentiatePushesCloseBidsApart(t *testing.T) {
	g := NewGenerator(search.DefaultTuning(), DefaultOptions(), nil)
	bids := []float64{2000, 2005, 2010}

	g.differentiate(bids, 2750, byBid)

	assert.Equal(t, []float64{2000, 2050, 2100}, bids)
}

func TestDifferentiateRestoresOrder(t *testing.T) {
	g := NewGenerator(search.DefaultTuning(), DefaultOptions(), nil)
	bids := []float64{2200, 2100, 2400}

	g.differentiate(bids, 2750, byBid)

	assert.Equal(t, []float64{2200, 2250, 2400}, bids)
}

func TestDifferentiateLeavesSeparatedBidsAlone(t *testing.T) {
	g := NewGenerator(search.DefaultTuning(), DefaultOptions(), nil)
	bids := []float64{1950, 2100, 2300}

	g.differentiate(bids, 2750, byBid)

	assert.Equal(t, []float64{1950, 2100, 2300}, bids)
}

func TestDifferentiatePushesDownWhenCappedByBudget(t *testing.T) {
	g := NewGenerator(search.DefaultTuning(), DefaultOptions(), nil)
	bids := []float64{2740, 2745, 2750}

	g.differentiate(bids, 2750, byBid)

	assert.Equal(t, []float64{2650, 2700, 2750}, bids)
}

func TestDifferentiateRaisesUntilWinProbabilityImproves(t *testing.T) {
	g := NewGenerator(search.DefaultTuning(), DefaultOptions(), nil)
	// Win probability only steps up every $100.
	stepped := func(_ int, bid float64) float64 { return float64(int(bid) / 100) }
	bids := []float64{2010, 2060, 2300}

	g.differentiate(bids, 2750, stepped)

	assert.Equal(t, []float64{2010, 2110, 2300}, bids)
}

func TestOrderKeepsMenuBidsOnTheMenu(t *testing.T) {
	bids := []float64{2250, 2150, 2250}

	order(bids)

	assert.Equal(t, []float64{2250, 2250, 2250}, bids)
}

func TestNearestSnapsToTheMenu(t *testing.T) {
	menu := []float64{2250, 2150}

	assert.Equal(t, 2150.0, nearest(menu, 1936))
	assert.Equal(t, 2250.0, nearest(menu, 2244))
	assert.Equal(t, 2150.0, nearest(menu, 2200), "ties go to the lower bid")
}

func TestSettleRescoresMovedBids(t *testing.T) {
	root := negotiation.NewState(helpers.CoolingScenario(), negotiation.DefaultModifiers(3, 1.0, 0.6))
	g := NewGenerator(search.DefaultTuning(), DefaultOptions(), nil)
	engine, err := search.NewEngine(root, g.Tuning())
	require.NoError(t, err)
	run := &strategyRun{strategy: StrategyBalanced, state: root, engine: engine}

	value, adjusted := g.settle(run, 2288, 2288, 0.42)
	assert.False(t, adjusted)
	assert.Equal(t, 0.42, value)

	value, adjusted = g.settle(run, 2338, 2288, 0.42)
	assert.True(t, adjusted)
	assert.Equal(t, engine.Evaluator().Evaluate(root.SubmitBid(2338)), value)
}

func TestCounterMenuOnlyAfterACounterOffer(t *testing.T) {
	g := NewGenerator(search.DefaultTuning(), DefaultOptions(), nil)
	mods := negotiation.DefaultModifiers(3, 1.0, 0.6)

	opening := negotiation.NewState(helpers.CoolingScenario(), mods)
	assert.Nil(t, g.counterMenu(opening, 2750))

	counter, err := negotiation.NewFinalRoundState(helpers.CoolingScenario(), mods, negotiation.FinalRoundInput{
		Feedback:     negotiation.FeedbackCounterOffer,
		CounterPrice: shared.Some(2250.0),
		PriorBid:     2150,
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []float64{2250, 2150}, g.counterMenu(counter, 2750))
	assert.Equal(t, []float64{2150}, g.counterMenu(counter, 2200), "the counter is out of budget")

	bestFinal, err := negotiation.NewFinalRoundState(helpers.CoolingScenario(), mods, negotiation.FinalRoundInput{
		Feedback: negotiation.FeedbackRequestBestFinal,
		PriorBid: 2200,
	})
	require.NoError(t, err)
	assert.Nil(t, g.counterMenu(bestFinal, 2750))
}
