package negotiation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dako7777777/rental-bidding-tool/internal/domain/negotiation"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/shared"
)

func TestScenarioValidate(t *testing.T) {
	require.NoError(t, scenario().Validate())

	tests := []struct {
		name   string
		mutate func(*negotiation.Scenario)
		field  string
	}{
		{"non-positive listing", func(s *negotiation.Scenario) { s.Situation.ListingPrice = 0 }, "RentalSituation.ListingPrice"},
		{"competitive level out of range", func(s *negotiation.Scenario) { s.Situation.CompetitiveLevel = 4 }, "RentalSituation.CompetitiveLevel"},
		{"price sensitivity out of range", func(s *negotiation.Scenario) { s.Situation.PriceSensitivity = 0 }, "RentalSituation.PriceSensitivity"},
		{"negative days on market", func(s *negotiation.Scenario) { s.Situation.DaysOnMarket = -1 }, "RentalSituation.DaysOnMarket"},
		{"property value out of range", func(s *negotiation.Scenario) { s.Preferences.PropertyValue = 6 }, "Preferences.PropertyValue"},
		{"risk tolerance out of range", func(s *negotiation.Scenario) { s.Preferences.RiskTolerance = 0.5 }, "Preferences.RiskTolerance"},
		{"budget far below listing", func(s *negotiation.Scenario) { s.Preferences.MaxBudget = 1500 }, "Preferences.MaxBudget"},
		{"market sigma out of range", func(s *negotiation.Scenario) { s.Market.Sigma = 0.9 }, "Market"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := scenario()
			tt.mutate(&s)

			err := s.Validate()

			require.Error(t, err)
			assert.ErrorIs(t, err, shared.ErrInvalidConfiguration)
			var verrs shared.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			assert.Equal(t, tt.field, verrs[0].Field)
		})
	}
}

func TestBudgetBelowListingIsAccepted(t *testing.T) {
	s := scenario()
	s.Situation.ListingPrice = 2600
	s.Situation.NeighborhoodAvg = 2550
	s.Preferences.MaxBudget = 2500

	assert.NoError(t, s.Validate())
}

func TestNewFinalRoundState(t *testing.T) {
	mods := negotiation.DefaultModifiers(3, 1.0, 0.6)

	counter, err := negotiation.NewFinalRoundState(scenario(), mods, negotiation.FinalRoundInput{
		Feedback: negotiation.FeedbackCounterOffer,
		PriorBid: 2100,
	})
	require.NoError(t, err)
	assert.Equal(t, 2200.0, counter.CounterPrice.OrElse(0), "counter defaults to asking")
	assert.Equal(t, 2100.0, counter.TenantBid.OrElse(0))
	assert.Equal(t, 2100.0, counter.PreviousBid.OrElse(0))

	best, err := negotiation.NewFinalRoundState(scenario(), mods, negotiation.FinalRoundInput{
		Feedback: negotiation.FeedbackRequestBestFinal,
		PriorBid: 2100,
	})
	require.NoError(t, err)
	assert.InDelta(t, 44.0, best.MinIncrease.OrElse(0), 1e-9)
	assert.False(t, best.CounterPrice.IsSet())

	_, err = negotiation.NewFinalRoundState(scenario(), mods, negotiation.FinalRoundInput{
		Feedback: negotiation.FeedbackCounterOffer,
		PriorBid: 0,
	})
	assert.ErrorIs(t, err, shared.ErrInvalidConfiguration)

	_, err = negotiation.NewFinalRoundState(scenario(), mods, negotiation.FinalRoundInput{
		Feedback:     negotiation.FeedbackCounterOffer,
		CounterPrice: shared.Some(-5.0),
		PriorBid:     2100,
	})
	assert.ErrorIs(t, err, shared.ErrInvalidConfiguration)
}

func TestParseFeedback(t *testing.T) {
	fb, err := negotiation.ParseFeedback("counter")
	require.NoError(t, err)
	assert.Equal(t, negotiation.FeedbackCounterOffer, fb)

	fb, err = negotiation.ParseFeedback("request_best_final")
	require.NoError(t, err)
	assert.Equal(t, negotiation.FeedbackRequestBestFinal, fb)

	_, err = negotiation.ParseFeedback("shrug")
	assert.Error(t, err)
}
