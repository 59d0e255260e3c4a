package steps

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/cucumber/godog"

	"github.com/dako7777777/rental-bidding-tool/internal/application/common"
	"github.com/dako7777777/rental-bidding-tool/internal/application/recommendation"
	"github.com/dako7777777/rental-bidding-tool/internal/application/recommendation/commands"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/negotiation"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/shared"
	"github.com/dako7777777/rental-bidding-tool/test/helpers"
)

type recommendationContext struct {
	mediator common.Mediator
	set      *recommendation.RecommendationSet
	previous *recommendation.RecommendationSet
	err      error
}

func (rc *recommendationContext) reset() error {
	sharedWorld.reset()
	rc.set = nil
	rc.previous = nil
	rc.err = nil

	rc.mediator = common.NewMediator()
	generator := recommendation.NewGenerator(sharedWorld.tuning, recommendation.DefaultOptions(), nil)
	return commands.RegisterHandlers(rc.mediator, generator)
}

func (rc *recommendationContext) send(request common.Request) {
	resp, err := rc.mediator.Send(context.Background(), request)
	rc.err = err
	if err == nil {
		rc.set = resp.(*recommendation.RecommendationSet)
	}
}

func (rc *recommendationContext) requireSet() error {
	if rc.err != nil {
		return fmt.Errorf("expected recommendations, got error: %w", rc.err)
	}
	if rc.set == nil || len(rc.set.Ordered()) != len(recommendation.Strategies) {
		return fmt.Errorf("expected %d recommendations", len(recommendation.Strategies))
	}
	return nil
}

// Given steps

func (rc *recommendationContext) theReferenceRentalScenario() error {
	sharedWorld.scenario = helpers.CoolingScenario()
	return nil
}

func (rc *recommendationContext) theListingPriceIs(price float64) error {
	sharedWorld.scenario.Situation.ListingPrice = price
	return nil
}

func (rc *recommendationContext) theCompetitiveLevelIs(level int) error {
	sharedWorld.scenario.Situation.CompetitiveLevel = level
	return nil
}

// When steps

func (rc *recommendationContext) iRequestRecommendations() error {
	rc.send(&recommendation.GenerateRecommendationsCommand{Scenario: sharedWorld.scenario})
	return nil
}

func (rc *recommendationContext) iRequestRecommendationsTwice() error {
	rc.send(&recommendation.GenerateRecommendationsCommand{Scenario: sharedWorld.scenario})
	if rc.err != nil {
		return rc.err
	}
	rc.previous = rc.set
	rc.send(&recommendation.GenerateRecommendationsCommand{Scenario: sharedWorld.scenario})
	return nil
}

func (rc *recommendationContext) theLandlordCountersAndIRequestFinalRound(bid, counter float64) error {
	rc.send(&recommendation.AdvanceToFinalRoundCommand{
		Scenario:     sharedWorld.scenario,
		Feedback:     negotiation.FeedbackCounterOffer,
		CounterPrice: shared.Some(counter),
		PriorBid:     bid,
	})
	return nil
}

// Then steps

func (rc *recommendationContext) theBidsShouldIncrease() error {
	if err := rc.requireSet(); err != nil {
		return err
	}
	ordered := rc.set.Ordered()
	for i := 1; i < len(ordered); i++ {
		if ordered[i].RecommendedBid <= ordered[i-1].RecommendedBid {
			return fmt.Errorf("%s bid %.2f is not above %s bid %.2f",
				ordered[i].Strategy, ordered[i].RecommendedBid, ordered[i-1].Strategy, ordered[i-1].RecommendedBid)
		}
	}
	return nil
}

func (rc *recommendationContext) theWinProbabilitiesShouldIncrease() error {
	if err := rc.requireSet(); err != nil {
		return err
	}
	ordered := rc.set.Ordered()
	for i := 1; i < len(ordered); i++ {
		if ordered[i].WinProbability <= ordered[i-1].WinProbability {
			return fmt.Errorf("%s win probability %.4f is not above %s %.4f",
				ordered[i].Strategy, ordered[i].WinProbability, ordered[i-1].Strategy, ordered[i-1].WinProbability)
		}
	}
	return nil
}

func (rc *recommendationContext) theBalancedBidShouldBeWithinOfListing(percent float64) error {
	if err := rc.requireSet(); err != nil {
		return err
	}
	bid := rc.set.Get(recommendation.StrategyBalanced).RecommendedBid
	listing := rc.set.ListingPrice
	if math.Abs(bid-listing) > listing*percent/100 {
		return fmt.Errorf("balanced bid %.2f is more than %.0f%% from listing %.2f", bid, percent, listing)
	}
	return nil
}

func (rc *recommendationContext) everyBidShouldBeAtMost(limit float64) error {
	if err := rc.requireSet(); err != nil {
		return err
	}
	for _, rec := range rc.set.Ordered() {
		if rec.RecommendedBid < 0 || rec.RecommendedBid > limit+1e-9 {
			return fmt.Errorf("%s bid %.2f outside [0, %.2f]", rec.Strategy, rec.RecommendedBid, limit)
		}
	}
	return nil
}

func (rc *recommendationContext) everyBidShouldBeEither(a, b float64) error {
	if err := rc.requireSet(); err != nil {
		return err
	}
	for _, rec := range rc.set.Ordered() {
		if rec.RecommendedBid != a && rec.RecommendedBid != b {
			return fmt.Errorf("%s bid %.2f is neither %.2f nor %.2f", rec.Strategy, rec.RecommendedBid, a, b)
		}
	}
	return nil
}

func (rc *recommendationContext) theBudgetShouldBeFlaggedAsBelowListing() error {
	if err := rc.requireSet(); err != nil {
		return err
	}
	if !rc.set.BudgetBelowListing {
		return fmt.Errorf("expected the budget to be flagged as below the listing price")
	}
	return nil
}

func (rc *recommendationContext) bothRunsShouldRecommendTheSameBids() error {
	if err := rc.requireSet(); err != nil {
		return err
	}
	for _, strategy := range recommendation.Strategies {
		a, b := rc.previous.Get(strategy), rc.set.Get(strategy)
		if a.RecommendedBid != b.RecommendedBid || a.SearchValue != b.SearchValue {
			return fmt.Errorf("%s differs between runs: %.2f/%.4f vs %.2f/%.4f",
				strategy, a.RecommendedBid, a.SearchValue, b.RecommendedBid, b.SearchValue)
		}
	}
	return nil
}

func (rc *recommendationContext) theRecommendationsShouldBeForTheFinalRound() error {
	if err := rc.requireSet(); err != nil {
		return err
	}
	if rc.set.Round != negotiation.RoundFinal {
		return fmt.Errorf("expected round %d, got %d", negotiation.RoundFinal, rc.set.Round)
	}
	return nil
}

func (rc *recommendationContext) theRequestShouldFailWithAConfigurationError() error {
	if rc.err == nil {
		return fmt.Errorf("expected a configuration error, but the request succeeded")
	}
	if !errors.Is(rc.err, shared.ErrInvalidConfiguration) {
		return fmt.Errorf("expected a configuration error, got: %v", rc.err)
	}
	return nil
}

func InitializeRecommendationScenario(ctx *godog.ScenarioContext) {
	rc := &recommendationContext{}

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		return c, rc.reset()
	})

	ctx.Step(`^the reference rental scenario$`, rc.theReferenceRentalScenario)
	ctx.Step(`^the listing price is \$(\d+)$`, rc.theListingPriceIs)
	ctx.Step(`^the competitive level is (\d+)$`, rc.theCompetitiveLevelIs)
	ctx.Step(`^I request recommendations$`, rc.iRequestRecommendations)
	ctx.Step(`^I request recommendations twice$`, rc.iRequestRecommendationsTwice)
	ctx.Step(`^the landlord counters my \$(\d+) bid at \$(\d+) and I request final-round recommendations$`, rc.theLandlordCountersAndIRequestFinalRound)
	ctx.Step(`^the bids should increase from conservative to aggressive$`, rc.theBidsShouldIncrease)
	ctx.Step(`^the win probabilities should increase from conservative to aggressive$`, rc.theWinProbabilitiesShouldIncrease)
	ctx.Step(`^the balanced bid should be within (\d+)% of the listing price$`, rc.theBalancedBidShouldBeWithinOfListing)
	ctx.Step(`^every bid should be at most \$(\d+)$`, rc.everyBidShouldBeAtMost)
	ctx.Step(`^every bid should be either \$(\d+) or \$(\d+)$`, rc.everyBidShouldBeEither)
	ctx.Step(`^the budget should be flagged as below the listing price$`, rc.theBudgetShouldBeFlaggedAsBelowListing)
	ctx.Step(`^both runs should recommend the same bids$`, rc.bothRunsShouldRecommendTheSameBids)
	ctx.Step(`^the recommendations should be for the final round$`, rc.theRecommendationsShouldBeForTheFinalRound)
	ctx.Step(`^the request should fail with a configuration error$`, rc.theRequestShouldFailWithAConfigurationError)
}
