package steps

import (
	"context"
	"fmt"
	"math"

	"github.com/cucumber/godog"

	"github.com/dako7777777/rental-bidding-tool/internal/domain/landlord"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/negotiation"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/search"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/shared"
)

type landlordContext struct {
	state      *negotiation.State
	actions    []landlord.Action
	candidates []float64
}

func (lc *landlordContext) reset() {
	lc.state = nil
	lc.actions = nil
	lc.candidates = nil
}

func (lc *landlordContext) current() negotiation.State {
	if lc.state == nil {
		s := sharedWorld.rootState()
		lc.state = &s
	}
	return *lc.state
}

// Given steps

func (lc *landlordContext) theTenantBids(bid float64) error {
	s := lc.current().SubmitBid(bid)
	lc.state = &s
	return nil
}

func (lc *landlordContext) theTenantBidAndTheLandlordCountered(bid, counter float64) error {
	s := lc.current().SubmitBid(bid).
		EnterFinalRound(negotiation.FeedbackCounterOffer, shared.Some(counter), shared.None[float64]())
	lc.state = &s
	return nil
}

// When steps

func (lc *landlordContext) theLandlordConsidersTheOpeningState() error {
	lc.actions = landlord.Enumerate(lc.current())
	return nil
}

func (lc *landlordContext) iListTheFinalRoundCandidates() error {
	lc.candidates = search.Candidates(lc.current(), sharedWorld.tuning)
	return nil
}

// Then steps

func (lc *landlordContext) theLandlordShouldHaveNoActions() error {
	if len(lc.actions) != 0 {
		return fmt.Errorf("expected no landlord actions, got %v", lc.actions)
	}
	return nil
}

func (lc *landlordContext) theLandlordShouldHaveAtLeastOneAction() error {
	if len(lc.actions) == 0 {
		return fmt.Errorf("expected landlord actions, got none")
	}
	return nil
}

func (lc *landlordContext) theCandidatesShouldBeExactly(first, second float64) error {
	if len(lc.candidates) != 2 {
		return fmt.Errorf("expected 2 candidates, got %v", lc.candidates)
	}
	for _, want := range []float64{first, second} {
		found := false
		for _, got := range lc.candidates {
			if math.Abs(got-want) < 1e-9 {
				found = true
			}
		}
		if !found {
			return fmt.Errorf("candidate %.2f missing from %v", want, lc.candidates)
		}
	}
	return nil
}

func InitializeLandlordScenario(ctx *godog.ScenarioContext) {
	lc := &landlordContext{}

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		lc.reset()
		return c, nil
	})

	ctx.Step(`^the tenant bids \$(\d+)$`, lc.theTenantBids)
	ctx.Step(`^the tenant bid \$(\d+) and the landlord countered at \$(\d+)$`, lc.theTenantBidAndTheLandlordCountered)
	ctx.Step(`^the landlord considers the opening state$`, lc.theLandlordConsidersTheOpeningState)
	ctx.Step(`^I list the tenant's final-round candidates$`, lc.iListTheFinalRoundCandidates)
	ctx.Step(`^the landlord should have no actions$`, lc.theLandlordShouldHaveNoActions)
	ctx.Step(`^the landlord should have at least one action$`, lc.theLandlordShouldHaveAtLeastOneAction)
	ctx.Step(`^the candidates should be exactly \$(\d+) and \$(\d+)$`, lc.theCandidatesShouldBeExactly)
}
