package negotiation

import (
	"fmt"

	"github.com/dako7777777/rental-bidding-tool/internal/domain/shared"
)

// MinIncreaseRatio is the smallest raise a best-and-final request asks for,
// as a fraction of the listing price.
const MinIncreaseRatio = 0.02

// FinalRoundInput is the landlord feedback a tenant received after the opening round.
type FinalRoundInput struct {
	Feedback     Feedback
	CounterPrice shared.Optional[float64]
	PriorBid     float64
}

// Validate checks the feedback payload.
func (in FinalRoundInput) Validate() error {
	switch in.Feedback {
	case FeedbackRequestBestFinal, FeedbackCounterOffer:
	default:
		return shared.NewValidationError("Feedback", fmt.Sprintf("unsupported landlord feedback %q", in.Feedback))
	}
	if in.PriorBid <= 0 {
		return shared.NewValidationError("PriorBid", "must be positive")
	}
	if price, ok := in.CounterPrice.Get(); ok && price <= 0 {
		return shared.NewValidationError("CounterPrice", "must be positive")
	}
	return nil
}

// NewFinalRoundState builds a round-3 root state from real landlord feedback.
// A counter offer without an explicit price is taken to be at the asking price.
func NewFinalRoundState(s Scenario, mods Modifiers, in FinalRoundInput) (State, error) {
	if err := in.Validate(); err != nil {
		return State{}, err
	}

	opening := NewState(s, mods).SubmitBid(in.PriorBid)

	var counter, increase shared.Optional[float64]
	switch in.Feedback {
	case FeedbackCounterOffer:
		counter = shared.Some(in.CounterPrice.OrElse(s.Situation.ListingPrice))
	case FeedbackRequestBestFinal:
		increase = shared.Some(s.Situation.ListingPrice * MinIncreaseRatio)
	}
	return opening.EnterFinalRound(in.Feedback, counter, increase), nil
}
