package negotiation

import "fmt"

// Round is a tenant decision point. Round 2 is the landlord's turn and never
// appears in a state.
type Round int

const (
	RoundOpening Round = 1
	RoundFinal   Round = 3
)

// Feedback is the landlord's non-final response to opening bids.
type Feedback string

const (
	FeedbackRequestBestFinal Feedback = "request_best_final"
	FeedbackCounterOffer     Feedback = "counter_offer"
)

// ParseFeedback accepts the wire names and a few short aliases.
func ParseFeedback(s string) (Feedback, error) {
	switch s {
	case string(FeedbackRequestBestFinal), "best_final", "best-and-final", "request-best-final":
		return FeedbackRequestBestFinal, nil
	case string(FeedbackCounterOffer), "counter", "counter-offer":
		return FeedbackCounterOffer, nil
	default:
		return "", fmt.Errorf("unknown landlord feedback %q", s)
	}
}

// Decision is the landlord's final decision. Its presence makes a state terminal.
type Decision string

const (
	DecisionAcceptTenant     Decision = "accept_tenant"
	DecisionAcceptCompetitor Decision = "accept_competitor"
	DecisionRejectAll        Decision = "reject_all"
)
