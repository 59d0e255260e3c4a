package landlord

import (
	"fmt"

	"github.com/dako7777777/rental-bidding-tool/internal/domain/negotiation"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/shared"
)

// Apply returns the state after the landlord plays a. Accept and reject
// actions settle the negotiation; a counter offer or a best-and-final request
// moves it to the final round.
func Apply(s negotiation.State, a Action) negotiation.State {
	switch act := a.(type) {
	case AcceptTenant:
		return s.Decide(negotiation.DecisionAcceptTenant)
	case AcceptCompetitor:
		return s.Decide(negotiation.DecisionAcceptCompetitor)
	case RejectAll:
		return s.Decide(negotiation.DecisionRejectAll)
	case CounterOffer:
		return s.EnterFinalRound(negotiation.FeedbackCounterOffer, shared.Some(act.Price), shared.None[float64]())
	case RequestBestFinal:
		return s.EnterFinalRound(negotiation.FeedbackRequestBestFinal, shared.None[float64](), shared.Some(act.MinIncrease))
	default:
		panic(fmt.Sprintf("landlord: unhandled action %T", a))
	}
}

// Prediction is the single most likely landlord response to a tenant bid judged
// on thresholds alone, with its rough likelihood.
type Prediction struct {
	Kind        string
	Probability float64
	Message     string
}

// Predict classifies a lone bid against the landlord's thresholds.
func Predict(bid, asking float64, profile Profile) Prediction {
	ratio := bid / asking
	switch {
	case ratio >= profile.AcceptanceThreshold:
		return Prediction{Kind: AcceptTenant{}.Kind(), Probability: 0.9, Message: "Likely immediate acceptance"}
	case ratio >= 1.0:
		return Prediction{Kind: RequestBestFinal{}.Kind(), Probability: 0.6, Message: "May request best and final offers"}
	case ratio >= profile.RejectionThreshold:
		return Prediction{Kind: CounterOffer{}.Kind(), Probability: 0.7, Message: fmt.Sprintf("Likely counter at $%.0f", asking)}
	default:
		return Prediction{Kind: RejectAll{}.Kind(), Probability: 0.8, Message: "Risk of rejection - bid may be too low"}
	}
}

// AcceptanceProbability is the chance the landlord takes a winning bid, from
// where the bid sits against the thresholds.
func AcceptanceProbability(bid, asking float64, profile Profile) float64 {
	ratio := bid / asking
	switch {
	case ratio >= profile.AcceptanceThreshold:
		return 0.95
	case ratio >= profile.AcceptanceThreshold-0.05:
		return 0.70
	case ratio >= profile.RejectionThreshold:
		return 0.40
	default:
		return 0.10
	}
}
