package recommendation

import (
	"github.com/dako7777777/rental-bidding-tool/internal/domain/market"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/negotiation"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/search"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/shared"
)

// GenerateRecommendationsCommand requests opening-round recommendations for a scenario.
type GenerateRecommendationsCommand struct {
	Scenario negotiation.Scenario
}

// AdvanceToFinalRoundCommand requests final-round recommendations after the
// landlord answered the tenant's opening bid.
type AdvanceToFinalRoundCommand struct {
	Scenario     negotiation.Scenario
	Feedback     negotiation.Feedback
	CounterPrice shared.Optional[float64]
	PriorBid     float64
}

// LandlordResponse is the single most likely landlord reaction to a bid.
type LandlordResponse struct {
	Type        string  `json:"type"`
	Probability float64 `json:"probability"`
	Message     string  `json:"message"`
}

// Recommendation is the outcome of one strategy.
type Recommendation struct {
	Strategy                   Strategy         `json:"strategy"`
	RecommendedBid             float64          `json:"recommended_bid"`
	WinProbability             float64          `json:"win_probability"`
	ExpectedOverpayment        float64          `json:"expected_overpayment"`
	PredictedLandlordResponse  LandlordResponse `json:"predicted_landlord_response"`
	RequiresFurtherNegotiation bool             `json:"requires_further_negotiation"`
	Rationale                  string           `json:"rationale"`
	SearchValue                float64          `json:"internal_search_value"`

	// Fallback is set when the search found no bid and a fixed fraction of
	// the listing price was used instead.
	Fallback bool `json:"fallback"`
	// Adjusted is set when the bid was moved to keep strategies apart or in
	// order. SearchValue then scores the moved bid, not the searched one.
	Adjusted bool         `json:"adjusted"`
	Stats    search.Stats `json:"stats"`
}

// Confidence labels how strongly the search favoured the bid.
func (r *Recommendation) Confidence() string {
	switch {
	case r.Fallback:
		return "Low"
	case r.SearchValue > 0.5:
		return "High"
	case r.SearchValue > 0:
		return "Medium"
	default:
		return "Low"
	}
}

// RecommendationSet holds one recommendation per strategy for a single round.
type RecommendationSet struct {
	RunID              string                       `json:"run_id"`
	Round              negotiation.Round            `json:"round"`
	Regime             market.Regime                `json:"regime"`
	ListingPrice       float64                      `json:"listing_price"`
	FairValue          float64                      `json:"fair_value"`
	FlexibleBudget     float64                      `json:"flexible_budget"`
	BudgetBelowListing bool                         `json:"budget_below_listing"`
	Recommendations    map[Strategy]*Recommendation `json:"recommendations"`
}

// Get returns the recommendation for a strategy, or nil.
func (s *RecommendationSet) Get(strategy Strategy) *Recommendation {
	return s.Recommendations[strategy]
}

// Ordered returns the recommendations from conservative to aggressive.
func (s *RecommendationSet) Ordered() []*Recommendation {
	out := make([]*Recommendation, 0, len(Strategies))
	for _, strategy := range Strategies {
		if r, ok := s.Recommendations[strategy]; ok {
			out = append(out, r)
		}
	}
	return out
}

// RoundLabel names the round for metric labels.
func (s *RecommendationSet) RoundLabel() string {
	if s.Round == negotiation.RoundFinal {
		return "final"
	}
	return "opening"
}

// Bids returns the recommended bids from conservative to aggressive.
func (s *RecommendationSet) Bids() []float64 {
	ordered := s.Ordered()
	bids := make([]float64, len(ordered))
	for i, r := range ordered {
		bids[i] = r.RecommendedBid
	}
	return bids
}
