package negotiation

import (
	"github.com/dako7777777/rental-bidding-tool/internal/domain/market"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/shared"
)

// DaysBetweenRounds is how much longer the unit has been listed by the final round.
const DaysBetweenRounds = 3

// Modifiers bias one strategy's search. They travel with every state so
// differently-biased searches never share settings.
type Modifiers struct {
	RiskTolerance       float64
	NegotiationCost     float64
	PropertyValueWeight float64
	OverpaymentWeight   float64
}

// DefaultNegotiationCost is the per-extra-round penalty of an unbiased search.
const DefaultNegotiationCost = 0.05

// DefaultModifiers returns an unbiased modifier set for the given risk tolerance.
func DefaultModifiers(riskTolerance, propertyValueWeight, overpaymentWeight float64) Modifiers {
	return Modifiers{
		RiskTolerance:       riskTolerance,
		NegotiationCost:     DefaultNegotiationCost,
		PropertyValueWeight: propertyValueWeight,
		OverpaymentWeight:   overpaymentWeight,
	}
}

// State is one node of the negotiation tree. It is a value type: every
// transition returns a new State and never touches the receiver, so sibling
// branches cannot observe each other.
type State struct {
	Round       Round
	Preferences Preferences
	Situation   RentalSituation
	Market      market.Parameters

	TenantBid            shared.Optional[float64]
	PreviousBid          shared.Optional[float64]
	HighestCompetitorBid shared.Optional[float64]
	CompetitorBids       []float64

	Feedback     shared.Optional[Feedback]
	Decision     shared.Optional[Decision]
	CounterPrice shared.Optional[float64]
	MinIncrease  shared.Optional[float64]

	FinalBidsSubmitted       bool
	CompetitorIncreaseForced bool
	WonProperty              bool

	Modifiers Modifiers
}

// NewState creates the opening-round root state of a scenario.
func NewState(s Scenario, mods Modifiers) State {
	return State{
		Round:       RoundOpening,
		Preferences: s.Preferences,
		Situation:   s.Situation,
		Market:      s.Market,
		Modifiers:   mods,
	}
}

// Clone returns a deep copy.
func (s State) Clone() State {
	c := s
	if s.CompetitorBids != nil {
		c.CompetitorBids = append([]float64(nil), s.CompetitorBids...)
	}
	return c
}

// IsTerminal reports whether the landlord has issued a final decision.
func (s State) IsTerminal() bool {
	return s.Decision.IsSet()
}

// DaysOnMarket is the listing age at this node; the final round happens
// DaysBetweenRounds days after the opening round.
func (s State) DaysOnMarket() int {
	if s.Round == RoundFinal {
		return s.Situation.DaysOnMarket + DaysBetweenRounds
	}
	return s.Situation.DaysOnMarket
}

// ListingPrice is the landlord's asking price.
func (s State) ListingPrice() float64 {
	return s.Situation.ListingPrice
}

// Regime classifies the state's market.
func (s State) Regime() market.Regime {
	return market.Classify(s.Market)
}

// FlexibleBudget is the max budget stretched by flexibility (e.g. 0.10).
func (s State) FlexibleBudget(flexibility float64) float64 {
	return s.Preferences.MaxBudget * (1 + flexibility)
}

// WithModifiers returns a copy carrying a different strategy bias.
func (s State) WithModifiers(m Modifiers) State {
	c := s.Clone()
	c.Modifiers = m
	return c
}

// SubmitBid records the tenant's bid. A final-round bid is the tenant's last word.
func (s State) SubmitBid(bid float64) State {
	c := s.Clone()
	c.TenantBid = shared.Some(bid)
	if c.Round == RoundFinal {
		c.FinalBidsSubmitted = true
	}
	return c
}

// WithCompetitorBid records the highest competing bid.
func (s State) WithCompetitorBid(bid float64) State {
	c := s.Clone()
	c.HighestCompetitorBid = shared.Some(bid)
	c.CompetitorBids = append(c.CompetitorBids, bid)
	return c
}

// Decide settles the negotiation.
func (s State) Decide(d Decision) State {
	c := s.Clone()
	c.Decision = shared.Some(d)
	c.WonProperty = d == DecisionAcceptTenant
	if d == DecisionAcceptCompetitor {
		if fb, ok := c.Feedback.Get(); ok && fb == FeedbackRequestBestFinal {
			c.CompetitorIncreaseForced = true
		}
	}
	return c
}

// EnterFinalRound moves the negotiation to round 3 after landlord feedback.
// The current tenant bid becomes the previous bid the final round builds on.
func (s State) EnterFinalRound(fb Feedback, counterPrice, minIncrease shared.Optional[float64]) State {
	c := s.Clone()
	c.Round = RoundFinal
	c.Feedback = shared.Some(fb)
	if bid, ok := c.TenantBid.Get(); ok {
		c.PreviousBid = shared.Some(bid)
	}
	if counterPrice.IsSet() {
		c.CounterPrice = counterPrice
	}
	if minIncrease.IsSet() {
		c.MinIncrease = minIncrease
	}
	return c
}

// HighestBid returns the larger of the tenant and competitor bids, if any.
func (s State) HighestBid() (float64, bool) {
	tenant, hasTenant := s.TenantBid.Get()
	comp, hasComp := s.HighestCompetitorBid.Get()
	switch {
	case hasTenant && hasComp:
		if comp > tenant {
			return comp, true
		}
		return tenant, true
	case hasTenant:
		return tenant, true
	case hasComp:
		return comp, true
	default:
		return 0, false
	}
}
