package landlord

import "fmt"

// Action is one of the landlord's moves. The set of variants is closed:
// AcceptTenant, AcceptCompetitor, RequestBestFinal, CounterOffer and RejectAll.
type Action interface {
	// Kind is the stable wire name of the variant.
	Kind() string
	fmt.Stringer
	isAction()
}

// AcceptTenant ends the negotiation in the tenant's favour.
type AcceptTenant struct{ Bid float64 }

// AcceptCompetitor ends the negotiation in a rival's favour.
type AcceptCompetitor struct{ Bid float64 }

// RequestBestFinal asks every bidder for a final bid at least MinIncrease higher.
type RequestBestFinal struct{ MinIncrease float64 }

// CounterOffer names the rent the landlord would settle for.
type CounterOffer struct{ Price float64 }

// RejectAll walks away from every bid.
type RejectAll struct{}

func (AcceptTenant) isAction()     {}
func (AcceptCompetitor) isAction() {}
func (RequestBestFinal) isAction() {}
func (CounterOffer) isAction()     {}
func (RejectAll) isAction()        {}

func (AcceptTenant) Kind() string     { return "accept_tenant" }
func (AcceptCompetitor) Kind() string { return "accept_competitor" }
func (RequestBestFinal) Kind() string { return "request_best_final" }
func (CounterOffer) Kind() string     { return "counter_offer" }
func (RejectAll) Kind() string        { return "reject_all" }

func (a AcceptTenant) String() string     { return fmt.Sprintf("accept_tenant(%.2f)", a.Bid) }
func (a AcceptCompetitor) String() string { return fmt.Sprintf("accept_competitor(%.2f)", a.Bid) }
func (a RequestBestFinal) String() string { return fmt.Sprintf("request_best_final(+%.2f)", a.MinIncrease) }
func (a CounterOffer) String() string     { return fmt.Sprintf("counter_offer(%.2f)", a.Price) }
func (RejectAll) String() string          { return "reject_all" }

// IsTerminal reports whether the action settles the negotiation.
func IsTerminal(a Action) bool {
	switch a.(type) {
	case AcceptTenant, AcceptCompetitor, RejectAll:
		return true
	default:
		return false
	}
}
