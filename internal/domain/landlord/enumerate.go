package landlord

import (
	"errors"
	"fmt"
	"math"

	"github.com/dako7777777/rental-bidding-tool/internal/domain/negotiation"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/shared"
)

// ErrThresholdGap is returned by EnumerateStrict when a tenant bid exists but
// no threshold rule produces any action.
var ErrThresholdGap = errors.New("landlord threshold gap")

const (
	// closeBidSpread is the relative gap under which bids count as close.
	closeBidSpread = 0.05
	// counterFloorRatio is the lowest highest-bid/asking ratio the landlord counters.
	counterFloorRatio = 0.90
	// desperateRejectCutoff is the desperation above which rejecting everyone is off the table.
	desperateRejectCutoff = 0.7
	// firmAcceptMargin scales the acceptance threshold for firm landlords.
	firmAcceptMargin = 1.02
)

// ProfileFor derives the landlord profile at a state.
func ProfileFor(s negotiation.State) Profile {
	return NewProfile(s.DaysOnMarket(), s.Regime(), s.Situation.PriceSensitivity)
}

// Enumerate returns the landlord's legal actions at s. It is empty exactly
// when the tenant has not bid. A threshold gap is closed with GapFallback.
func Enumerate(s negotiation.State) []Action {
	actions, err := EnumerateStrict(s)
	if errors.Is(err, ErrThresholdGap) {
		return []Action{GapFallback(s)}
	}
	return actions
}

// EnumerateStrict is Enumerate without the gap fallback.
//
// Business Rules:
//   - accept the higher side (ties favour the tenant) once it clears acceptance x asking
//   - request best-and-final when both bids are within 5% and final bids are not in yet
//   - counter at asking when the highest bid sits between 90% and 100% of asking
//   - reject everyone when the highest bid is below rejection x asking
//   - desperate landlords never reject; firm landlords skip acceptances under acceptance x 1.02
//   - if filtering removes everything, the unfiltered set is returned
func EnumerateStrict(s negotiation.State) ([]Action, error) {
	tenant, ok := s.TenantBid.Get()
	if !ok {
		return nil, nil
	}

	asking := s.ListingPrice()
	profile := ProfileFor(s)
	comp, hasComp := s.HighestCompetitorBid.Get()

	highest := tenant
	if hasComp {
		highest = math.Max(tenant, comp)
	}

	var actions []Action
	if highest >= asking*profile.AcceptanceThreshold {
		if !hasComp || tenant >= comp {
			actions = append(actions, AcceptTenant{Bid: tenant})
		} else {
			actions = append(actions, AcceptCompetitor{Bid: comp})
		}
	}

	if hasComp && !s.FinalBidsSubmitted && highest > 0 {
		if math.Abs(tenant-comp)/highest < closeBidSpread {
			actions = append(actions, RequestBestFinal{MinIncrease: asking * negotiation.MinIncreaseRatio})
		}
	}

	if highest < asking && highest > asking*counterFloorRatio {
		actions = append(actions, CounterOffer{Price: asking})
	}

	if highest < asking*profile.RejectionThreshold {
		actions = append(actions, RejectAll{})
	}

	if len(actions) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrThresholdGap, shared.NewInvariantViolationError("landlord-actions",
			fmt.Sprintf("tenant bid %.2f, highest %.2f, asking %.2f matches no threshold rule", tenant, highest, asking)))
	}
	return filter(actions, profile, asking), nil
}

// filter applies the landlord's temperament, never returning an empty set
// when there was something to filter.
func filter(actions []Action, profile Profile, asking float64) []Action {
	kept := make([]Action, 0, len(actions))
	for _, a := range actions {
		switch act := a.(type) {
		case RejectAll:
			if profile.Desperation > desperateRejectCutoff {
				continue
			}
		case AcceptTenant:
			if profile.IsFirm() && act.Bid/asking < profile.AcceptanceThreshold*firmAcceptMargin {
				continue
			}
		case AcceptCompetitor:
			if profile.IsFirm() && act.Bid/asking < profile.AcceptanceThreshold*firmAcceptMargin {
				continue
			}
		}
		kept = append(kept, a)
	}
	if len(kept) == 0 {
		return actions
	}
	return kept
}

// GapFallback is the landlord's move when no threshold rule applies: accept
// the higher side if it is at or above asking, otherwise counter at asking.
func GapFallback(s negotiation.State) Action {
	asking := s.ListingPrice()
	tenant := s.TenantBid.OrElse(0)
	comp, hasComp := s.HighestCompetitorBid.Get()

	if hasComp && comp > tenant {
		if comp >= asking {
			return AcceptCompetitor{Bid: comp}
		}
		return CounterOffer{Price: asking}
	}
	if tenant >= asking {
		return AcceptTenant{Bid: tenant}
	}
	return CounterOffer{Price: asking}
}
