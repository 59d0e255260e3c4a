package landlord

import (
	"math"

	"github.com/dako7777777/rental-bidding-tool/internal/domain/market"
)

// Price sensitivity levels.
const (
	SensitivityFirm     = 1
	SensitivityModerate = 2
	SensitivityFlexible = 3
)

const (
	// MinAcceptanceThreshold is the lowest bid/asking ratio any landlord accepts outright.
	MinAcceptanceThreshold = 0.90
	// RejectionGap separates the acceptance and rejection thresholds.
	RejectionGap = 0.10
)

var baseThresholds = map[market.Regime]float64{
	market.RegimeVeryHot:  1.05,
	market.RegimeBalanced: 1.00,
	market.RegimeCooling:  0.98,
	market.RegimeVeryCool: 0.95,
}

// Profile captures how a landlord is likely to respond to bids. It is a pure
// function of listing age, regime and price sensitivity and is recomputed
// wherever needed.
type Profile struct {
	Desperation            float64
	AcceptanceThreshold    float64
	RejectionThreshold     float64
	NegotiationWillingness float64
	PriceSensitivity       int
}

// NewProfile derives a landlord profile.
//
// Business Rules:
//   - desperation steps up at 3, 7, 14 and 30 days on market (0.1 .. 0.95)
//   - acceptance = regime base x (1 - 0.1 x desperation) x (1 - 0.05 x (sensitivity - 2)), floored at 0.90
//   - rejection = acceptance - 0.10
//   - negotiation willingness = (0.7 very hot, else 0.3) x (1 - 0.5 x desperation)
func NewProfile(daysOnMarket int, regime market.Regime, priceSensitivity int) Profile {
	desperation := Desperation(daysOnMarket)

	base, ok := baseThresholds[regime]
	if !ok {
		base = baseThresholds[market.RegimeBalanced]
	}
	acceptance := base * (1 - 0.1*desperation) * (1 - 0.05*float64(priceSensitivity-SensitivityModerate))
	acceptance = math.Max(MinAcceptanceThreshold, acceptance)

	willingness := 0.3
	if regime == market.RegimeVeryHot {
		willingness = 0.7
	}

	return Profile{
		Desperation:            desperation,
		AcceptanceThreshold:    acceptance,
		RejectionThreshold:     acceptance - RejectionGap,
		NegotiationWillingness: willingness * (1 - 0.5*desperation),
		PriceSensitivity:       priceSensitivity,
	}
}

// Desperation is a non-decreasing step function of days on market.
func Desperation(daysOnMarket int) float64 {
	switch {
	case daysOnMarket < 3:
		return 0.1
	case daysOnMarket < 7:
		return 0.3
	case daysOnMarket < 14:
		return 0.6
	case daysOnMarket < 30:
		return 0.8
	default:
		return 0.95
	}
}

// IsFirm reports whether the landlord resists accepting anything near the threshold.
func (p Profile) IsFirm() bool {
	return p.PriceSensitivity == SensitivityFirm
}
