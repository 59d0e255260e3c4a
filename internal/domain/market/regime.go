package market

// Regime is the qualitative classification of a rental market.
type Regime string

const (
	RegimeVeryCool Regime = "very_cool"
	RegimeCooling  Regime = "cooling"
	RegimeBalanced Regime = "balanced"
	RegimeVeryHot  Regime = "very_hot"
)

func (r Regime) String() string {
	return string(r)
}

// IsCool reports whether landlords in this regime compete for tenants
// (very cool or cooling).
func (r Regime) IsCool() bool {
	return r == RegimeVeryCool || r == RegimeCooling
}

// Label returns the display name used in reports.
func (r Regime) Label() string {
	switch r {
	case RegimeVeryCool:
		return "Very cool"
	case RegimeCooling:
		return "Cooling"
	case RegimeVeryHot:
		return "Very hot"
	default:
		return "Balanced"
	}
}

// Classify maps market parameters to a regime.
//
// Rules, evaluated in order:
//   - very cool: median < 0.95 and sigma < 0.08
//   - cooling:   median < 1.0
//   - very hot:  median > 1.05 and sigma > 0.10
//   - balanced:  everything else
func Classify(p Parameters) Regime {
	switch {
	case p.Median < 0.95 && p.Sigma < 0.08:
		return RegimeVeryCool
	case p.Median < 1.0:
		return RegimeCooling
	case p.Median > 1.05 && p.Sigma > 0.10:
		return RegimeVeryHot
	default:
		return RegimeBalanced
	}
}
