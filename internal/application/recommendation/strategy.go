package recommendation

import (
	"fmt"
	"math"
	"strings"

	"github.com/dako7777777/rental-bidding-tool/internal/domain/market"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/negotiation"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/search"
)

// Strategy names one of the three biased searches.
type Strategy string

const (
	StrategyConservative Strategy = "conservative"
	StrategyBalanced     Strategy = "balanced"
	StrategyAggressive   Strategy = "aggressive"
)

// Strategies lists the strategies from least to most aggressive. Recommended
// bids follow the same order.
var Strategies = []Strategy{StrategyConservative, StrategyBalanced, StrategyAggressive}

func (s Strategy) String() string {
	return string(s)
}

// Title returns the display name, e.g. "Conservative".
func (s Strategy) Title() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// ParseStrategy converts a name into a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	for _, s := range Strategies {
		if strings.EqualFold(name, string(s)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown strategy %q", name)
}

const (
	conservativeNegotiationCost = 0.10
	aggressiveNegotiationCost   = 0.02
)

// Modifiers derives the strategy's search bias from the tenant's risk
// tolerance and the tuned payoff weights. Conservative searches are less risk
// seeking, more sensitive to overpaying and to extra rounds; aggressive
// searches are the reverse; balanced searches are unbiased.
func (s Strategy) Modifiers(riskTolerance float64, t search.Tuning) negotiation.Modifiers {
	switch s {
	case StrategyConservative:
		return negotiation.Modifiers{
			RiskTolerance:       math.Max(1, riskTolerance*0.7),
			NegotiationCost:     conservativeNegotiationCost,
			PropertyValueWeight: t.PropertyValueWeight * 0.9,
			OverpaymentWeight:   t.OverpaymentWeight * 1.3,
		}
	case StrategyAggressive:
		return negotiation.Modifiers{
			RiskTolerance:       math.Min(5, riskTolerance*1.3),
			NegotiationCost:     aggressiveNegotiationCost,
			PropertyValueWeight: t.PropertyValueWeight * 1.2,
			OverpaymentWeight:   t.OverpaymentWeight * 0.7,
		}
	default:
		return negotiation.DefaultModifiers(riskTolerance, t.PropertyValueWeight, t.OverpaymentWeight)
	}
}

// FallbackRatio is the fraction of the listing price bid when a search
// returns nothing.
func (s Strategy) FallbackRatio(regime market.Regime) float64 {
	if regime.IsCool() {
		switch s {
		case StrategyConservative:
			return 0.88
		case StrategyAggressive:
			return 0.98
		default:
			return 0.93
		}
	}
	switch s {
	case StrategyConservative:
		return 0.95
	case StrategyAggressive:
		return 1.05
	default:
		return 1.00
	}
}
