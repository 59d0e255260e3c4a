package recommendation

import (
	"fmt"

	"github.com/dako7777777/rental-bidding-tool/internal/domain/landlord"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/market"
)

// rationaleTemplate formats the bid as a percentage of the listing price and,
// when withWin is set, the win probability as a percentage.
type rationaleTemplate struct {
	format  string
	withWin bool
}

var rationales = map[Strategy]map[market.Regime]rationaleTemplate{
	StrategyConservative: {
		market.RegimeVeryCool: {format: "Bid at %.1f%% of listing. Strong negotiating position in a tenant's market."},
		market.RegimeCooling:  {format: "Bid at %.1f%% of listing to use the soft market while still showing interest."},
		market.RegimeBalanced: {format: "Modest bid at %.1f%% of listing, trading some win probability for value."},
		market.RegimeVeryHot:  {format: "Careful bid at %.1f%% of listing. Be ready to move up in a hot market."},
	},
	StrategyBalanced: {
		market.RegimeVeryCool: {format: "Measured bid at %.1f%% of listing with a %.0f%% chance to win.", withWin: true},
		market.RegimeCooling:  {format: "Market-aligned bid at %.1f%% of listing, balancing value against success rate."},
		market.RegimeBalanced: {format: "Fair bid at %.1f%% of listing, in line with what the market expects."},
		market.RegimeVeryHot:  {format: "Competitive bid at %.1f%% of listing to stay in contention."},
	},
	StrategyAggressive: {
		market.RegimeVeryCool: {format: "Strong bid at %.1f%% of listing to lock in the unit despite the tenant's advantage."},
		market.RegimeCooling:  {format: "Above-market bid at %.1f%% of listing for a %.0f%% chance to win.", withWin: true},
		market.RegimeBalanced: {format: "Premium bid at %.1f%% of listing to maximise the chance of success."},
		market.RegimeVeryHot:  {format: "Top competitive bid at %.1f%% of listing in a landlord's market."},
	},
}

// Rationale explains a recommendation from its strategy, the market regime,
// the bid as a fraction of the listing price, its win probability and the
// landlord response it is expected to draw.
func Rationale(s Strategy, regime market.Regime, bidRatio, winProbability float64, response string) string {
	tmpl, ok := rationales[s][regime]
	if !ok {
		tmpl = rationales[s][market.RegimeBalanced]
	}

	text := fmt.Sprintf(tmpl.format, bidRatio*100)
	if tmpl.withWin {
		text = fmt.Sprintf(tmpl.format, bidRatio*100, winProbability*100)
	}

	switch response {
	case landlord.AcceptTenant{}.Kind():
		return text + " Landlord likely to accept immediately."
	case landlord.CounterOffer{}.Kind():
		return text + " Expect negotiation rounds."
	case landlord.RequestBestFinal{}.Kind():
		return text + " May trigger bidding competition."
	default:
		return text
	}
}
