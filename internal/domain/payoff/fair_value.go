package payoff

import "github.com/dako7777777/rental-bidding-tool/internal/domain/market"

type stalenessStep struct {
	maxDays  int
	discount float64
}

// stalenessTables discount fair value the longer a unit sits unrented. The
// last entry applies beyond every threshold.
var stalenessTables = map[market.Regime][]stalenessStep{
	market.RegimeVeryCool: {{7, 0.98}, {14, 0.95}, {30, 0.90}, {-1, 0.85}},
	market.RegimeCooling:  {{7, 0.99}, {14, 0.97}, {30, 0.93}, {-1, 0.88}},
	market.RegimeBalanced: {{7, 1.00}, {14, 0.98}, {30, 0.95}, {-1, 0.92}},
	market.RegimeVeryHot:  {{7, 1.00}, {14, 0.99}, {30, 0.97}, {-1, 0.95}},
}

// StalenessDiscount returns the multiplier for a listing of the given age.
func StalenessDiscount(daysOnMarket int, regime market.Regime) float64 {
	table, ok := stalenessTables[regime]
	if !ok {
		table = stalenessTables[market.RegimeBalanced]
	}
	for _, step := range table {
		if step.maxDays < 0 || daysOnMarket <= step.maxDays {
			return step.discount
		}
	}
	return table[len(table)-1].discount
}

// FairMarketValue blends the market-implied rent (median ratio x listing) with
// the neighbourhood average and discounts it for staleness. Cool markets trust
// comparables (0.4 market / 0.6 neighbourhood); others trust market data
// (0.7 / 0.3).
func FairMarketValue(listing, neighborhoodAvg float64, daysOnMarket int, params market.Parameters) float64 {
	regime := market.Classify(params)
	implied := params.Median * listing

	var base float64
	if regime.IsCool() {
		base = 0.4*implied + 0.6*neighborhoodAvg
	} else {
		base = 0.7*implied + 0.3*neighborhoodAvg
	}
	return base * StalenessDiscount(daysOnMarket, regime)
}
