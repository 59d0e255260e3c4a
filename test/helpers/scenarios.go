package helpers

import (
	"github.com/dako7777777/rental-bidding-tool/internal/domain/market"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/negotiation"
)

// DowntownParameters returns the cooling downtown market parameters.
func DowntownParameters() market.Parameters {
	preset, err := market.LookupPreset("downtown")
	if err != nil {
		panic(err)
	}
	return preset.Parameters
}

// CoolingScenario is the reference scenario: a $2200 listing a week on a
// cooling market, two competitors, moderate landlord, $2500 budget.
func CoolingScenario() negotiation.Scenario {
	return negotiation.Scenario{
		MarketName: "downtown",
		Preferences: negotiation.Preferences{
			MaxBudget:     2500,
			PropertyValue: 4,
			RiskTolerance: 3,
		},
		Situation: negotiation.RentalSituation{
			ListingPrice:     2200,
			NeighborhoodAvg:  2156,
			DaysOnMarket:     7,
			PriceSensitivity: 2,
			CompetitiveLevel: 2,
		},
		Market: DowntownParameters(),
	}
}

// BudgetBelowListingScenario prices the unit at $2600 against a $2500 budget.
func BudgetBelowListingScenario() negotiation.Scenario {
	s := CoolingScenario()
	s.Situation.ListingPrice = 2600
	s.Situation.NeighborhoodAvg = 2550
	return s
}

// HotScenario is a fresh listing in a very hot market with three competitors.
func HotScenario() negotiation.Scenario {
	s := CoolingScenario()
	s.MarketName = ""
	s.Situation.DaysOnMarket = 2
	s.Situation.CompetitiveLevel = 3
	s.Market = market.Parameters{
		DistributionType: market.DistributionLogNormal,
		Median:           1.08,
		Sigma:            0.12,
		Skew:             0.2,
	}
	return s
}
