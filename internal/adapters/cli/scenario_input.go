package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dako7777777/rental-bidding-tool/internal/domain/market"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/negotiation"
)

// scenarioInput collects the scenario flags shared by recommend and final-round
type scenarioInput struct {
	file    string
	example bool

	marketName string
	median     float64
	sigma      float64
	skew       float64

	listing          float64
	neighborhoodAvg  float64
	days             int
	priceSensitivity int
	competitiveLevel int

	budget        float64
	propertyValue int
	risk          float64
}

func (in *scenarioInput) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&in.file, "file", "f", "", "YAML scenario file")
	f.BoolVar(&in.example, "example", false, "Use the built-in example scenario")

	f.StringVar(&in.marketName, "market", "downtown", "Market preset (see 'rentbid markets')")
	f.Float64Var(&in.median, "median", 0, "Custom market median bid ratio (overrides the preset)")
	f.Float64Var(&in.sigma, "sigma", 0, "Custom market sigma (with --median)")
	f.Float64Var(&in.skew, "skew", 0, "Custom market skew (with --median)")

	f.Float64Var(&in.listing, "listing", 0, "Listing price")
	f.Float64Var(&in.neighborhoodAvg, "neighborhood-avg", 0, "Average rent of comparable units (default: listing price)")
	f.IntVar(&in.days, "days", 0, "Days the unit has been on the market")
	f.IntVar(&in.priceSensitivity, "price-sensitivity", 2, "Landlord price sensitivity: 1 firm, 2 moderate, 3 flexible")
	f.IntVar(&in.competitiveLevel, "competitive-level", 2, "Competing applicants: 1 low, 2 medium, 3 high")

	f.Float64Var(&in.budget, "budget", 0, "Maximum monthly budget")
	f.IntVar(&in.propertyValue, "property-value", 3, "How much you want this unit, 1-5")
	f.Float64Var(&in.risk, "risk", 3, "Risk tolerance, 1 (cautious) to 5 (bold)")
}

// scenario resolves the input into a scenario. Preset market parameters are
// filled in by name unless custom parameters are given.
func (in *scenarioInput) scenario() (negotiation.Scenario, error) {
	var s negotiation.Scenario
	switch {
	case in.example:
		s = exampleScenario()
	case in.file != "":
		loaded, err := loadScenarioFile(in.file)
		if err != nil {
			return negotiation.Scenario{}, err
		}
		s = loaded
	default:
		if in.listing <= 0 || in.budget <= 0 {
			return negotiation.Scenario{}, fmt.Errorf("--listing and --budget are required (or use --file / --example)")
		}
		avg := in.neighborhoodAvg
		if avg == 0 {
			avg = in.listing
		}
		s = negotiation.Scenario{
			MarketName: in.marketName,
			Preferences: negotiation.Preferences{
				MaxBudget:     in.budget,
				PropertyValue: in.propertyValue,
				RiskTolerance: in.risk,
			},
			Situation: negotiation.RentalSituation{
				ListingPrice:     in.listing,
				NeighborhoodAvg:  avg,
				DaysOnMarket:     in.days,
				PriceSensitivity: in.priceSensitivity,
				CompetitiveLevel: in.competitiveLevel,
			},
		}
	}

	if in.median != 0 {
		s.MarketName = "custom"
		s.Market = market.Parameters{
			DistributionType: market.DistributionLogNormal,
			Median:           in.median,
			Sigma:            in.sigma,
			Skew:             in.skew,
		}
	}

	if s.Market == (market.Parameters{}) {
		preset, err := market.LookupPreset(s.MarketName)
		if err != nil {
			return negotiation.Scenario{}, err
		}
		s.MarketName = preset.Name
		s.Market = preset.Parameters
	}
	if s.Market.DistributionType == "" {
		s.Market.DistributionType = market.DistributionLogNormal
	}
	return s, nil
}

// loadScenarioFile reads a YAML scenario
func loadScenarioFile(path string) (negotiation.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return negotiation.Scenario{}, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var s negotiation.Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return negotiation.Scenario{}, fmt.Errorf("failed to parse scenario file %s: %w", path, err)
	}
	return s, nil
}

// exampleScenario is a week-old $2200 downtown listing with two competing
// applicants and a $2500 budget
func exampleScenario() negotiation.Scenario {
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
	}
}
