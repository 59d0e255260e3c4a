package negotiation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/dako7777777/rental-bidding-tool/internal/domain/market"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/shared"
)

// MinBudgetRatio is the smallest max budget accepted, as a fraction of the listing price.
const MinBudgetRatio = 0.85

// Preferences are the tenant's stated limits and priorities.
type Preferences struct {
	MaxBudget     float64 `json:"max_budget" yaml:"max_budget" validate:"gt=0"`
	PropertyValue int     `json:"property_value" yaml:"property_value" validate:"min=1,max=5"`
	RiskTolerance float64 `json:"risk_tolerance" yaml:"risk_tolerance" validate:"gte=1,lte=5"`
}

// RentalSituation describes the listing and the competition around it.
type RentalSituation struct {
	ListingPrice     float64 `json:"listing_price" yaml:"listing_price" validate:"gt=0"`
	NeighborhoodAvg  float64 `json:"neighborhood_avg" yaml:"neighborhood_avg" validate:"gt=0"`
	DaysOnMarket     int     `json:"days_on_market" yaml:"days_on_market" validate:"gte=0,lte=365"`
	PriceSensitivity int     `json:"price_sensitivity" yaml:"price_sensitivity" validate:"min=1,max=3"`
	CompetitiveLevel int     `json:"competitive_level" yaml:"competitive_level" validate:"min=1,max=3"`
}

// Scenario is the complete, immutable input of one recommendation run.
type Scenario struct {
	MarketName  string            `json:"market,omitempty" yaml:"market,omitempty"`
	Preferences Preferences       `json:"preferences" yaml:"preferences"`
	Situation   RentalSituation   `json:"situation" yaml:"situation"`
	Market      market.Parameters `json:"market_parameters" yaml:"market_parameters"`
}

var validate = validator.New()

// Validate checks every field range. All failures are reported together and
// match shared.ErrInvalidConfiguration.
func (s Scenario) Validate() error {
	var errs shared.ValidationErrors

	for _, target := range []interface{}{s.Preferences, s.Situation} {
		if err := validate.Struct(target); err != nil {
			var fieldErrs validator.ValidationErrors
			if !errors.As(err, &fieldErrs) {
				return fmt.Errorf("%w: %v", shared.ErrInvalidConfiguration, err)
			}
			for _, fe := range fieldErrs {
				errs = append(errs, shared.NewValidationError(fe.Namespace(),
					fmt.Sprintf("failed %s=%s (value: %v)", fe.Tag(), fe.Param(), fe.Value())))
			}
		}
	}

	if s.Situation.ListingPrice > 0 && s.Preferences.MaxBudget > 0 &&
		s.Preferences.MaxBudget < MinBudgetRatio*s.Situation.ListingPrice {
		errs = append(errs, shared.NewValidationError("Preferences.MaxBudget",
			fmt.Sprintf("must be at least %.0f%% of the listing price (%.2f)", MinBudgetRatio*100, MinBudgetRatio*s.Situation.ListingPrice)))
	}

	if err := s.Market.Validate(); err != nil {
		errs = append(errs, shared.NewValidationError("Market", err.Error()))
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
