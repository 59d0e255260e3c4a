package config

import (
	"time"

	"github.com/dako7777777/rental-bidding-tool/internal/domain/search"
)

// SearchConfig holds the expectiminimax search constants
type SearchConfig struct {
	// Tree depth in tenant decisions
	Depth int `mapstructure:"depth" yaml:"depth" validate:"min=1,max=8"`

	// Points sampled from the competitor bid distribution
	CompetitorSamples int `mapstructure:"competitor_samples" yaml:"competitor_samples" validate:"min=2,max=200"`

	// Candidate bids per opening-round tenant node
	TenantSamples int `mapstructure:"tenant_samples" yaml:"tenant_samples" validate:"min=1,max=100"`

	// Candidate bids per final-round tenant node
	FinalRoundSamples int `mapstructure:"final_round_samples" yaml:"final_round_samples" validate:"min=1,max=100"`

	// Competitor outcomes below this probability are skipped
	ProbabilityThreshold float64 `mapstructure:"probability_threshold" yaml:"probability_threshold" validate:"gte=0,lt=1"`

	// Fraction the tenant may exceed the stated budget by
	BudgetFlexibility float64 `mapstructure:"budget_flexibility" yaml:"budget_flexibility" validate:"gte=0,lte=1"`

	// Payoff weights
	PropertyValueWeight float64 `mapstructure:"property_value_weight" yaml:"property_value_weight" validate:"gt=0"`
	OverpaymentWeight   float64 `mapstructure:"overpayment_weight" yaml:"overpayment_weight" validate:"gt=0"`

	// Node budget per strategy search
	MaxNodes int `mapstructure:"max_nodes" yaml:"max_nodes" validate:"min=0"`

	// Wall-clock budget per strategy search (0 = none)
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout" validate:"min=0"`
}

// Tuning converts the section into search constants
func (c SearchConfig) Tuning() search.Tuning {
	return search.Tuning{
		Depth:                c.Depth,
		CompetitorSamples:    c.CompetitorSamples,
		TenantSamples:        c.TenantSamples,
		FinalRoundSamples:    c.FinalRoundSamples,
		ProbabilityThreshold: c.ProbabilityThreshold,
		BudgetFlexibility:    c.BudgetFlexibility,
		PropertyValueWeight:  c.PropertyValueWeight,
		OverpaymentWeight:    c.OverpaymentWeight,
		MaxNodes:             c.MaxNodes,
		Timeout:              c.Timeout,
	}
}

// StrategyConfig holds post-processing settings for the three strategies
type StrategyConfig struct {
	// Smallest dollar gap kept between neighbouring strategies
	Tolerance float64 `mapstructure:"tolerance" yaml:"tolerance" validate:"gt=0"`

	// Dollar step used to push strategies apart
	Increment float64 `mapstructure:"increment" yaml:"increment" validate:"gt=0,gtefield=Tolerance"`

	// Run the three strategy searches concurrently
	Parallel bool `mapstructure:"parallel" yaml:"parallel"`
}
