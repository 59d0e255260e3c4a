package config

import (
	"github.com/spf13/viper"

	"github.com/dako7777777/rental-bidding-tool/internal/domain/search"
)

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	tuning := search.DefaultTuning()

	// Search defaults
	if cfg.Search.Depth == 0 {
		cfg.Search.Depth = tuning.Depth
	}
	if cfg.Search.CompetitorSamples == 0 {
		cfg.Search.CompetitorSamples = tuning.CompetitorSamples
	}
	if cfg.Search.TenantSamples == 0 {
		cfg.Search.TenantSamples = tuning.TenantSamples
	}
	if cfg.Search.FinalRoundSamples == 0 {
		cfg.Search.FinalRoundSamples = tuning.FinalRoundSamples
	}
	if cfg.Search.ProbabilityThreshold == 0 {
		cfg.Search.ProbabilityThreshold = tuning.ProbabilityThreshold
	}
	if cfg.Search.BudgetFlexibility == 0 {
		cfg.Search.BudgetFlexibility = tuning.BudgetFlexibility
	}
	if cfg.Search.PropertyValueWeight == 0 {
		cfg.Search.PropertyValueWeight = tuning.PropertyValueWeight
	}
	if cfg.Search.OverpaymentWeight == 0 {
		cfg.Search.OverpaymentWeight = tuning.OverpaymentWeight
	}
	if cfg.Search.MaxNodes == 0 {
		cfg.Search.MaxNodes = tuning.MaxNodes
	}

	// Strategy defaults
	if cfg.Strategy.Tolerance == 0 {
		cfg.Strategy.Tolerance = 20
	}
	if cfg.Strategy.Increment == 0 {
		cfg.Strategy.Increment = 50
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "warn"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}
}

// registerDefaults makes every key known to viper so environment variables
// override it even when the config file does not mention it
func registerDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("search.depth", d.Search.Depth)
	v.SetDefault("search.competitor_samples", d.Search.CompetitorSamples)
	v.SetDefault("search.tenant_samples", d.Search.TenantSamples)
	v.SetDefault("search.final_round_samples", d.Search.FinalRoundSamples)
	v.SetDefault("search.probability_threshold", d.Search.ProbabilityThreshold)
	v.SetDefault("search.budget_flexibility", d.Search.BudgetFlexibility)
	v.SetDefault("search.property_value_weight", d.Search.PropertyValueWeight)
	v.SetDefault("search.overpayment_weight", d.Search.OverpaymentWeight)
	v.SetDefault("search.max_nodes", d.Search.MaxNodes)
	v.SetDefault("search.timeout", d.Search.Timeout)

	v.SetDefault("strategy.tolerance", d.Strategy.Tolerance)
	v.SetDefault("strategy.increment", d.Strategy.Increment)
	v.SetDefault("strategy.parallel", d.Strategy.Parallel)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output", d.Logging.Output)
	v.SetDefault("logging.file_path", d.Logging.FilePath)
	v.SetDefault("logging.include_caller", d.Logging.IncludeCaller)

	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.dump", d.Metrics.Dump)
}
