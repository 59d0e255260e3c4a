package market

import (
	"fmt"

	"github.com/dako7777777/rental-bidding-tool/internal/domain/shared"
)

// DistributionType names the family used for a single bidder's bid ratio.
type DistributionType string

const (
	DistributionLogNormal    DistributionType = "log_normal"
	DistributionSkewedNormal DistributionType = "skewed_normal"
)

// Declared parameter ranges.
const (
	MinMedian = 0.5
	MaxMedian = 1.5
	MinSigma  = 0.01
	MaxSigma  = 0.5
	MinSkew   = -1.0
	MaxSkew   = 1.0
)

// Parameters describe the winning-bid ratio (winning bid / listing price) of a
// market: its median, spread and skew.
type Parameters struct {
	DistributionType DistributionType `json:"distribution_type" yaml:"distribution_type" mapstructure:"distribution_type"`
	Median           float64          `json:"median" yaml:"median" mapstructure:"median"`
	Sigma            float64          `json:"sigma" yaml:"sigma" mapstructure:"sigma"`
	Skew             float64          `json:"skew" yaml:"skew" mapstructure:"skew"`
}

// Validate checks the declared ranges. Failures wrap both ErrInvalidParameters
// and shared.ErrInvalidConfiguration.
func (p Parameters) Validate() error {
	switch p.DistributionType {
	case DistributionLogNormal, DistributionSkewedNormal:
	default:
		return fmt.Errorf("%w: %w: unsupported distribution type %q", shared.ErrInvalidConfiguration, ErrInvalidParameters, p.DistributionType)
	}
	if p.Median < MinMedian || p.Median > MaxMedian {
		return fmt.Errorf("%w: %w: median %.4f outside [%.2f, %.2f]", shared.ErrInvalidConfiguration, ErrInvalidParameters, p.Median, MinMedian, MaxMedian)
	}
	if p.Sigma < MinSigma || p.Sigma > MaxSigma {
		return fmt.Errorf("%w: %w: sigma %.4f outside [%.2f, %.2f]", shared.ErrInvalidConfiguration, ErrInvalidParameters, p.Sigma, MinSigma, MaxSigma)
	}
	if p.Skew < MinSkew || p.Skew > MaxSkew {
		return fmt.Errorf("%w: %w: skew %.4f outside [%.0f, %.0f]", shared.ErrInvalidConfiguration, ErrInvalidParameters, p.Skew, MinSkew, MaxSkew)
	}
	return nil
}

// Regime is shorthand for Classify(p).
func (p Parameters) Regime() Regime {
	return Classify(p)
}
