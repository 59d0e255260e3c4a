package search

import (
	"fmt"
	"time"

	"github.com/dako7777777/rental-bidding-tool/internal/domain/shared"
)

// Tuning carries every constant the search depends on. It is passed to each
// engine explicitly so callers and tests can vary it without shared state.
type Tuning struct {
	// Depth is the ply budget of a strategy search.
	Depth int
	// CompetitorSamples is the number of points in the competitor distribution.
	CompetitorSamples int
	// TenantSamples is the number of opening-round candidate bids.
	TenantSamples int
	// FinalRoundSamples is the number of candidate bids after a best-and-final request.
	FinalRoundSamples int
	// ProbabilityThreshold skips competitor outcomes less likely than this.
	ProbabilityThreshold float64
	// BudgetFlexibility stretches the max budget (0.10 = 10%).
	BudgetFlexibility float64
	// PropertyValueWeight and OverpaymentWeight seed the unbiased strategy modifiers.
	PropertyValueWeight float64
	OverpaymentWeight   float64
	// MaxNodes stops expansion once this many nodes were visited; 0 disables it.
	MaxNodes int
	// Timeout stops expansion after this wall-clock duration; 0 disables it.
	Timeout time.Duration
}

// DefaultTuning returns the reference constants.
func DefaultTuning() Tuning {
	return Tuning{
		Depth:                4,
		CompetitorSamples:    20,
		TenantSamples:        15,
		FinalRoundSamples:    10,
		ProbabilityThreshold: 0.01,
		BudgetFlexibility:    0.10,
		PropertyValueWeight:  1.0,
		OverpaymentWeight:    0.6,
		MaxNodes:             250000,
	}
}

// Validate rejects tunings the engine cannot run with.
func (t Tuning) Validate() error {
	switch {
	case t.Depth < 1:
		return fmt.Errorf("%w: search depth must be at least 1", shared.ErrInvalidConfiguration)
	case t.CompetitorSamples < 2:
		return fmt.Errorf("%w: competitor samples must be at least 2", shared.ErrInvalidConfiguration)
	case t.TenantSamples < 1 || t.FinalRoundSamples < 1:
		return fmt.Errorf("%w: candidate sample counts must be positive", shared.ErrInvalidConfiguration)
	case t.ProbabilityThreshold < 0 || t.ProbabilityThreshold >= 1:
		return fmt.Errorf("%w: probability threshold must be in [0, 1)", shared.ErrInvalidConfiguration)
	case t.BudgetFlexibility < 0:
		return fmt.Errorf("%w: budget flexibility must not be negative", shared.ErrInvalidConfiguration)
	case t.MaxNodes < 0 || t.Timeout < 0:
		return fmt.Errorf("%w: search limits must not be negative", shared.ErrInvalidConfiguration)
	}
	return nil
}
