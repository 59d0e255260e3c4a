package commands

import (
	"context"
	"fmt"

	"github.com/dako7777777/rental-bidding-tool/internal/application/common"
	"github.com/dako7777777/rental-bidding-tool/internal/application/recommendation"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/negotiation"
	"github.com/dako7777777/rental-bidding-tool/pkg/utils"
)

// Type aliases for convenience
type AdvanceToFinalRoundCommand = recommendation.AdvanceToFinalRoundCommand

// AdvanceToFinalRoundHandler - Handles final-round recommendation commands
type AdvanceToFinalRoundHandler struct {
	generator *recommendation.Generator
}

// NewAdvanceToFinalRoundHandler creates a new advance to final round handler
func NewAdvanceToFinalRoundHandler(generator *recommendation.Generator) *AdvanceToFinalRoundHandler {
	return &AdvanceToFinalRoundHandler{generator: generator}
}

// Handle rebuilds the negotiation at round 3 from the landlord's feedback and
// searches again from there
func (h *AdvanceToFinalRoundHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*AdvanceToFinalRoundCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	if err := cmd.Scenario.Validate(); err != nil {
		return nil, err
	}

	tuning := h.generator.Tuning()
	prefs := cmd.Scenario.Preferences
	root, err := negotiation.NewFinalRoundState(cmd.Scenario,
		negotiation.DefaultModifiers(prefs.RiskTolerance, tuning.PropertyValueWeight, tuning.OverpaymentWeight),
		negotiation.FinalRoundInput{
			Feedback:     cmd.Feedback,
			CounterPrice: cmd.CounterPrice,
			PriorBid:     cmd.PriorBid,
		})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", recommendation.ErrInvalidFeedback, err)
	}

	runID := utils.GenerateRunID("final-round", cmd.Scenario.MarketName)
	ctx = withRunLogger(ctx, runID, cmd.Scenario)
	common.LoggerFromContext(ctx).Debug().
		Str("feedback", string(cmd.Feedback)).
		Float64("prior_bid", cmd.PriorBid).
		Msg("advancing to final round")

	set, err := h.generator.Generate(ctx, root)
	if err != nil {
		return nil, err
	}
	set.RunID = runID
	return set, nil
}
