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
type GenerateRecommendationsCommand = recommendation.GenerateRecommendationsCommand
type RecommendationSet = recommendation.RecommendationSet

// GenerateRecommendationsHandler - Handles opening-round recommendation commands
type GenerateRecommendationsHandler struct {
	generator *recommendation.Generator
}

// NewGenerateRecommendationsHandler creates a new generate recommendations handler
func NewGenerateRecommendationsHandler(generator *recommendation.Generator) *GenerateRecommendationsHandler {
	return &GenerateRecommendationsHandler{generator: generator}
}

// Handle validates the scenario and runs the three strategy searches
func (h *GenerateRecommendationsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*GenerateRecommendationsCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	if err := cmd.Scenario.Validate(); err != nil {
		return nil, err
	}

	runID := utils.GenerateRunID("recommend", cmd.Scenario.MarketName)
	ctx = withRunLogger(ctx, runID, cmd.Scenario)

	tuning := h.generator.Tuning()
	prefs := cmd.Scenario.Preferences
	root := negotiation.NewState(cmd.Scenario,
		negotiation.DefaultModifiers(prefs.RiskTolerance, tuning.PropertyValueWeight, tuning.OverpaymentWeight))

	set, err := h.generator.Generate(ctx, root)
	if err != nil {
		return nil, err
	}
	set.RunID = runID
	return set, nil
}

// withRunLogger tags the context logger with the run id and the scenario headline
func withRunLogger(ctx context.Context, runID string, s negotiation.Scenario) context.Context {
	logger := common.LoggerFromContext(ctx).With().
		Str("run_id", runID).
		Str("market", s.MarketName).
		Float64("listing", s.Situation.ListingPrice).
		Logger()
	return common.WithLogger(ctx, logger)
}
