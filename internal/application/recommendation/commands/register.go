package commands

import (
	"github.com/dako7777777/rental-bidding-tool/internal/application/common"
	"github.com/dako7777777/rental-bidding-tool/internal/application/recommendation"
)

// RegisterHandlers wires both recommendation commands into the mediator
func RegisterHandlers(m common.Mediator, generator *recommendation.Generator) error {
	if err := common.RegisterHandler[*GenerateRecommendationsCommand](m, NewGenerateRecommendationsHandler(generator)); err != nil {
		return err
	}
	return common.RegisterHandler[*AdvanceToFinalRoundCommand](m, NewAdvanceToFinalRoundHandler(generator))
}
