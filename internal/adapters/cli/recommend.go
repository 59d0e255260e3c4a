package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dako7777777/rental-bidding-tool/internal/application/recommendation"
)

// NewRecommendCommand creates the recommend command
func NewRecommendCommand() *cobra.Command {
	input := &scenarioInput{}

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend opening bids",
		Long: `Recommend conservative, balanced and aggressive opening bids for a listing.

The scenario comes from flags, a YAML file (--file) or the built-in example (--example).

Examples:
  rentbid recommend --example
  rentbid recommend --market burnaby --listing 1900 --days 21 --budget 2000 --risk 2
  rentbid recommend --listing 2400 --budget 2600 --median 1.06 --sigma 0.12 --skew 0.2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := input.scenario()
			if err != nil {
				return err
			}

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			resp, err := a.mediator.Send(a.context(cmd.Context()), &recommendation.GenerateRecommendationsCommand{
				Scenario: scenario,
			})
			if err != nil {
				return fmt.Errorf("recommendation failed: %w", err)
			}

			set, ok := resp.(*recommendation.RecommendationSet)
			if !ok {
				return fmt.Errorf("unexpected response type %T", resp)
			}
			return newPresenter(cmd.OutOrStdout(), jsonOutput).recommendations(scenario, set)
		},
	}

	input.register(cmd)
	return cmd
}
