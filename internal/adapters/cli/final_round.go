package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dako7777777/rental-bidding-tool/internal/application/recommendation"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/negotiation"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/shared"
)

// NewFinalRoundCommand creates the final-round command
func NewFinalRoundCommand() *cobra.Command {
	input := &scenarioInput{}
	var (
		feedback     string
		counterPrice float64
		priorBid     float64
	)

	cmd := &cobra.Command{
		Use:   "final-round",
		Short: "Recommend final bids after the landlord's response",
		Long: `Recommend final-round bids once the landlord has answered your opening bid.

Feedback is either request_best_final (the landlord wants best and final offers)
or counter_offer (optionally with --counter-price; defaults to the listing price).

Examples:
  rentbid final-round --example --feedback counter_offer --counter-price 2250 --prior-bid 2150
  rentbid final-round --file scenario.yaml --feedback request_best_final --prior-bid 2200`,
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := input.scenario()
			if err != nil {
				return err
			}
			fb, err := negotiation.ParseFeedback(feedback)
			if err != nil {
				return err
			}
			counter := shared.None[float64]()
			if cmd.Flags().Changed("counter-price") {
				counter = shared.Some(counterPrice)
			}

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			resp, err := a.mediator.Send(a.context(cmd.Context()), &recommendation.AdvanceToFinalRoundCommand{
				Scenario:     scenario,
				Feedback:     fb,
				CounterPrice: counter,
				PriorBid:     priorBid,
			})
			if err != nil {
				return fmt.Errorf("final-round recommendation failed: %w", err)
			}

			set, ok := resp.(*recommendation.RecommendationSet)
			if !ok {
				return fmt.Errorf("unexpected response type %T", resp)
			}
			return newPresenter(cmd.OutOrStdout(), jsonOutput).recommendations(scenario, set)
		},
	}

	input.register(cmd)
	cmd.Flags().StringVar(&feedback, "feedback", "", "Landlord feedback: request_best_final or counter_offer")
	cmd.Flags().Float64Var(&counterPrice, "counter-price", 0, "Landlord's counter price")
	cmd.Flags().Float64Var(&priorBid, "prior-bid", 0, "Your opening bid")
	_ = cmd.MarkFlagRequired("feedback")
	_ = cmd.MarkFlagRequired("prior-bid")

	return cmd
}
