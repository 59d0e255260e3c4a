package cli

import (
	"github.com/spf13/cobra"

	"github.com/dako7777777/rental-bidding-tool/internal/domain/market"
)

// NewMarketsCommand creates the markets command
func NewMarketsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "markets",
		Short: "List market presets",
		Long: `List the built-in market presets with their bid-ratio parameters and regime.

Example:
  rentbid markets`,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := market.PresetNames()
			presets := make([]market.Preset, 0, len(names))
			for _, name := range names {
				preset, err := market.LookupPreset(name)
				if err != nil {
					return err
				}
				presets = append(presets, preset)
			}
			return newPresenter(cmd.OutOrStdout(), jsonOutput).markets(presets)
		},
	}
}
