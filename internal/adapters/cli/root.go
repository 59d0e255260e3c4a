package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath  string
	verbose     bool
	jsonOutput  bool
	dumpMetrics bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rentbid",
		Short: "Rental bid advisor - recommend what to offer for a rental unit",
		Long: `rentbid searches the negotiation between you, competing applicants and the
landlord and recommends three bids: conservative, balanced and aggressive.

Examples:
  rentbid recommend --example
  rentbid recommend --market downtown --listing 2200 --neighborhood-avg 2156 --days 7 --budget 2500
  rentbid recommend --file scenario.yaml --json
  rentbid final-round --file scenario.yaml --feedback counter_offer --counter-price 2250 --prior-bid 2150
  rentbid markets
  rentbid config show`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml, ./configs/config.yaml or ~/.rentbid/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"Print results as JSON")
	rootCmd.PersistentFlags().BoolVar(&dumpMetrics, "metrics", false,
		"Collect metrics and print them in Prometheus text format to stderr on exit")

	// Add command groups
	rootCmd.AddCommand(NewRecommendCommand())
	rootCmd.AddCommand(NewFinalRoundCommand())
	rootCmd.AddCommand(NewMarketsCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
