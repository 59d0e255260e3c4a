package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dako7777777/rental-bidding-tool/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration settings",
		Long: `Inspect rentbid configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (RB_* prefix, e.g. RB_SEARCH_DEPTH=3)
2. Config file (config.yaml)
3. Default values

Examples:
  rentbid config show
  rentbid config show --config ./configs/config.yaml`,
	}

	// Add subcommands
	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Failed to load config: %v\n", err)
				fmt.Fprintln(cmd.ErrOrStderr(), "Using default configuration.")
				cfg = config.Default()
			}

			if jsonOutput {
				return newPresenter(cmd.OutOrStdout(), true).writeJSON(cfg)
			}
			out, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to encode configuration: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
