package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

var configShowJSON bool

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	Long: `Displays the configuration after defaults and TETHER_* overrides are applied.

Examples:
  tether config show
  tether config show --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config show command")

		config, err := loadConfig(Logger)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load config: %v", err)
		}

		if configShowJSON {
			data, err := json.MarshalIndent(config, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal config to JSON: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		if err := toml.NewEncoder(cmd.OutOrStdout()).Encode(config); err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		return nil
	},
}
