package cmd

import (
	"github.com/spf13/cobra"
)

// ConfigCmd is the top-level config command.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage tether configuration",
	Long: `Provides commands for managing the user configuration file.

The file lives at <user config dir>/tether/config.toml. Every value can be
overridden with a TETHER_* environment variable, also read from
tether.env next to config.toml. A .env file in the working directory is
never read.

Examples:
  # Point tether at a self-hosted backend and pick a workspace
  tether config init --api-url https://secrets.example.com --workspace 62a0f1c2e4b0

  # Show the effective configuration
  tether config show`,
	PersistentPreRun: initLogger,
}

func init() {
	addLoggingFlags(ConfigCmd)

	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configShowCmd)
}

// GetConfigCmd returns the ConfigCmd for testing.
func GetConfigCmd() *cobra.Command {
	return ConfigCmd
}
