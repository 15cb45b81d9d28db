package cmd

import (
	"fmt"
	"strings"

	"github.com/PolarWolf314/tether/internal/configs"
	"github.com/PolarWolf314/tether/internal/ui"
	"github.com/spf13/cobra"
)

var (
	configInitAPIURL    string
	configInitOrigin    string
	configInitWorkspace string
	configInitBackend   string
	configInitPolicy    string
	configInitTimeout   int
	configInitRetryMax  int
)

func init() {
	configInitCmd.Flags().StringVar(&configInitAPIURL, "api-url", "", "backend API base URL")
	configInitCmd.Flags().StringVar(&configInitOrigin, "origin", "", "application origin OAuth providers redirect back to")
	configInitCmd.Flags().StringVar(&configInitWorkspace, "workspace", "", "default workspace id")
	configInitCmd.Flags().StringVar(&configInitBackend, "session-backend", "", `session store: "file" or "keyring"`)
	configInitCmd.Flags().StringVar(&configInitPolicy, "error-policy", "", `how load failures are shown: "silent" or "banner"`)
	configInitCmd.Flags().IntVar(&configInitTimeout, "timeout", 0, "per-request timeout in seconds")
	configInitCmd.Flags().IntVar(&configInitRetryMax, "retry-max", 0, "retries after a failed request")
}

// resetConfigInitState resets the config init command's global state for testing.
func resetConfigInitState() {
	configInitAPIURL = ""
	configInitOrigin = ""
	configInitWorkspace = ""
	configInitBackend = ""
	configInitPolicy = ""
	configInitTimeout = 0
	configInitRetryMax = 0
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create or update the configuration file",
	Long: `Writes the configuration file, starting from the existing one or from
the defaults. Only the values passed as flags are changed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config init command")

		config, err := configs.LoadConfig()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load config: %v", err)
		}

		flags := cmd.Flags()
		if flags.Changed("api-url") {
			config.API.URL = strings.TrimRight(configInitAPIURL, "/")
		}
		if flags.Changed("origin") {
			config.App.Origin = strings.TrimRight(configInitOrigin, "/")
		}
		if flags.Changed("workspace") {
			config.App.WorkspaceID = configInitWorkspace
		}
		if flags.Changed("session-backend") {
			config.Session.Backend = configInitBackend
		}
		if flags.Changed("error-policy") {
			config.Errors.Policy = configs.ErrorPolicy(configInitPolicy)
		}
		if flags.Changed("timeout") {
			config.API.TimeoutSeconds = configInitTimeout
		}
		if flags.Changed("retry-max") {
			config.API.RetryMax = configInitRetryMax
		}

		if err := config.Validate(); err != nil {
			fmt.Println(ui.Error.Sprint("✗") + " " + err.Error())
			return nil
		}

		if err := configs.SaveConfig(config); err != nil {
			return Logger.ErrorfAndReturn("failed to save config: %v", err)
		}
		Logger.Infof("Saved config to %s", configs.ConfigFilePath())

		fmt.Println(ui.Success.Sprint("✓") + " Configuration saved to " + ui.Code.Sprint(configs.ConfigFilePath()))
		return nil
	},
}
