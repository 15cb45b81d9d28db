package cmd

import (
	"io"

	logger "github.com/PolarWolf314/tether/internal/logging"
	"github.com/PolarWolf314/tether/internal/workflows"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose   bool
	debug     bool
	workspace string
	Logger    logger.Logger

	IntegrationsCmd = &cobra.Command{
		Use:   "integrations",
		Short: "Manage a workspace's third-party integrations",
		Long: `Lists, connects and revokes cloud integrations for a workspace.

Connecting an integration opens the provider's authorization page in your
browser. The workspace bot must be active for a connect; if it is not, you
are asked whether to activate it first.`,
		PersistentPreRun: initLogger,
	}
)

// initLogger builds the shared logger from the group's persistent flags.
func initLogger(cmd *cobra.Command, args []string) {
	Logger = logger.Logger{
		Verbose: verbose,
		Debug:   debug,
	}
	Logger.Debugf("Initializing %s command with verbose=%t, debug=%t", cmd.CommandPath(), verbose, debug)
}

// addLoggingFlags registers --verbose and --debug on a command group.
func addLoggingFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
}

// addWorkspaceFlag registers --workspace on a command group.
func addWorkspaceFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "workspace id (defaults to app.workspace_id from the config)")
}

func init() {
	addLoggingFlags(IntegrationsCmd)
	addWorkspaceFlag(IntegrationsCmd)

	IntegrationsCmd.AddCommand(integrationsListCmd)
	IntegrationsCmd.AddCommand(integrationsConnectCmd)
	IntegrationsCmd.AddCommand(integrationsRevokeCmd)
	IntegrationsCmd.AddCommand(integrationsFrameworksCmd)
}

// Helper functions for testing

// GetIntegrationsCmd returns the IntegrationsCmd for testing.
func GetIntegrationsCmd() *cobra.Command {
	return IntegrationsCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	workspace = ""
	resetConnectCommandState()
	resetSessionLoginState()
	resetConfigInitState()
	configShowJSON = false
	resetLogCommandState()
	for _, group := range []*cobra.Command{IntegrationsCmd, BotCmd, SessionCmd, ConfigCmd, LogCmd} {
		resetCobraFlagState(group)
	}
}

// resetCobraFlagState clears the Changed marks of a command tree to prevent test pollution.
func resetCobraFlagState(cmd *cobra.Command) {
	reset := func(flag *pflag.Flag) {
		flag.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetCobraFlagState(sub)
	}
}

// SetNavigator replaces the browser opener for testing.
func SetNavigator(n workflows.Navigator) {
	navigator = n
}

// SetStdin replaces the confirmation input for testing.
func SetStdin(r io.Reader) {
	stdin = r
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
