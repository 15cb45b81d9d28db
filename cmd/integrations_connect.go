package cmd

import (
	"context"
	"os"

	"github.com/PolarWolf314/tether/internal/api"
	"github.com/PolarWolf314/tether/internal/ui"
	"github.com/PolarWolf314/tether/internal/utils"
	"github.com/PolarWolf314/tether/internal/workflows"
	"github.com/spf13/cobra"
)

var connectYes bool

func init() {
	integrationsConnectCmd.Flags().BoolVarP(&connectYes, "yes", "y", false, "activate the workspace bot without asking if it is inactive")
}

// resetConnectCommandState resets the connect command's global state for testing.
func resetConnectCommandState() {
	connectYes = false
}

var integrationsConnectCmd = &cobra.Command{
	Use:   "connect <name>",
	Short: "Authorize a cloud integration",
	Long: `Opens the authorization page of a cloud provider so it can be linked
to the workspace. The name is the integration's name or slug as shown by
"tether integrations list".

The workspace bot must be active. If it is not, you are asked whether to
activate it; activating hands the bot a copy of the workspace key sealed
with your private key. Use --yes to skip the question.

Examples:
  tether integrations connect github
  tether integrations connect Heroku --yes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting integrations connect command")
		name := args[0]
		ctx := context.Background()

		env, err := setupRuntime(Logger, workspace)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to set up: %v", err)
		}

		spinner, cleanup := startSpinner("Loading integrations...", Logger)
		dashboard, err := workflows.Load(ctx, workflows.LoadOptions{
			WorkspaceID: env.WorkspaceID,
			Backend:     env.Client,
			Logger:      Logger,
		})
		if err != nil {
			err = finish(spinner, err)
			cleanup()
			return err
		}
		cleanup()

		spinner, cleanup = startSpinner("Connecting...", Logger)
		defer cleanup()

		result, err := workflows.Connect(ctx, workflows.ConnectOptions{
			Name:      name,
			Dashboard: dashboard,
			Origin:    env.Config.App.Origin,
			Session:   env.Session,
			Backend:   env.Client,
			Navigator: navigator,
			Logger:    Logger,
			ConfirmActivation: func(option api.IntegrationOption) bool {
				if connectYes {
					Logger.Debugf("Activating bot without asking (--yes)")
					return true
				}
				// The prompt needs the terminal line the spinner is drawing on.
				spinning := spinner.Active()
				spinner.Stop()
				confirmed := utils.Confirm(stdin, os.Stdout,
					"The workspace bot is inactive. Activate it to connect "+option.Name+"?")
				if spinning {
					spinner.Start()
				}
				return confirmed
			},
		})

		if err != nil {
			return finish(spinner, err)
		}

		msg := ""
		if result.Activated {
			msg += ui.Success.Sprint("✓") + " Workspace bot activated\n"
		}
		if result.Launch.Skipped {
			msg += ui.Warning.Sprint("⚠") + " " + ui.Highlight.Sprint(result.Tile.Option.Name) + " has no authorization page yet"
		} else {
			msg += ui.Success.Sprint("✓") + " Opened the " + ui.Highlight.Sprint(result.Tile.Option.Name) + " authorization page\n" +
				ui.Info.Sprint("→") + " If no browser opened, visit " + ui.URL.Sprint(result.Launch.URL)
		}
		spinner.FinalMSG = msg
		return nil
	},
}
