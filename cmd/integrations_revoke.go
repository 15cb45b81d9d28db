package cmd

import (
	"context"

	"github.com/PolarWolf314/tether/internal/ui"
	"github.com/PolarWolf314/tether/internal/workflows"
	"github.com/spf13/cobra"
)

var integrationsRevokeCmd = &cobra.Command{
	Use:   "revoke <name>",
	Short: "Revoke a cloud integration's authorization",
	Long: `Deletes the authorization linking the workspace to a provider, then
reloads the workspace and prints it again.

Examples:
  tether integrations revoke heroku`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting integrations revoke command")
		name := args[0]
		ctx := context.Background()

		spinner, cleanup := startSpinner("Revoking "+name+"...", Logger)
		defer cleanup()

		env, err := setupRuntime(Logger, workspace)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to set up: %v", err)
		}

		dashboard, err := workflows.Load(ctx, workflows.LoadOptions{
			WorkspaceID: env.WorkspaceID,
			Backend:     env.Client,
			Logger:      Logger,
		})
		if err != nil {
			return finish(spinner, err)
		}

		result, err := workflows.Revoke(ctx, workflows.RevokeOptions{
			Name:      name,
			Dashboard: dashboard,
			Session:   env.Session,
			Backend:   env.Client,
			Logger:    Logger,
		})
		if result == nil {
			return finish(spinner, err)
		}

		msg := ui.Success.Sprint("✓") + " Revoked " + ui.Highlight.Sprint(result.Authorization.Integration) + " authorization " +
			ui.Muted.Sprint(result.Authorization.ID) + "\n"
		if err != nil {
			if banner := reportLoadError(env.Config, Logger, err); banner != "" {
				msg += "\n" + banner + "\n"
			}
		}
		if result.Dashboard != nil {
			msg += "\n" + renderDashboard(result.Dashboard)
		}
		spinner.FinalMSG = msg
		return nil
	},
}
