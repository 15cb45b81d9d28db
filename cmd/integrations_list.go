package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/PolarWolf314/tether/internal/api"
	"github.com/PolarWolf314/tether/internal/integrations"
	"github.com/PolarWolf314/tether/internal/ui"
	"github.com/PolarWolf314/tether/internal/workflows"
	"github.com/spf13/cobra"
)

var integrationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List integrations for a workspace",
	Long: `Shows the workspace's cloud integration options, which of them are
authorized, the integrations currently configured per environment, and the
framework integrations with their documentation links.

How load failures are shown depends on errors.policy in the config:
"silent" shows whatever loaded, "banner" also prints an error block.

Examples:
  tether integrations list
  tether integrations list --workspace 62a0f1c2e4b0`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting integrations list command")
		spinner, cleanup := startSpinner("Loading integrations...", Logger)
		defer cleanup()

		env, err := setupRuntime(Logger, workspace)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to set up: %v", err)
		}

		dashboard, err := workflows.Load(context.Background(), workflows.LoadOptions{
			WorkspaceID: env.WorkspaceID,
			Backend:     env.Client,
			Logger:      Logger,
		})
		if dashboard == nil {
			return finish(spinner, err)
		}

		var b strings.Builder
		if err != nil {
			if banner := reportLoadError(env.Config, Logger, err); banner != "" {
				b.WriteString(banner + "\n\n")
			}
		}
		b.WriteString(renderDashboard(dashboard))

		frameworks, ferr := integrations.FrameworkCatalog()
		if ferr != nil {
			return Logger.ErrorfAndReturn("failed to load framework catalog: %v", ferr)
		}
		b.WriteString("\n" + renderFrameworks(frameworks))

		spinner.FinalMSG = b.String()
		return nil
	},
}

// renderDashboard formats the workspace, its cloud tiles and its current integrations.
func renderDashboard(d *workflows.Dashboard) string {
	var b strings.Builder

	if d.Workspace != nil {
		b.WriteString("Workspace " + ui.Highlight.Sprint(d.Workspace.Name) + " " + ui.Muted.Sprint(d.WorkspaceID) + "\n")
	}
	if d.Bot != nil {
		status := ui.Warning.Sprint(api.BotInactive.String())
		if d.Bot.Status() == api.BotActive {
			status = ui.Success.Sprint(api.BotActive.String())
		}
		b.WriteString("Bot " + status + "\n")
	}

	if d.ShowCloudSection() {
		b.WriteString("\nCloud integrations\n")
		for _, tile := range d.Tiles() {
			b.WriteString(renderTile(tile) + "\n")
		}
	}

	rows := d.CurrentIntegrations()
	if len(rows) > 0 {
		b.WriteString("\nCurrent integrations\n")
		for _, row := range rows {
			state := ui.Success.Sprint("active")
			if !row.IsActive {
				state = ui.Muted.Sprint("inactive")
			}
			app := row.App
			if app == "" {
				app = "-"
			}
			b.WriteString(fmt.Sprintf("  %-12s %-24s %-16s %s\n", row.Integration, app, row.EnvironmentName, state))
		}
	}

	return b.String()
}

// renderTile formats one cloud integration option with its state badge.
func renderTile(tile integrations.Tile) string {
	line := fmt.Sprintf("  %-14s %-18s", tile.Title(), tile.Subtitle())
	switch tile.State {
	case integrations.TileAuthorized:
		return line + " " + ui.AuthorizedBadge.Sprint("authorized") + " " + ui.RevokeBadge.Sprint("revoke")
	case integrations.TileUnavailable:
		return line + " " + ui.ComingSoonBadge.Sprint("coming soon")
	default:
		return strings.TrimRight(line, " ")
	}
}

// renderFrameworks formats the framework catalog.
func renderFrameworks(frameworks []integrations.Framework) string {
	var b strings.Builder
	b.WriteString("Framework integrations\n")
	for _, f := range frameworks {
		b.WriteString(fmt.Sprintf("  %-14s %s\n", f.Name, ui.URL.Sprint(f.DocsLink)))
	}
	return b.String()
}
