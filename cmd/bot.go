package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/tether/internal/api"
	terrors "github.com/PolarWolf314/tether/internal/errors"
	"github.com/PolarWolf314/tether/internal/ui"
	"github.com/PolarWolf314/tether/internal/workflows"
	"github.com/spf13/cobra"
)

// BotCmd is the top-level bot command.
var BotCmd = &cobra.Command{
	Use:   "bot",
	Short: "Inspect and activate the workspace bot",
	Long: `The workspace bot syncs secrets to integrations on your behalf. It can
only do so once it holds a copy of the workspace key, which you hand over
by activating it.`,
	PersistentPreRun: initLogger,
}

func init() {
	addLoggingFlags(BotCmd)
	addWorkspaceFlag(BotCmd)

	BotCmd.AddCommand(botStatusCmd)
	BotCmd.AddCommand(botActivateCmd)
}

// GetBotCmd returns the BotCmd for testing.
func GetBotCmd() *cobra.Command {
	return BotCmd
}

// fetchBot loads the workspace bot, returning ErrBotNotFound when there is none.
func fetchBot(ctx context.Context, env *commandEnv) (*api.Bot, error) {
	if env.WorkspaceID == "" {
		return nil, terrors.ErrWorkspaceRequired
	}
	bot, err := env.Client.GetBot(ctx, env.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if bot == nil {
		return nil, terrors.ErrBotNotFound
	}
	return bot, nil
}

var botStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the workspace bot is active",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting bot status command")
		spinner, cleanup := startSpinner("Fetching bot...", Logger)
		defer cleanup()

		env, err := setupRuntime(Logger, workspace)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to set up: %v", err)
		}

		bot, err := fetchBot(context.Background(), env)
		if err != nil {
			return finish(spinner, err)
		}

		status := ui.Warning.Sprint(bot.Status().String())
		if bot.Status() == api.BotActive {
			status = ui.Success.Sprint(bot.Status().String())
		}
		spinner.FinalMSG = fmt.Sprintf("Bot %s %s is %s", ui.Highlight.Sprint(bot.Name), ui.Muted.Sprint(bot.ID), status)
		return nil
	},
}

var botActivateCmd = &cobra.Command{
	Use:   "activate",
	Short: "Toggle the workspace bot",
	Long: `Seals the workspace key for the bot with your private key and flips the
bot's state: an inactive bot is activated, an active one is deactivated.

Your private key must be in the session; see "tether session login".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting bot activate command")
		spinner, cleanup := startSpinner("Updating bot...", Logger)
		defer cleanup()

		env, err := setupRuntime(Logger, workspace)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to set up: %v", err)
		}

		ctx := context.Background()
		// Checked before fetching the bot so a missing key costs no requests.
		if _, err := env.Session.PrivateKey(); err != nil {
			return finish(spinner, err)
		}

		bot, err := fetchBot(ctx, env)
		if err != nil {
			return finish(spinner, err)
		}

		updated, err := workflows.ActivateBot(ctx, workflows.ActivateBotOptions{
			WorkspaceID: env.WorkspaceID,
			Bot:         bot,
			Session:     env.Session,
			Backend:     env.Client,
			Logger:      Logger,
		})
		if err != nil {
			return finish(spinner, err)
		}

		if updated.Status() == api.BotActive {
			spinner.FinalMSG = ui.Success.Sprint("✓") + " Bot " + ui.Highlight.Sprint(updated.Name) + " activated"
		} else {
			spinner.FinalMSG = ui.Success.Sprint("✓") + " Bot " + ui.Highlight.Sprint(updated.Name) + " deactivated"
		}
		return nil
	},
}
