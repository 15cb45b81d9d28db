package workflows

import (
	"context"
	"errors"
	"fmt"

	"github.com/PolarWolf314/tether/internal/api"
	terrors "github.com/PolarWolf314/tether/internal/errors"
	"github.com/PolarWolf314/tether/internal/integrations"
	logger "github.com/PolarWolf314/tether/internal/logging"
	"github.com/PolarWolf314/tether/internal/session"
)

// ConnectOptions configures the connect workflow.
type ConnectOptions struct {
	// Name is the integration option name or slug.
	Name      string
	Dashboard *Dashboard
	Origin    string

	Session   *session.Session
	Backend   Backend
	Navigator Navigator
	Logger    logger.Logger

	// ConfirmActivation is asked when the bot is inactive. Returning true
	// activates the bot and continues with the launch. A nil func declines.
	ConfirmActivation func(option api.IntegrationOption) bool
}

// ConnectResult contains the outcome of a connect.
type ConnectResult struct {
	Tile integrations.Tile

	// Bot is the workspace bot after the connect; it differs from the
	// dashboard's bot only when Activated is set.
	Bot       *api.Bot
	Activated bool

	Launch *LaunchResult
}

// Connect presses an integration tile: it selects the option and launches it.
//
// When the workspace bot is inactive the user is asked to activate it first;
// on confirmation the bot is activated and the launch proceeds, otherwise
// ErrBotInactive is returned.
//
// Returns ErrIntegrationNotFound if no option has the given name.
// Returns ErrIntegrationUnavailable for options that are coming soon.
// Returns ErrBotNotFound if the workspace has no bot.
func Connect(ctx context.Context, opts ConnectOptions) (*ConnectResult, error) {
	d := opts.Dashboard
	log := opts.Logger

	tile, ok := integrations.FindTile(d.Tiles(), opts.Name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", terrors.ErrIntegrationNotFound, opts.Name)
	}

	result := &ConnectResult{Tile: tile, Bot: d.Bot}

	if !tile.Interactive() {
		return result, terrors.ErrIntegrationUnavailable
	}
	if d.Bot == nil {
		return result, terrors.ErrBotNotFound
	}

	err := tile.Press(integrations.Handlers{
		Select: func(option api.IntegrationOption) {
			log.Debugf("Selected integration %s", option.Name)
		},
		Launch: func(option api.IntegrationOption) error {
			if result.Bot.Status() != api.BotActive {
				if opts.ConfirmActivation == nil || !opts.ConfirmActivation(option) {
					return terrors.ErrBotInactive
				}

				bot, err := ActivateBot(ctx, ActivateBotOptions{
					WorkspaceID: d.WorkspaceID,
					Bot:         result.Bot,
					Session:     opts.Session,
					Backend:     opts.Backend,
					Logger:      log,
				})
				if err != nil {
					return fmt.Errorf("activating bot: %w", err)
				}
				result.Bot = bot
				result.Activated = true
			}

			launch, err := Launch(ctx, LaunchOptions{
				WorkspaceID: d.WorkspaceID,
				Option:      option,
				Bot:         result.Bot,
				Origin:      opts.Origin,
				Session:     opts.Session,
				Navigator:   opts.Navigator,
				Logger:      log,
			})
			if err != nil {
				return err
			}
			result.Launch = launch
			return nil
		},
	})
	if err != nil && !errors.Is(err, terrors.ErrBotInactive) {
		log.Debugf("Connect %s failed: %v", tile.Option.Name, err)
	}
	return result, err
}
