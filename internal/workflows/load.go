package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/tether/internal/api"
	terrors "github.com/PolarWolf314/tether/internal/errors"
	"github.com/PolarWolf314/tether/internal/integrations"
	logger "github.com/PolarWolf314/tether/internal/logging"
)

// LoadOptions configures the load workflow.
type LoadOptions struct {
	WorkspaceID string
	Backend     Backend
	Logger      logger.Logger
}

// Dashboard is everything the integrations view shows for one workspace.
type Dashboard struct {
	WorkspaceID    string
	Workspace      *api.Workspace
	Options        []api.IntegrationOption
	Authorizations []api.IntegrationAuth
	Integrations   []api.Integration
	Bot            *api.Bot
}

// Environments returns the workspace environments, or nil before the workspace loaded.
func (d *Dashboard) Environments() []api.Environment {
	if d.Workspace == nil {
		return nil
	}
	return d.Workspace.Environments
}

// Tiles resolves the cloud integration options against the authorizations.
func (d *Dashboard) Tiles() []integrations.Tile {
	return integrations.ResolveTiles(d.Options, d.Authorizations)
}

// ShowCloudSection reports whether cloud tiles can be offered: options exist and the workspace has a bot.
func (d *Dashboard) ShowCloudSection() bool {
	return len(d.Options) > 0 && d.Bot != nil
}

// CurrentIntegrations returns the configured integrations with environment names.
func (d *Dashboard) CurrentIntegrations() []integrations.IntegrationRow {
	return integrations.CurrentIntegrations(d.Integrations, d.Environments())
}

// Load fetches the workspace, integration options, authorizations, integrations
// and bot, in that order.
//
// The fetches are sequential. The first failure stops the sequence; the
// dashboard is still returned with whatever loaded before it, next to the
// error, so callers can decide whether to show partial state.
//
// Returns ErrWorkspaceRequired if no workspace id is given.
func Load(ctx context.Context, opts LoadOptions) (*Dashboard, error) {
	if opts.WorkspaceID == "" {
		return nil, terrors.ErrWorkspaceRequired
	}

	log := opts.Logger
	d := &Dashboard{WorkspaceID: opts.WorkspaceID}

	log.Debugf("Fetching workspace %s", opts.WorkspaceID)
	workspace, err := opts.Backend.GetWorkspace(ctx, opts.WorkspaceID)
	if err != nil {
		return d, fmt.Errorf("fetching workspace: %w", err)
	}
	d.Workspace = workspace

	log.Debugf("Fetching integration options")
	options, err := opts.Backend.GetIntegrationOptions(ctx)
	if err != nil {
		return d, fmt.Errorf("fetching integration options: %w", err)
	}
	d.Options = options

	log.Debugf("Fetching integration authorizations")
	auths, err := opts.Backend.GetWorkspaceAuthorizations(ctx, opts.WorkspaceID)
	if err != nil {
		return d, fmt.Errorf("fetching integration authorizations: %w", err)
	}
	d.Authorizations = auths

	log.Debugf("Fetching integrations")
	list, err := opts.Backend.GetWorkspaceIntegrations(ctx, opts.WorkspaceID)
	if err != nil {
		return d, fmt.Errorf("fetching integrations: %w", err)
	}
	d.Integrations = list

	log.Debugf("Fetching workspace bot")
	bot, err := opts.Backend.GetBot(ctx, opts.WorkspaceID)
	if err != nil {
		return d, fmt.Errorf("fetching bot: %w", err)
	}
	d.Bot = bot

	log.Infof("Loaded %d integration options, %d authorizations and %d integrations", len(options), len(auths), len(list))
	return d, nil
}
