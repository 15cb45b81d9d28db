package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/tether/internal/api"
	"github.com/PolarWolf314/tether/internal/audit"
	terrors "github.com/PolarWolf314/tether/internal/errors"
	"github.com/PolarWolf314/tether/internal/integrations"
	logger "github.com/PolarWolf314/tether/internal/logging"
	"github.com/PolarWolf314/tether/internal/session"
)

// RevokeOptions configures the revoke workflow.
type RevokeOptions struct {
	// Name is the integration option name or slug.
	Name      string
	Dashboard *Dashboard

	Session *session.Session
	Backend Backend
	Logger  logger.Logger
}

// RevokeResult contains the outcome of a revoke.
type RevokeResult struct {
	Authorization api.IntegrationAuth

	// Dashboard is the state reloaded from the backend after the delete.
	Dashboard *Dashboard
}

// Revoke deletes the authorization behind an authorized tile and reloads the dashboard.
//
// Nothing is updated locally; the reloaded dashboard is the only new state.
// If several authorizations match the option, the first one is deleted.
//
// Returns ErrIntegrationNotFound if no option has the given name.
// Returns ErrNotAuthorized if the option is not authorized.
// If the delete succeeds but the reload fails, the result is returned with the reload error.
func Revoke(ctx context.Context, opts RevokeOptions) (*RevokeResult, error) {
	d := opts.Dashboard
	log := opts.Logger

	tile, ok := integrations.FindTile(d.Tiles(), opts.Name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", terrors.ErrIntegrationNotFound, opts.Name)
	}

	result := &RevokeResult{}

	err := tile.Revoke(integrations.Handlers{
		Revoke: func(integrationAuthID string) error {
			log.Debugf("Deleting integration authorization %s", integrationAuthID)
			if err := opts.Backend.DeleteIntegrationAuth(ctx, integrationAuthID); err != nil {
				return fmt.Errorf("deleting authorization: %w", err)
			}
			result.Authorization = *tile.Authorization

			sessionID := ""
			if opts.Session != nil {
				sessionID = opts.Session.ID()
			}
			audit.Log(audit.Entry{
				Operation:   audit.OpIntegrationRevoke,
				Workspace:   d.WorkspaceID,
				Session:     sessionID,
				Integration: tile.Option.Name,
				AuthID:      integrationAuthID,
			})
			return nil
		},
		Reload: func() error {
			reloaded, err := Load(ctx, LoadOptions{
				WorkspaceID: d.WorkspaceID,
				Backend:     opts.Backend,
				Logger:      log,
			})
			result.Dashboard = reloaded
			if err != nil {
				return fmt.Errorf("reloading after revoke: %w", err)
			}
			return nil
		},
	})
	if err != nil && result.Authorization.ID == "" {
		return nil, err
	}
	return result, err
}
