package workflows

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/PolarWolf314/tether/internal/api"
	"github.com/PolarWolf314/tether/internal/audit"
	terrors "github.com/PolarWolf314/tether/internal/errors"
	"github.com/PolarWolf314/tether/internal/integrations"
	logger "github.com/PolarWolf314/tether/internal/logging"
	"github.com/PolarWolf314/tether/internal/session"
)

const stateTokenBytes = 16

// LaunchOptions configures the launch workflow.
type LaunchOptions struct {
	WorkspaceID string
	Option      api.IntegrationOption
	Bot         *api.Bot

	// Origin is the application origin the provider redirects back to.
	Origin string

	Session   *session.Session
	Navigator Navigator
	Logger    logger.Logger

	// Random is the token source; nil means crypto/rand.
	Random io.Reader
}

// LaunchResult contains the outcome of a launch.
type LaunchResult struct {
	URL   string
	State string

	// Skipped is set when the provider has no launch URL; nothing else happened.
	Skipped bool
}

// Launch starts the OAuth authorization for an integration option.
//
// A fresh anti-forgery token is generated, stored in the session in place of
// any earlier one, and embedded in the provider URL, which is then handed to
// the navigator. The token is checked later by the callback, not here.
//
// Returns ErrBotInactive if the workspace bot is missing or inactive; no token is generated.
// Options whose provider has no launch URL are logged and skipped without error.
func Launch(ctx context.Context, opts LaunchOptions) (*LaunchResult, error) {
	log := opts.Logger

	if opts.Bot.Status() != api.BotActive {
		return nil, terrors.ErrBotInactive
	}

	if !integrations.IsKnownProvider(opts.Option.Name) {
		log.Warnf("No launch URL for integration %q, skipping", opts.Option.Name)
		return &LaunchResult{Skipped: true}, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	state, err := newStateToken(opts.Random)
	if err != nil {
		return nil, fmt.Errorf("generating anti-forgery token: %w", err)
	}

	if err := opts.Session.SetCSRFToken(state); err != nil {
		return nil, fmt.Errorf("storing anti-forgery token: %w", err)
	}

	target, err := integrations.LaunchURL(opts.Option, state, opts.Origin)
	if err != nil {
		return nil, err
	}

	log.Debugf("Navigating to %s authorization page", opts.Option.Name)
	if err := opts.Navigator.Navigate(target); err != nil {
		return nil, fmt.Errorf("opening %s: %w", target, err)
	}

	audit.Log(audit.Entry{
		Operation:   audit.OpIntegrationLaunch,
		Workspace:   opts.WorkspaceID,
		Session:     opts.Session.ID(),
		Integration: opts.Option.Name,
	})

	return &LaunchResult{URL: target, State: state}, nil
}

// newStateToken returns 16 random bytes, hex encoded.
func newStateToken(r io.Reader) (string, error) {
	if r == nil {
		r = rand.Reader
	}
	b := make([]byte, stateTokenBytes)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
