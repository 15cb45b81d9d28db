package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/tether/internal/api"
	"github.com/PolarWolf314/tether/internal/audit"
	terrors "github.com/PolarWolf314/tether/internal/errors"
	logger "github.com/PolarWolf314/tether/internal/logging"
	"github.com/PolarWolf314/tether/internal/secrets"
	"github.com/PolarWolf314/tether/internal/session"
)

// ActivateBotOptions configures the bot activation workflow.
type ActivateBotOptions struct {
	WorkspaceID string

	// Bot is the workspace bot as last fetched. It is not modified.
	Bot *api.Bot

	Session *session.Session
	Backend Backend
	Logger  logger.Logger
}

// ActivateBot hands a copy of the workspace key to the bot and toggles its status.
//
// The workflow:
//  1. Reads the user's private key from the session
//  2. Fetches the workspace key sealed for the user
//  3. Opens it with the user's private key and the sender's public key
//  4. Seals it from the user's private key to the bot's public key
//  5. Submits the sealed key with the bot's status inverted
//
// The caller should replace its bot with the returned one.
//
// Returns ErrPrivateKeyNotFound, before any request, if the session holds no private key.
// Returns ErrBotNotFound, before any request, if bot is nil.
// Returns ErrKeyDecryptFailed if the workspace key cannot be opened; the bot is not updated.
// Returns ErrBackendRejected or ErrBackendUnavailable if a request fails.
func ActivateBot(ctx context.Context, opts ActivateBotOptions) (*api.Bot, error) {
	log := opts.Logger

	privateKey, err := opts.Session.PrivateKey()
	if err != nil {
		return nil, err
	}

	if opts.Bot == nil {
		return nil, terrors.ErrBotNotFound
	}
	bot := opts.Bot

	log.Debugf("Fetching latest workspace key for %s", opts.WorkspaceID)
	key, err := opts.Backend.GetLatestKey(ctx, opts.WorkspaceID)
	if err != nil {
		return nil, fmt.Errorf("fetching workspace key: %w", err)
	}

	workspaceKey, err := secrets.DecryptAsymmetric(key.EncryptedKey, key.Nonce, key.Sender.PublicKey, privateKey)
	if err != nil {
		return nil, err
	}
	log.Infof("Workspace key decrypted")

	ciphertext, nonce, err := secrets.EncryptAsymmetric(workspaceKey, bot.PublicKey, privateKey)
	if err != nil {
		return nil, err
	}
	log.Infof("Workspace key encrypted for bot %s", bot.ID)

	isActive := !bot.IsActive
	log.Debugf("Setting bot %s active=%t", bot.ID, isActive)
	updated, err := opts.Backend.SetBotActiveStatus(ctx, bot.ID, isActive, &api.BotKey{
		EncryptedKey: ciphertext,
		Nonce:        nonce,
	})
	if err != nil {
		return nil, fmt.Errorf("updating bot status: %w", err)
	}

	op := audit.OpBotDeactivate
	if updated.Status() == api.BotActive {
		op = audit.OpBotActivate
	}
	audit.Log(audit.Entry{
		Operation: op,
		Workspace: opts.WorkspaceID,
		Session:   opts.Session.ID(),
		BotID:     updated.ID,
	})

	return updated, nil
}
