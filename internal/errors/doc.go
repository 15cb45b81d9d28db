// Package errors provides typed error values for the tether client.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. This makes
// error handling more robust and refactoring-safe.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Session errors: local credentials are missing (ErrPrivateKeyNotFound)
//   - Crypto errors: the workspace key could not be opened or sealed (ErrKeyDecryptFailed)
//   - Bot errors: the workspace bot is absent or inactive (ErrBotInactive)
//   - Integration errors: an option cannot be used (ErrIntegrationUnavailable)
//   - Backend errors: the API refused or could not be reached (ErrBackendRejected)
//
// # Usage
//
// Return errors from internal packages:
//
//	if privateKey == "" {
//	    return nil, errors.ErrPrivateKeyNotFound
//	}
//
// Handle errors in the CLI layer:
//
//	bot, err := workflows.ActivateBot(ctx, opts)
//	if errors.Is(err, terrors.ErrPrivateKeyNotFound) {
//	    // Ask the user to log in again
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("activating bot %s: %w", botID, errors.ErrBackendRejected)
package errors
