// Package workflows provides high-level orchestration for tether commands.
//
// Workflows coordinate the API client, the session and the integrations
// package to implement complete user-facing features. Each workflow handles
// a single command's business logic, independent of CLI concerns like flag
// parsing, spinners, and output formatting.
//
// # Available Workflows
//
//   - Load: Fetches the workspace, options, authorizations, integrations and bot
//   - ActivateBot: Re-encrypts the workspace key for the bot and toggles it
//   - Launch: Generates an anti-forgery token and opens a provider's OAuth page
//   - Connect: Presses a tile, activating the bot first when the user agrees
//   - Revoke: Deletes a tile's authorization and reloads
//   - Activity: Reads and filters the local activity log
//
// # Side Effects
//
// Workflows talk to the outside world only through the Backend, Navigator
// and session.Session values in their options, so tests substitute fakes
// for all three.
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package. Use
// errors.Is() to check for specific conditions:
//
//	bot, err := workflows.ActivateBot(ctx, opts)
//	if errors.Is(err, terrors.ErrPrivateKeyNotFound) {
//	    // Ask the user to log in again
//	}
//
// No workflow retries on its own; retries are a property of the API client.
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
// This enables cancellation, timeouts, and passing request-scoped values.
package workflows
