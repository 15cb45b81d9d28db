// Package session holds the local credentials tether needs between commands.
//
// Two values live here: the user's private key, used to open the workspace
// key during bot activation, and the anti-forgery token generated for the
// most recent OAuth launch. An optional API access token is kept alongside
// them.
//
// # Storage
//
// The Session type is the only way workflows reach these values. It wraps a
// narrow Store (get, set, clear) so the backing storage can be swapped:
//
//   - FileStore: a TOML file readable only by the owner
//   - KeyringStore: the operating system keychain
//   - MemoryStore: in-process storage for tests
//
// Keys are fixed strings (PRIVATE_KEY, latestCSRFToken, JWT_TOKEN); every
// write overwrites the previous value.
package session
