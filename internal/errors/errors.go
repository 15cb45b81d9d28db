package errors

import "errors"

// Session errors indicate that local credentials are missing.
var (
	// ErrPrivateKeyNotFound indicates the user's private key is not held in the session.
	ErrPrivateKeyNotFound = errors.New("private key not found in session")

	// ErrAccessTokenNotFound indicates no API access token is held in the session.
	ErrAccessTokenNotFound = errors.New("access token not found in session")

	// ErrStateTokenNotFound indicates no anti-forgery token has been stored.
	ErrStateTokenNotFound = errors.New("anti-forgery token not found in session")

	// ErrUnknownSessionBackend indicates the configured session backend is not supported.
	ErrUnknownSessionBackend = errors.New("unknown session backend")
)

// Cryptographic errors indicate failures while moving the workspace key between custodians.
var (
	// ErrKeyDecryptFailed indicates the workspace key bundle could not be opened.
	ErrKeyDecryptFailed = errors.New("failed to decrypt workspace key")

	// ErrKeyEncryptFailed indicates the workspace key could not be sealed for the bot.
	ErrKeyEncryptFailed = errors.New("failed to encrypt workspace key")

	// ErrInvalidKey indicates a public or private key is malformed.
	ErrInvalidKey = errors.New("invalid or unsupported key format")
)

// Bot errors indicate that the workspace bot cannot be used.
var (
	// ErrBotNotFound indicates the workspace has no bot record.
	ErrBotNotFound = errors.New("workspace bot not found")

	// ErrBotInactive indicates the workspace bot has not been activated.
	ErrBotInactive = errors.New("workspace bot is not active")
)

// Integration errors indicate that an integration option cannot be used.
var (
	// ErrIntegrationNotFound indicates no option matches the requested name.
	ErrIntegrationNotFound = errors.New("integration option not found")

	// ErrIntegrationUnavailable indicates the option is listed but not yet available.
	ErrIntegrationUnavailable = errors.New("integration is coming soon")

	// ErrNotAuthorized indicates the option has no authorization to revoke.
	ErrNotAuthorized = errors.New("integration is not authorized")

	// ErrUnknownProvider indicates the option has no launch URL.
	ErrUnknownProvider = errors.New("unknown integration provider")
)

// Backend errors indicate failures talking to the API.
var (
	// ErrBackendRejected indicates the API answered with a non-success status.
	ErrBackendRejected = errors.New("request rejected by backend")

	// ErrBackendUnavailable indicates the API could not be reached.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrWorkspaceRequired indicates no workspace was selected.
	ErrWorkspaceRequired = errors.New("workspace id is required")
)
