// Package configs manages tether's user configuration.
//
// Configuration is stored in TOML format at:
//
//	<user config dir>/tether/config.toml
//
// and holds:
//   - The backend API URL, request timeout and retry count
//   - The application origin used to build OAuth callback URLs
//   - The default workspace id
//   - The session backend (file or keyring)
//   - The error policy for page loads (silent or banner)
//
// # Environment Overrides
//
// Every setting can be overridden with a TETHER_* environment variable.
// ApplyEnv also reads a dotenv file when one is given; variables already
// present in the process environment win over the file. The CLI passes
// EnvFilePath, which sits next to config.toml.
//
// # Settings
//
// UserTetherSettings is initialized at startup with the config and data
// directories. Tests replace it with temporary directories.
package configs
