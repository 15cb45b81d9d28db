package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrorPolicy decides how failed page loads are reported.
type ErrorPolicy string

const (
	// PolicySilent logs load failures and shows whatever loaded.
	PolicySilent ErrorPolicy = "silent"
	// PolicyBanner prints a visible error block for load failures.
	PolicyBanner ErrorPolicy = "banner"
)

// Session backends.
const (
	BackendFile    = "file"
	BackendKeyring = "keyring"
)

type Config struct {
	API     APIConfig     `toml:"api"`
	App     AppConfig     `toml:"app"`
	Session SessionConfig `toml:"session"`
	Errors  ErrorsConfig  `toml:"errors"`
}

type APIConfig struct {
	URL            string `toml:"url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	RetryMax       int    `toml:"retry_max"`
}

type AppConfig struct {
	// Origin is the application origin OAuth providers redirect back to.
	Origin      string `toml:"origin"`
	WorkspaceID string `toml:"workspace_id"`
}

type SessionConfig struct {
	Backend string `toml:"backend"`
}

type ErrorsConfig struct {
	Policy ErrorPolicy `toml:"policy"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			URL:            "https://app.infisical.com",
			TimeoutSeconds: 30,
			RetryMax:       0,
		},
		App: AppConfig{
			Origin: "https://app.infisical.com",
		},
		Session: SessionConfig{
			Backend: BackendFile,
		},
		Errors: ErrorsConfig{
			Policy: PolicySilent,
		},
	}
}

// Timeout returns the per-request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// Validate checks that the configuration can be used.
func (c *Config) Validate() error {
	if c.API.URL == "" {
		return fmt.Errorf("api.url must not be empty")
	}
	if !strings.HasPrefix(c.API.URL, "http://") && !strings.HasPrefix(c.API.URL, "https://") {
		return fmt.Errorf("api.url must be an http(s) URL, got %q", c.API.URL)
	}
	if c.API.TimeoutSeconds <= 0 {
		return fmt.Errorf("api.timeout_seconds must be positive, got %d", c.API.TimeoutSeconds)
	}
	if c.API.RetryMax < 0 {
		return fmt.Errorf("api.retry_max must not be negative, got %d", c.API.RetryMax)
	}
	if c.App.Origin == "" {
		return fmt.Errorf("app.origin must not be empty")
	}
	switch c.Session.Backend {
	case BackendFile, BackendKeyring:
	default:
		return fmt.Errorf("session.backend must be %q or %q, got %q", BackendFile, BackendKeyring, c.Session.Backend)
	}
	switch c.Errors.Policy {
	case PolicySilent, PolicyBanner:
	default:
		return fmt.Errorf("errors.policy must be %q or %q, got %q", PolicySilent, PolicyBanner, c.Errors.Policy)
	}
	return nil
}

// LoadConfig loads the user configuration, falling back to defaults for a missing file.
func LoadConfig() (*Config, error) {
	configPath := ConfigFilePath()

	config := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return config, nil
}

// SaveConfig saves the user configuration.
func SaveConfig(config *Config) error {
	if err := SaveTOML(ConfigFilePath(), config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// ApplyEnv overrides config fields from TETHER_* variables.
// When envFile is non-empty and exists, its variables are used for keys the
// process environment does not set.
func (c *Config) ApplyEnv(envFile string) error {
	fileVars := map[string]string{}
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			vars, err := godotenv.Read(envFile)
			if err != nil {
				return fmt.Errorf("failed to read env file %s: %w", envFile, err)
			}
			fileVars = vars
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	}

	if v, ok := lookup("TETHER_API_URL"); ok {
		c.API.URL = strings.TrimRight(v, "/")
	}
	if v, ok := lookup("TETHER_API_TIMEOUT_SECONDS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TETHER_API_TIMEOUT_SECONDS: %w", err)
		}
		c.API.TimeoutSeconds = n
	}
	if v, ok := lookup("TETHER_API_RETRY_MAX"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TETHER_API_RETRY_MAX: %w", err)
		}
		c.API.RetryMax = n
	}
	if v, ok := lookup("TETHER_ORIGIN"); ok {
		c.App.Origin = strings.TrimRight(v, "/")
	}
	if v, ok := lookup("TETHER_WORKSPACE"); ok {
		c.App.WorkspaceID = v
	}
	if v, ok := lookup("TETHER_SESSION_BACKEND"); ok {
		c.Session.Backend = v
	}
	if v, ok := lookup("TETHER_ERROR_POLICY"); ok {
		c.Errors.Policy = ErrorPolicy(v)
	}

	return nil
}
