package configs

import (
	"log"
	"os"
	"path/filepath"
)

type UserSettings struct {
	UserConfigsPath string
	UserDataPath    string
}

var UserTetherSettings *UserSettings

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("error getting home directory: %s", err)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Fatalf("error getting config directory: %s", err)
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	UserTetherSettings = &UserSettings{
		UserConfigsPath: filepath.Join(configDir, "tether"),
		UserDataPath:    filepath.Join(dataDir, "tether"),
	}
}

// ConfigFilePath returns the path of the user's config.toml.
func ConfigFilePath() string {
	return filepath.Join(UserTetherSettings.UserConfigsPath, "config.toml")
}

// EnvFilePath returns the path of the optional dotenv file holding TETHER_* overrides.
func EnvFilePath() string {
	return filepath.Join(UserTetherSettings.UserConfigsPath, "tether.env")
}

// SessionFilePath returns the path of the file-backed session store.
func SessionFilePath() string {
	return filepath.Join(UserTetherSettings.UserDataPath, "session.toml")
}

// ActivityLogPath returns the path of the local activity log.
func ActivityLogPath() string {
	return filepath.Join(UserTetherSettings.UserDataPath, "activity.jsonl")
}
