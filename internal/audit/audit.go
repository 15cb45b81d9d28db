package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/PolarWolf314/tether/internal/configs"
)

// Operation names.
const (
	OpBotActivate       = "bot-activate"
	OpBotDeactivate     = "bot-deactivate"
	OpIntegrationLaunch = "integration-launch"
	OpIntegrationRevoke = "integration-revoke"
)

// Entry represents a single activity log entry.
type Entry struct {
	Timestamp string `json:"ts"`
	Operation string `json:"op"`
	Workspace string `json:"workspace,omitempty"`
	Session   string `json:"session,omitempty"`

	Integration string `json:"integration,omitempty"` // For launch/revoke.
	BotID       string `json:"bot,omitempty"`         // For bot operations.
	AuthID      string `json:"auth,omitempty"`        // For revoke.
}

// Log appends an entry to the activity log.
// Operations should not fail just because logging failed.
func Log(entry Entry) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	logPath := LogPath()
	if logPath == "" {
		return
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// LogPath returns the path to the activity log, or "" when no data directory is configured.
func LogPath() string {
	if configs.UserTetherSettings == nil || configs.UserTetherSettings.UserDataPath == "" {
		return ""
	}
	return configs.ActivityLogPath()
}

// ReadEntries reads all entries from the activity log.
// Returns an empty slice if the log doesn't exist.
func ReadEntries() ([]Entry, error) {
	logPath := LogPath()
	if logPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

// Filter returns the entries matching a workspace and operation; empty arguments match everything.
func Filter(entries []Entry, workspace, op string) []Entry {
	var out []Entry
	for _, e := range entries {
		if workspace != "" && e.Workspace != workspace {
			continue
		}
		if op != "" && e.Operation != op {
			continue
		}
		out = append(out, e)
	}
	return out
}
