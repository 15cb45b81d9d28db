package audit

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/PolarWolf314/tether/internal/configs"
)

func withDataDir(t *testing.T) string {
	t.Helper()
	dataDir := filepath.Join(t.TempDir(), "data")

	original := configs.UserTetherSettings
	configs.UserTetherSettings = &configs.UserSettings{
		UserConfigsPath: filepath.Join(t.TempDir(), "config"),
		UserDataPath:    dataDir,
	}
	t.Cleanup(func() {
		configs.UserTetherSettings = original
	})
	return dataDir
}

func TestLog_CreatesFile(t *testing.T) {
	dataDir := withDataDir(t)

	Log(Entry{Operation: OpIntegrationLaunch, Workspace: "ws-1", Integration: "GitHub"})

	logPath := filepath.Join(dataDir, "activity.jsonl")
	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("Activity log file was not created: %v", err)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm() != 0600 {
		t.Errorf("Expected permissions 0600, got %o", info.Mode().Perm())
	}
}

func TestLog_AppendsEntries(t *testing.T) {
	withDataDir(t)

	Log(Entry{Operation: OpBotActivate, Workspace: "ws-1", BotID: "bot-1"})
	Log(Entry{Operation: OpIntegrationLaunch, Workspace: "ws-1", Integration: "Vercel"})
	Log(Entry{Operation: OpIntegrationRevoke, Workspace: "ws-2", AuthID: "auth-9"})

	entries, err := ReadEntries()
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}

	if entries[0].BotID != "bot-1" || entries[1].Integration != "Vercel" || entries[2].AuthID != "auth-9" {
		t.Errorf("Entries out of order or incomplete: %+v", entries)
	}
}

func TestLog_TimestampFormat(t *testing.T) {
	withDataDir(t)

	Log(Entry{Operation: OpBotActivate})

	entries, err := ReadEntries()
	if err != nil || len(entries) != 1 {
		t.Fatalf("ReadEntries() = %v, %v", entries, err)
	}

	ts := entries[0].Timestamp
	if !strings.HasSuffix(ts, "Z") {
		t.Errorf("Timestamp %q should be UTC", ts)
	}
	if _, err := time.Parse("2006-01-02T15:04:05.000000Z", ts); err != nil {
		t.Errorf("Timestamp %q has unexpected format: %v", ts, err)
	}
}

func TestLog_OmitsEmptyFields(t *testing.T) {
	dataDir := withDataDir(t)

	Log(Entry{Operation: OpBotActivate, Workspace: "ws-1"})

	data, err := os.ReadFile(filepath.Join(dataDir, "activity.jsonl"))
	if err != nil {
		t.Fatalf("Failed to read log: %v", err)
	}

	line := string(data)
	for _, field := range []string{`"integration"`, `"auth"`, `"bot"`, `"session"`} {
		if strings.Contains(line, field) {
			t.Errorf("Expected %s to be omitted, got: %s", field, line)
		}
	}
}

func TestLog_NoDataDir(t *testing.T) {
	original := configs.UserTetherSettings
	configs.UserTetherSettings = &configs.UserSettings{}
	defer func() {
		configs.UserTetherSettings = original
	}()

	// Must not panic or create files.
	Log(Entry{Operation: OpBotActivate})

	if LogPath() != "" {
		t.Errorf("Expected empty log path, got %q", LogPath())
	}
	entries, err := ReadEntries()
	if err != nil || entries != nil {
		t.Errorf("ReadEntries() = %v, %v, want nil, nil", entries, err)
	}
}

func TestReadEntries_NoLog(t *testing.T) {
	withDataDir(t)

	entries, err := ReadEntries()
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no entries, got %d", len(entries))
	}
}

func TestParseEntries_SkipsMalformedLines(t *testing.T) {
	data := []byte(`{"ts":"2026-01-01T00:00:00.000000Z","op":"bot-activate"}
not json
{"ts":"2026-01-01T00:00:01.000000Z","op":"integration-launch","integration":"GitHub"}
`)

	entries, err := ParseEntries(data)
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[1].Integration != "GitHub" {
		t.Errorf("Expected GitHub, got %q", entries[1].Integration)
	}
}

func TestParseEntries_EmptyData(t *testing.T) {
	entries, err := ParseEntries(nil)
	if err != nil || entries != nil {
		t.Errorf("ParseEntries(nil) = %v, %v", entries, err)
	}
}

func TestFilter(t *testing.T) {
	entries := []Entry{
		{Operation: OpBotActivate, Workspace: "ws-1"},
		{Operation: OpIntegrationLaunch, Workspace: "ws-1"},
		{Operation: OpIntegrationLaunch, Workspace: "ws-2"},
	}

	if got := Filter(entries, "", ""); len(got) != 3 {
		t.Errorf("Filter(all) = %d entries, want 3", len(got))
	}
	if got := Filter(entries, "ws-1", ""); len(got) != 2 {
		t.Errorf("Filter(ws-1) = %d entries, want 2", len(got))
	}
	if got := Filter(entries, "", OpIntegrationLaunch); len(got) != 2 {
		t.Errorf("Filter(launch) = %d entries, want 2", len(got))
	}
	if got := Filter(entries, "ws-2", OpBotActivate); len(got) != 0 {
		t.Errorf("Filter(ws-2, activate) = %d entries, want 0", len(got))
	}
}
