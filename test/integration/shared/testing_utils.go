// Package shared contains testing utilities shared between integration tests.
// This file provides common functions for setting up test environments,
// capturing output, and building the CLI under test.
package shared

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/tether/cmd"
	"github.com/PolarWolf314/tether/internal/configs"
	"github.com/PolarWolf314/tether/internal/secrets"
	"github.com/PolarWolf314/tether/internal/session"
	"github.com/PolarWolf314/tether/internal/workflows"
	"github.com/spf13/cobra"
)

// SetupTestEnvironment moves into a temp directory, points user settings at
// another one and resets command state. Colors are disabled so output can be
// matched as plain text.
func SetupTestEnvironment(t *testing.T) {
	t.Helper()

	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	originalUserSettings := configs.UserTetherSettings

	tempDir := t.TempDir()
	tempUserDir := t.TempDir()

	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
		configs.UserTetherSettings = originalUserSettings
		cmd.ResetGlobalState()
		cmd.SetStdin(os.Stdin)
	})

	configs.UserTetherSettings = &configs.UserSettings{
		UserConfigsPath: filepath.Join(tempUserDir, "config"),
		UserDataPath:    filepath.Join(tempUserDir, "data"),
	}

	t.Setenv("NO_COLOR", "1")
	for _, key := range []string{
		"TETHER_API_URL", "TETHER_API_TIMEOUT_SECONDS", "TETHER_API_RETRY_MAX",
		"TETHER_ORIGIN", "TETHER_WORKSPACE", "TETHER_SESSION_BACKEND", "TETHER_ERROR_POLICY",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cmd.ResetGlobalState()
}

// WriteConfig saves a config pointing at the given backend and workspace.
func WriteConfig(t *testing.T, apiURL, workspaceID string, policy configs.ErrorPolicy) {
	t.Helper()
	config := configs.DefaultConfig()
	config.API.URL = apiURL
	config.API.TimeoutSeconds = 5
	config.App.Origin = TestOrigin
	config.App.WorkspaceID = workspaceID
	config.Errors.Policy = policy
	if err := configs.SaveConfig(config); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}
}

// Login starts a file-backed session holding privateKey and token.
func Login(t *testing.T, privateKey, token string) *session.Session {
	t.Helper()
	sess := session.New(session.NewFileStore(configs.SessionFilePath()))
	if _, err := sess.Begin(privateKey, token); err != nil {
		t.Fatalf("Failed to start session: %v", err)
	}
	return sess
}

// OpenSession reopens the file-backed session written by the CLI.
func OpenSession() *session.Session {
	return session.New(session.NewFileStore(configs.SessionFilePath()))
}

// GenerateKeyPair returns a fresh base64 key pair.
func GenerateKeyPair(t *testing.T) (publicKey, privateKey string) {
	t.Helper()
	pub, priv, err := secrets.GenerateKeyPair()
	if err != nil {
		t.Fatalf("Failed to generate key pair: %v", err)
	}
	return pub, priv
}

// CaptureOutput captures both stdout and stderr during function execution.
func CaptureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	outputChan := make(chan string, 2)

	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stdoutReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stderrReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}

// WithStdin replaces os.Stdin with a pipe carrying data for the duration of fn.
func WithStdin(t *testing.T, data string, fn func() error) error {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create stdin pipe: %v", err)
	}
	if _, err := w.WriteString(data); err != nil {
		t.Fatalf("Failed to write stdin: %v", err)
	}
	w.Close()

	original := os.Stdin
	os.Stdin = r
	defer func() {
		os.Stdin = original
		r.Close()
	}()

	return fn()
}

// CreateTestCLI creates a complete CLI instance running the given arguments.
func CreateTestCLI(args ...string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "tether",
		Short:        "Tether - connect a secrets workspace to third-party services.",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cmd.GetIntegrationsCmd())
	rootCmd.AddCommand(cmd.GetBotCmd())
	rootCmd.AddCommand(cmd.GetSessionCmd())
	rootCmd.AddCommand(cmd.GetConfigCmd())
	rootCmd.AddCommand(cmd.GetLogCmd())

	rootCmd.SetArgs(args)
	return rootCmd
}

// Run executes the CLI with args and returns everything it printed.
// Flag values from earlier runs are cleared first.
func Run(args ...string) (string, error) {
	cmd.ResetGlobalState()
	return CaptureOutput(func() error {
		return CreateTestCLI(args...).Execute()
	})
}

// RecordingNavigator remembers the URLs it was asked to open.
type RecordingNavigator struct {
	URLs []string
}

func (n *RecordingNavigator) Navigate(url string) error {
	n.URLs = append(n.URLs, url)
	return nil
}

// UseNavigator installs a recording navigator for the test.
func UseNavigator(t *testing.T) *RecordingNavigator {
	t.Helper()
	n := &RecordingNavigator{}
	cmd.SetNavigator(n)
	t.Cleanup(func() {
		cmd.SetNavigator(workflows.BrowserNavigator{})
	})
	return n
}
