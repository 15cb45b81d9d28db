package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/PolarWolf314/tether/internal/api"
	"github.com/PolarWolf314/tether/internal/configs"
	terrors "github.com/PolarWolf314/tether/internal/errors"
	logger "github.com/PolarWolf314/tether/internal/logging"
	"github.com/PolarWolf314/tether/internal/session"
	"github.com/PolarWolf314/tether/internal/ui"
	"github.com/PolarWolf314/tether/internal/workflows"
	"github.com/briandowns/spinner"
)

var (
	// navigator opens provider authorization pages.
	navigator workflows.Navigator = workflows.BrowserNavigator{}

	// stdin answers confirmation prompts.
	stdin io.Reader = os.Stdin
)

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// automatically calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(message string, l logger.Logger) (*spinner.Spinner, func()) {
	l.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		l.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !l.Verbose && !l.Debug
	if quiet {
		s.Start()
		log.SetOutput(io.Discard)
	} else {
		l.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		// Print to stdout so tests can capture it.
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// loadConfig reads the config file, applies TETHER_* overrides and validates the result.
func loadConfig(l logger.Logger) (*configs.Config, error) {
	l.Debugf("Loading config from %s", configs.ConfigFilePath())
	config, err := configs.LoadConfig()
	if err != nil {
		return nil, err
	}

	if err := config.ApplyEnv(configs.EnvFilePath()); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

// openSession opens the configured session store.
func openSession(config *configs.Config, l logger.Logger) (*session.Session, error) {
	l.Debugf("Opening %s session store", config.Session.Backend)
	store, err := session.OpenStore(config.Session.Backend)
	if err != nil {
		return nil, err
	}
	return session.New(store), nil
}

// commandEnv is everything a command needs to talk to the backend.
type commandEnv struct {
	Config      *configs.Config
	Session     *session.Session
	Client      *api.Client
	WorkspaceID string
}

// setupRuntime loads config and session and builds an API client.
// The workspace flag wins over the configured workspace.
func setupRuntime(l logger.Logger, workspaceFlag string) (*commandEnv, error) {
	config, err := loadConfig(l)
	if err != nil {
		return nil, err
	}

	sess, err := openSession(config, l)
	if err != nil {
		return nil, err
	}

	token, err := sess.AccessToken()
	if err != nil && !errors.Is(err, terrors.ErrAccessTokenNotFound) {
		return nil, err
	}
	if token == "" {
		l.Debugf("No access token in session, sending unauthenticated requests")
	}

	workspaceID := workspaceFlag
	if workspaceID == "" {
		workspaceID = config.App.WorkspaceID
	}
	l.Debugf("Using workspace %q against %s", workspaceID, config.API.URL)

	client := api.NewClient(api.Options{
		BaseURL:     config.API.URL,
		AccessToken: token,
		Timeout:     config.Timeout(),
		RetryMax:    config.API.RetryMax,
		Logger:      l,
	})

	return &commandEnv{
		Config:      config,
		Session:     sess,
		Client:      client,
		WorkspaceID: workspaceID,
	}, nil
}

// formatError turns a workflow error into a message for the user.
func formatError(err error) string {
	switch {
	case errors.Is(err, terrors.ErrPrivateKeyNotFound):
		return ui.Error.Sprint("✗") + " No private key in the session\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("tether session login") + " first"

	case errors.Is(err, terrors.ErrWorkspaceRequired):
		return ui.Error.Sprint("✗") + " No workspace selected\n" +
			ui.Info.Sprint("→") + " Pass " + ui.Flag.Sprint("--workspace") + " or run " +
			ui.Code.Sprint("tether config init --workspace <id>")

	case errors.Is(err, terrors.ErrBotNotFound):
		return ui.Error.Sprint("✗") + " This workspace has no bot"

	case errors.Is(err, terrors.ErrBotInactive):
		return ui.Error.Sprint("✗") + " The workspace bot is not active\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("tether bot activate") + " first"

	case errors.Is(err, terrors.ErrIntegrationNotFound):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("tether integrations list") + " to see the available integrations"

	case errors.Is(err, terrors.ErrIntegrationUnavailable):
		return ui.Warning.Sprint("⚠") + " This integration is coming soon"

	case errors.Is(err, terrors.ErrNotAuthorized):
		return ui.Warning.Sprint("⚠") + " This integration is not authorized, nothing to revoke"

	case errors.Is(err, terrors.ErrKeyDecryptFailed):
		return ui.Error.Sprint("✗") + " Could not decrypt the workspace key\n" +
			ui.Info.Sprint("→") + " Check that the session holds your private key: " + ui.Code.Sprint("tether session show")

	case errors.Is(err, terrors.ErrInvalidKey):
		return ui.Error.Sprint("✗") + " " + err.Error()

	case errors.Is(err, terrors.ErrBackendRejected):
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			return ui.Error.Sprint("✗") + " Backend rejected the request: " + apiErr.Message +
				" " + ui.Muted.Sprintf("HTTP %d", apiErr.StatusCode)
		}
		return ui.Error.Sprint("✗") + " " + err.Error()

	case errors.Is(err, terrors.ErrBackendUnavailable):
		return ui.Error.Sprint("✗") + " Could not reach the backend\n" +
			ui.Info.Sprint("→") + " Check " + ui.Code.Sprint("api.url") + " with " + ui.Code.Sprint("tether config show")

	default:
		return ui.Error.Sprint("✗") + " " + err.Error()
	}
}

// isUnexpectedError returns true if the error should cause a non-zero exit.
func isUnexpectedError(err error) bool {
	switch {
	case errors.Is(err, terrors.ErrPrivateKeyNotFound),
		errors.Is(err, terrors.ErrWorkspaceRequired),
		errors.Is(err, terrors.ErrBotNotFound),
		errors.Is(err, terrors.ErrBotInactive),
		errors.Is(err, terrors.ErrIntegrationNotFound),
		errors.Is(err, terrors.ErrIntegrationUnavailable),
		errors.Is(err, terrors.ErrNotAuthorized):
		return false
	default:
		return true
	}
}

// finish sets the spinner's final message for err and decides the exit status.
func finish(s *spinner.Spinner, err error) error {
	s.FinalMSG = formatError(err)
	if isUnexpectedError(err) {
		return err
	}
	return nil
}

// reportLoadError applies the configured error policy to a failed load.
// It returns the text to show before the partial dashboard, if any.
func reportLoadError(config *configs.Config, l logger.Logger, err error) string {
	if config.Errors.Policy == configs.PolicyBanner {
		return ui.Banner("Failed to load workspace", err.Error())
	}
	l.Infof("Load failed, showing partial data: %v", err)
	return ""
}
