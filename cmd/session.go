package cmd

import (
	"errors"
	"fmt"
	"strings"

	terrors "github.com/PolarWolf314/tether/internal/errors"
	"github.com/PolarWolf314/tether/internal/secrets"
	"github.com/PolarWolf314/tether/internal/ui"
	"github.com/PolarWolf314/tether/internal/utils"
	"github.com/spf13/cobra"
)

var (
	loginToken           string
	loginPrivateKeyStdin bool
)

// SessionCmd is the top-level session command.
var SessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage the local login session",
	Long: `The session holds your private key, the API access token and the
anti-forgery token of the latest integration launch. It is stored in a
0600 file or in the system keyring, depending on session.backend.`,
	PersistentPreRun: initLogger,
}

func init() {
	addLoggingFlags(SessionCmd)

	sessionLoginCmd.Flags().StringVar(&loginToken, "token", "", "API access token")
	sessionLoginCmd.Flags().BoolVar(&loginPrivateKeyStdin, "private-key-stdin", false, "read the private key from stdin instead of prompting")

	SessionCmd.AddCommand(sessionLoginCmd)
	SessionCmd.AddCommand(sessionLogoutCmd)
	SessionCmd.AddCommand(sessionShowCmd)
}

// GetSessionCmd returns the SessionCmd for testing.
func GetSessionCmd() *cobra.Command {
	return SessionCmd
}

// resetSessionLoginState resets the login command's global state for testing.
func resetSessionLoginState() {
	loginToken = ""
	loginPrivateKeyStdin = false
}

var sessionLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store your private key and access token",
	Long: `Starts a new session. The private key is read without echo from the
terminal, or from stdin with --private-key-stdin. Any anti-forgery token
from an earlier session is dropped.

Examples:
  tether session login --token "$TETHER_TOKEN"
  vault kv get -field=private_key secret/tether | tether session login --private-key-stdin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting session login command")

		var raw []byte
		var err error
		if loginPrivateKeyStdin {
			Logger.Debugf("Reading private key from stdin")
			raw, err = utils.ReadStdin()
		} else {
			raw, err = utils.ReadSecret("Private key: ")
		}
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read private key: %v", err)
		}
		privateKey := strings.TrimSpace(string(raw))

		spinner, cleanup := startSpinner("Starting session...", Logger)
		defer cleanup()

		publicKey, err := secrets.PublicKeyFor(privateKey)
		if err != nil {
			return finish(spinner, err)
		}

		config, err := loadConfig(Logger)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load config: %v", err)
		}
		sess, err := openSession(config, Logger)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open session: %v", err)
		}

		id, err := sess.Begin(privateKey, loginToken)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to start session: %v", err)
		}
		Logger.Infof("Started session %s", id)

		msg := ui.Success.Sprint("✓") + " Logged in " + ui.Muted.Sprint("session "+id) + "\n" +
			"  Public key " + ui.Highlight.Sprint(publicKey)
		if loginToken == "" {
			msg += "\n" + ui.Warning.Sprint("⚠") + " No access token given; requests will be unauthenticated. Pass " + ui.Flag.Sprint("--token") + " to set one."
		}
		spinner.FinalMSG = msg
		return nil
	},
}

var sessionLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove every session value",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting session logout command")

		config, err := loadConfig(Logger)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load config: %v", err)
		}
		sess, err := openSession(config, Logger)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open session: %v", err)
		}

		if err := sess.Clear(); err != nil {
			return Logger.ErrorfAndReturn("failed to clear session: %v", err)
		}

		fmt.Println(ui.Success.Sprint("✓") + " Logged out")
		return nil
	},
}

var sessionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Describe the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting session show command")

		config, err := loadConfig(Logger)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load config: %v", err)
		}
		sess, err := openSession(config, Logger)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open session: %v", err)
		}

		privateKey, err := sess.PrivateKey()
		if errors.Is(err, terrors.ErrPrivateKeyNotFound) {
			fmt.Println(formatError(err))
			return nil
		}
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read session: %v", err)
		}

		publicKey, err := secrets.PublicKeyFor(privateKey)
		if err != nil {
			publicKey = ui.Error.Sprint("invalid private key")
		}

		token := ui.Muted.Sprint("none")
		if t, err := sess.AccessToken(); err == nil {
			token = utils.MaskSecret(t)
		}

		csrf := ui.Muted.Sprint("none")
		if _, err := sess.CSRFToken(); err == nil {
			csrf = "set"
		}

		fmt.Printf("Session         %s\n", sess.ID())
		fmt.Printf("Backend         %s\n", config.Session.Backend)
		fmt.Printf("Public key      %s\n", publicKey)
		fmt.Printf("Access token    %s\n", token)
		fmt.Printf("Launch token    %s\n", csrf)
		return nil
	},
}
