package main

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/tether/cmd"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tether",
	Short: "Tether - connect a secrets workspace to third-party services.",
	Long: `Tether links a secrets workspace to cloud providers such as GitHub,
Heroku, Vercel and Netlify.

Usage:
  tether <command> [flags]

Available Commands:
  integrations  List, connect and revoke integrations
  bot           Inspect and activate the workspace bot
  session       Log in and out
  config        Manage configuration
  log           View the local activity log

Run 'tether help <command>' for more details on a specific command.
`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Welcome to Tether! Run 'tether --help' to see available commands.")
	},
}

func init() {
	rootCmd.AddCommand(cmd.IntegrationsCmd)
	rootCmd.AddCommand(cmd.BotCmd)
	rootCmd.AddCommand(cmd.SessionCmd)
	rootCmd.AddCommand(cmd.ConfigCmd)
	rootCmd.AddCommand(cmd.LogCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
