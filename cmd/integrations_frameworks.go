package cmd

import (
	"fmt"

	"github.com/PolarWolf314/tether/internal/integrations"
	"github.com/spf13/cobra"
)

var integrationsFrameworksCmd = &cobra.Command{
	Use:   "frameworks",
	Short: "List framework integrations",
	Long: `Prints the frameworks tether documents an integration for, with a
link to each guide. This does not contact the backend.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting integrations frameworks command")

		frameworks, err := integrations.FrameworkCatalog()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load framework catalog: %v", err)
		}
		Logger.Debugf("Loaded %d frameworks", len(frameworks))

		fmt.Print(renderFrameworks(frameworks))
		return nil
	},
}
