package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/PolarWolf314/tether/internal/audit"
	"github.com/PolarWolf314/tether/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	logLimit     int
	logReverse   bool
	logOperation string
	logJSON      bool
)

// LogCmd prints the local activity log.
var LogCmd = &cobra.Command{
	Use:   "log",
	Short: "View the local activity log",
	Long: `Displays bot activations, integration launches and revocations made
from this machine.

Examples:
  tether log                                   # View full log
  tether log -n 10                             # Last 10 entries
  tether log --reverse                         # Most recent first
  tether log --workspace 62a0f1c2e4b0          # Filter by workspace
  tether log --operation integration-launch    # Filter by operation
  tether log --json                            # JSON output`,
	PersistentPreRun: initLogger,
	RunE:             runLog,
}

func init() {
	addLoggingFlags(LogCmd)
	addWorkspaceFlag(LogCmd)

	LogCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	LogCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	LogCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation")
	LogCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

// GetLogCmd returns the LogCmd for testing.
func GetLogCmd() *cobra.Command {
	return LogCmd
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logReverse = false
	logOperation = ""
	logJSON = false
}

func runLog(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting log command")

	result, err := workflows.Activity(context.Background(), workflows.ActivityOptions{
		Workspace: workspace,
		Operation: logOperation,
		Limit:     logLimit,
		Reverse:   logReverse,
	})
	if err != nil {
		return Logger.ErrorfAndReturn("failed to read activity log: %v", err)
	}

	Logger.Debugf("Parsed %d entries from activity log", result.TotalEntriesBeforeFilter)
	Logger.Debugf("After filtering: %d entries", len(result.Entries))

	if len(result.Entries) == 0 {
		if result.TotalEntriesBeforeFilter == 0 {
			fmt.Println("No activity recorded yet.")
		} else {
			fmt.Println("No activity matching the filters.")
		}
		return nil
	}

	if logJSON {
		return outputLogJSON(result.Entries)
	}

	for _, e := range result.Entries {
		fmt.Printf("%-19s  %-14s  %-18s  %s\n", workflows.FormatDateTime(e.Timestamp), e.Workspace, e.Operation, workflows.FormatDetails(e))
	}
	return nil
}

func outputLogJSON(entries []audit.Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries to JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
