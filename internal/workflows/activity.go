package workflows

import (
	"context"
	"fmt"
	"time"

	"github.com/PolarWolf314/tether/internal/audit"
)

// ActivityOptions configures the activity log workflow.
type ActivityOptions struct {
	// Workspace and Operation filter entries; empty values match everything.
	Workspace string
	Operation string

	// Limit keeps only the last N entries. Zero means no limit.
	Limit   int
	Reverse bool
}

// ActivityResult contains the entries to show.
type ActivityResult struct {
	Entries []audit.Entry

	// TotalEntriesBeforeFilter is the size of the whole log.
	TotalEntriesBeforeFilter int
}

// Activity reads, filters and orders the local activity log.
func Activity(ctx context.Context, opts ActivityOptions) (*ActivityResult, error) {
	entries, err := audit.ReadEntries()
	if err != nil {
		return nil, fmt.Errorf("reading activity log: %w", err)
	}

	result := &ActivityResult{TotalEntriesBeforeFilter: len(entries)}

	filtered := audit.Filter(entries, opts.Workspace, opts.Operation)
	if opts.Limit > 0 && len(filtered) > opts.Limit {
		filtered = filtered[len(filtered)-opts.Limit:]
	}
	if opts.Reverse {
		for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
			filtered[i], filtered[j] = filtered[j], filtered[i]
		}
	}

	result.Entries = filtered
	return result, nil
}

// FormatDateTime renders an entry timestamp in local time, or returns it unchanged if it does not parse.
func FormatDateTime(ts string) string {
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

// FormatDetails describes what an entry touched.
func FormatDetails(e audit.Entry) string {
	switch e.Operation {
	case audit.OpBotActivate, audit.OpBotDeactivate:
		return "bot " + e.BotID
	case audit.OpIntegrationRevoke:
		return e.Integration + " (auth " + e.AuthID + ")"
	default:
		return e.Integration
	}
}
