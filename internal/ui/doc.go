// Package ui provides semantic text formatting for tether's terminal output.
//
// Formatters render content according to its meaning (commands, URLs, badges)
// and degrade to plain text decorations when colors are unavailable.
//
// # Semantic Formatters
//
//	ui.Code.Sprint("tether bot activate")      // Commands
//	ui.URL.Sprint("https://github.com/...")    // Links
//	ui.Success.Sprint("✓")                      // Success indicators
//	ui.Error.Sprint("✗")                        // Error indicators
//	ui.Info.Sprint("→")                         // Hints
//	ui.Highlight.Sprint("GitHub")               // User values
//	ui.Muted.Sprint("docs")                     // De-emphasized text
//
// # Badges
//
// Integration tiles carry at most one badge. Badges are colored labels with
// color, and [bracketed] labels without:
//
//	ui.AuthorizedBadge.Sprint("Authorized")  // green
//	ui.ComingSoonBadge.Sprint("Coming Soon") // yellow
//
// # Color Behavior
//
// Colors are disabled when the NO_COLOR environment variable is set (any
// value) or when fatih/color detects a terminal without color support.
package ui
