package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Formatter applies semantic formatting to text.
type Formatter struct {
	color  *color.Color
	prefix string
	suffix string
}

// Sprint formats the arguments and returns the resulting string.
func (f Formatter) Sprint(a ...interface{}) string {
	text := fmt.Sprint(a...)
	if noColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

// Sprintf formats according to a format specifier and returns the resulting string.
func (f Formatter) Sprintf(format string, a ...interface{}) string {
	text := fmt.Sprintf(format, a...)
	if noColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

// EnsureNewline ensures the string ends with a newline character.
func EnsureNewline(s string) string {
	if len(s) == 0 || s[len(s)-1] != '\n' {
		return s + "\n"
	}
	return s
}

// Banner renders a boxed error block used when load failures are surfaced to the user.
func Banner(title, body string) string {
	lines := []string{title}
	if body != "" {
		lines = append(lines, strings.Split(strings.TrimRight(body, "\n"), "\n")...)
	}

	width := 0
	for _, line := range lines {
		if n := len([]rune(line)); n > width {
			width = n
		}
	}

	rule := strings.Repeat("─", width+2)
	var b strings.Builder
	b.WriteString(Error.Sprint("┌" + rule + "┐"))
	b.WriteString("\n")
	for i, line := range lines {
		pad := strings.Repeat(" ", width-len([]rune(line)))
		text := line
		if i == 0 {
			text = Error.Sprint(line)
		}
		b.WriteString(Error.Sprint("│") + " " + text + pad + " " + Error.Sprint("│") + "\n")
	}
	b.WriteString(Error.Sprint("└" + rule + "┘"))
	return b.String()
}

// noColor returns true if color output should be disabled.
func noColor() bool {
	// https://no-color.org/
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return true
	}
	return color.NoColor
}

// Semantic formatters for different types of CLI output.
var (
	// Code formats runnable commands.
	// Yellow with color, `backticks` without.
	Code = Formatter{color.New(color.FgYellow), "`", "`"}

	// Flag formats CLI flags like --verbose or --yes.
	// Yellow with color, no decoration without (-- prefix is sufficient).
	Flag = Formatter{color.New(color.FgYellow), "", ""}

	// URL formats links such as docs pages and OAuth redirects.
	// Underlined blue with color, <angle brackets> without.
	URL = Formatter{color.New(color.FgBlue, color.Underline), "<", ">"}

	// Success formats success indicators and messages.
	Success = Formatter{color.New(color.FgGreen), "", ""}

	// Error formats error indicators and messages.
	Error = Formatter{color.New(color.FgRed), "", ""}

	// Warning formats warning indicators and messages.
	Warning = Formatter{color.New(color.FgYellow), "", ""}

	// Info formats informational hints and directional indicators.
	Info = Formatter{color.New(color.FgCyan), "", ""}

	// Highlight formats emphasized user values like provider and workspace names.
	// Cyan with color, 'single quotes' without.
	Highlight = Formatter{color.New(color.FgCyan), "'", "'"}

	// Muted formats de-emphasized or secondary text.
	// Gray with color, (parentheses) without.
	Muted = Formatter{color.New(color.FgHiBlack), "(", ")"}

	// AuthorizedBadge marks a tile whose provider has been authorized.
	AuthorizedBadge = Formatter{color.New(color.FgBlack, color.BgGreen), "[", "]"}

	// ComingSoonBadge marks a tile whose provider is not yet available.
	ComingSoonBadge = Formatter{color.New(color.FgBlack, color.BgYellow), "[", "]"}

	// RevokeBadge marks the revoke action on an authorized tile.
	RevokeBadge = Formatter{color.New(color.FgWhite, color.BgRed), "[", "]"}
)
