package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	keyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("white")).Bold(true)

	verboseMode bool
	out         io.Writer = os.Stdout
)

// SetVerbose enables or disables verbose output for debugging.
// This should be called by the CLI when the --verbose flag is set.
func SetVerbose(v bool) {
	verboseMode = v
}

// IsVerbose reports whether verbose output is enabled.
func IsVerbose() bool {
	return verboseMode
}

// SetWriter redirects all output. A nil writer restores os.Stdout.
func SetWriter(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	out = w
}

// Success prints a success message with 🪺 emoji and green color.
//
// Example:
//
//	output.Success("Created project: web")
func Success(msg string) {
	fmt.Fprintln(out, successStyle.Render("🪺 "+msg))
}

// Error prints an error message with ❌ emoji and red color.
func Error(msg string) {
	fmt.Fprintln(out, errorStyle.Render("❌ "+msg))
}

// Warn prints a non-fatal problem with ⚠️ emoji and yellow color.
// Use this for recoverable failures such as post-synthesis formatting.
func Warn(msg string) {
	fmt.Fprintln(out, warnStyle.Render("⚠️  "+msg))
}

// Info prints an informational message with ℹ️ emoji and cyan color.
func Info(msg string) {
	fmt.Fprintln(out, infoStyle.Render("ℹ️  "+msg))
}

// Step prints an indented step message in gray.
//
// Example:
//
//	output.Step("cd web")
//	output.Step("npm install")
func Step(msg string) {
	fmt.Fprintln(out, stepStyle.Render("   "+msg))
}

// Item prints an indented key followed by a muted description.
// Used for listings such as templates and their options.
func Item(key, description string) {
	if description == "" {
		fmt.Fprintln(out, "   "+keyStyle.Render(key))
		return
	}
	fmt.Fprintln(out, "   "+keyStyle.Render(key)+"  "+stepStyle.Render(description))
}

// Verbose prints a debug message with 🔍 emoji only if verbose mode is enabled.
//
// Example:
//
//	output.Verbose("Resolved 14 options for template nextjs")
func Verbose(msg string) {
	if verboseMode {
		fmt.Fprintln(out, stepStyle.Render("🔍 "+msg))
	}
}
