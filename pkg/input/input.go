package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	reader *bufio.Reader = bufio.NewReader(os.Stdin)
	writer io.Writer     = os.Stdout
)

// SetReader replaces the input source. A nil reader restores os.Stdin.
func SetReader(r io.Reader) {
	if r == nil {
		r = os.Stdin
	}
	reader = bufio.NewReader(r)
}

// SetWriter replaces where prompts are printed. A nil writer restores os.Stdout.
func SetWriter(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	writer = w
}

// Prompt asks the user for text input with an optional default value.
// If the user presses Enter without typing anything, the default is returned.
//
// Example:
//
//	dir := input.Prompt("Output directory", "./web")
//	// Displays: Output directory (./web): _
func Prompt(message, defaultValue string) string {
	if defaultValue != "" {
		fmt.Fprint(writer, promptStyle.Render(message)+" "+
			hintStyle.Render(fmt.Sprintf("(%s)", defaultValue))+": ")
	} else {
		fmt.Fprint(writer, promptStyle.Render(message)+": ")
	}

	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return defaultValue
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return defaultValue
	}
	return line
}

// Confirm asks the user a yes/no question.
// Returns true if the user answers yes (y/Y/yes/YES), false otherwise.
// If defaultYes is true, pressing Enter returns true.
func Confirm(message string, defaultYes bool) bool {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}

	fmt.Fprint(writer, promptStyle.Render(message)+" "+hintStyle.Render(hint)+": ")

	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return defaultYes
	}

	line = strings.TrimSpace(strings.ToLower(line))
	if line == "" {
		return defaultYes
	}

	return line == "y" || line == "yes"
}

// Choose asks the user to pick one of choices by number or name.
// Returns defaultValue on empty input and "" when the answer matches nothing.
func Choose(message string, choices []string, defaultValue string) string {
	for i, c := range choices {
		fmt.Fprintf(writer, "  %s %s\n", hintStyle.Render(fmt.Sprintf("%d)", i+1)), c)
	}

	answer := Prompt(message, defaultValue)
	for i, c := range choices {
		if answer == c || answer == fmt.Sprint(i+1) {
			return c
		}
	}
	return ""
}
