package generator

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// ConflictResolution represents what to do with an existing file
type ConflictResolution int

const (
	Skip ConflictResolution = iota
	Overwrite
	ShowDiff
	Cancel
)

func (r ConflictResolution) String() string {
	switch r {
	case Skip:
		return "skip"
	case Overwrite:
		return "overwrite"
	case ShowDiff:
		return "diff"
	default:
		return "cancel"
	}
}

// ErrCancelled is returned when the user cancels at a conflict prompt.
var ErrCancelled = errors.New("cancelled by user")

// ConflictStrategy determines how to resolve conflicts
type ConflictStrategy interface {
	Resolve(path string, existing, newer []byte) (ConflictResolution, error)
}

// Resolver decides what happens to a user-owned file that differs from
// what nest would write.
type Resolver struct {
	strategy ConflictStrategy
}

// Lipgloss styles for terminal output
var (
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	borderStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("white")).Bold(true)
)

// NewResolver creates a conflict resolver from the --force/--skip/--diff flags.
// Returns error if --force is combined with --skip or --diff.
//
// With no flag set the resolver prompts when stdin is a terminal and skips
// otherwise, so scripted runs never clobber user edits.
func NewResolver(force, skip, diff bool) (*Resolver, error) {
	if force && (skip || diff) {
		return nil, fmt.Errorf("--force cannot be combined with --skip or --diff")
	}
	return NewResolverWith(selectStrategy(force, skip, diff, isInteractive())), nil
}

// NewResolverWith wraps a custom strategy.
func NewResolverWith(strategy ConflictStrategy) *Resolver {
	return &Resolver{strategy: strategy}
}

// ResolveConflict determines what to do with a file that already exists.
// A ShowDiff answer prints the diff and asks again.
func (r *Resolver) ResolveConflict(path string, existing, newer []byte) (ConflictResolution, error) {
	for {
		res, err := r.strategy.Resolve(path, existing, newer)
		if err != nil || res != ShowDiff {
			return res, err
		}
		fmt.Fprint(os.Stdout, NewDiffGenerator().Unified(path, existing, newer))
	}
}

func selectStrategy(force, skip, diff, interactive bool) ConflictStrategy {
	switch {
	case force:
		return &ForceStrategy{}
	case skip:
		return &SkipStrategy{}
	case diff:
		return &DiffStrategy{Out: os.Stdout, Interactive: interactive}
	case interactive:
		return &InteractiveStrategy{}
	default:
		return &SkipStrategy{}
	}
}

func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// ForceStrategy always overwrites
type ForceStrategy struct{}

func (s *ForceStrategy) Resolve(path string, existing, newer []byte) (ConflictResolution, error) {
	return Overwrite, nil
}

// SkipStrategy always keeps the existing file
type SkipStrategy struct{}

func (s *SkipStrategy) Resolve(path string, existing, newer []byte) (ConflictResolution, error) {
	return Skip, nil
}

// DiffStrategy shows the diff, then prompts when interactive or skips.
type DiffStrategy struct {
	Out         io.Writer
	Interactive bool
}

func (s *DiffStrategy) Resolve(path string, existing, newer []byte) (ConflictResolution, error) {
	gen := NewDiffGenerator()
	gen.Plain = !s.Interactive
	diff := gen.Unified(path, existing, newer)

	if s.Interactive && strings.Count(diff, "\n") > 20 {
		p := tea.NewProgram(newDiffViewerModel(path, diff), tea.WithAltScreen())
		finalModel, err := p.Run()
		if err != nil {
			return Cancel, fmt.Errorf("failed to show diff: %w", err)
		}
		if finalModel.(diffViewerModel).cancelled {
			return Cancel, nil
		}
	} else {
		fmt.Fprint(s.Out, diff)
	}

	if !s.Interactive {
		return Skip, nil
	}
	return (&InteractiveStrategy{}).Resolve(path, existing, newer)
}

// InteractiveStrategy shows a menu with keyboard navigation
type InteractiveStrategy struct{}

func (s *InteractiveStrategy) Resolve(path string, existing, newer []byte) (ConflictResolution, error) {
	fileInfo, err := os.Stat(path)
	if err != nil && !os.IsNotExist(err) {
		return Cancel, fmt.Errorf("failed to stat file: %w", err)
	}

	p := tea.NewProgram(newConflictMenuModel(path, fileInfo))
	finalModel, err := p.Run()
	if err != nil {
		return Cancel, fmt.Errorf("failed to show menu: %w", err)
	}

	result := finalModel.(conflictMenuModel)
	if result.selected == nil {
		return Cancel, nil
	}
	return *result.selected, nil
}

var menuChoices = []struct {
	label      string
	resolution ConflictResolution
}{
	{"Show diff and decide", ShowDiff},
	{"Keep my version", Skip},
	{"Overwrite with generated content", Overwrite},
	{"Cancel", Cancel},
}

type conflictMenuModel struct {
	path     string
	fileInfo os.FileInfo
	cursor   int
	selected *ConflictResolution
}

func newConflictMenuModel(path string, fileInfo os.FileInfo) conflictMenuModel {
	return conflictMenuModel{path: path, fileInfo: fileInfo}
}

func (m conflictMenuModel) Init() tea.Cmd {
	return nil
}

func (m conflictMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(menuChoices)-1 {
			m.cursor++
		}
	case "enter":
		resolution := menuChoices[m.cursor].resolution
		m.selected = &resolution
		return m, tea.Quit
	}
	return m, nil
}

func (m conflictMenuModel) View() string {
	var b strings.Builder

	b.WriteString(warningStyle.Render("⚠️  You edited a file nest also writes: ") + titleStyle.Render(m.path) + "\n")
	if m.fileInfo != nil {
		b.WriteString(mutedStyle.Render("    Last modified: ") + formatRelativeTime(time.Since(m.fileInfo.ModTime())) + "\n")
		b.WriteString(mutedStyle.Render("    Size: ") + formatFileSize(m.fileInfo.Size()) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("    [↑/↓] Navigate    [Enter] Select    [q] Cancel") + "\n\n")

	for i, choice := range menuChoices {
		if m.cursor == i {
			b.WriteString("    " + selectedStyle.Render("> "+choice.label) + "\n")
			continue
		}
		b.WriteString("      " + choice.label + "\n")
	}
	return b.String()
}

type diffViewerModel struct {
	path      string
	diff      string
	viewport  viewport.Model
	ready     bool
	cancelled bool
}

func newDiffViewerModel(path, diff string) diffViewerModel {
	return diffViewerModel{path: path, diff: diff}
}

func (m diffViewerModel) Init() tea.Cmd {
	return nil
}

func (m diffViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		case "q", "esc":
			return m, tea.Quit
		case "up", "k":
			m.viewport.ScrollUp(1)
		case "down", "j":
			m.viewport.ScrollDown(1)
		case "pgup", "b":
			m.viewport.PageUp()
		case "pgdown", "f", "space":
			m.viewport.PageDown()
		}

	case tea.WindowSizeMsg:
		const verticalMargin = 5 // header + footer
		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, msg.Height-verticalMargin)
			m.viewport.SetContent(m.diff)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = msg.Height - verticalMargin
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m diffViewerModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	title := fmt.Sprintf("─ Diff: %s ", m.path)
	b.WriteString(borderStyle.Render(fmt.Sprintf("┌%s%s┐\n", title, strings.Repeat("─", max(0, m.viewport.Width-len(title)+4)))))

	for _, line := range strings.Split(m.viewport.View(), "\n") {
		b.WriteString(borderStyle.Render("│") + " " + line)
		b.WriteString(strings.Repeat(" ", max(0, m.viewport.Width-len(line)-1)) + borderStyle.Render("│") + "\n")
	}

	footer := " [↑/↓] Scroll    [q] Return to menu "
	b.WriteString(borderStyle.Render(fmt.Sprintf("└%s%s┘\n", strings.Repeat("─", max(0, m.viewport.Width-len(footer)+4)), footer)))
	return b.String()
}

// formatRelativeTime renders an age such as "2 hours ago"
func formatRelativeTime(age time.Duration) string {
	units := []struct {
		size time.Duration
		name string
	}{
		{365 * 24 * time.Hour, "year"},
		{30 * 24 * time.Hour, "month"},
		{7 * 24 * time.Hour, "week"},
		{24 * time.Hour, "day"},
		{time.Hour, "hour"},
		{time.Minute, "minute"},
	}
	for _, u := range units {
		if age >= u.size {
			n := int(age / u.size)
			if n == 1 {
				return fmt.Sprintf("1 %s ago", u.name)
			}
			return fmt.Sprintf("%d %ss ago", n, u.name)
		}
	}
	return "just now"
}

// formatFileSize formats file size in human-readable format
func formatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
