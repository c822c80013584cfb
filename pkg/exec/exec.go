package exec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// CommandFunc builds the process for a command. exec.Command by default.
type CommandFunc func(name string, args ...string) *exec.Cmd

// Executor runs external commands
type Executor struct {
	stdout io.Writer
	stderr io.Writer
	env    []string
	dir    string

	commandFunc CommandFunc
}

// Options configures command execution
type Options struct {
	Stdout      io.Writer
	Stderr      io.Writer
	Env         []string    // Additional environment variables
	Dir         string      // Working directory
	CommandFunc CommandFunc // Process factory (defaults to exec.Command)
}

// NewExecutor creates an executor with sensible defaults
func NewExecutor(opts *Options) *Executor {
	if opts == nil {
		opts = &Options{}
	}

	e := &Executor{
		stdout:      opts.Stdout,
		stderr:      opts.Stderr,
		env:         opts.Env,
		dir:         opts.Dir,
		commandFunc: opts.CommandFunc,
	}
	if e.stdout == nil {
		e.stdout = os.Stdout
	}
	if e.stderr == nil {
		e.stderr = os.Stderr
	}
	if e.commandFunc == nil {
		e.commandFunc = exec.Command
	}
	return e
}

// Dir returns the executor's working directory.
func (e *Executor) Dir() string {
	return e.dir
}

// Run executes a command and waits for it, killing it if ctx is cancelled.
func (e *Executor) Run(ctx context.Context, name string, args ...string) error {
	cmd := e.commandFunc(name, args...)

	if e.dir != "" {
		cmd.Dir = e.dir
	}
	if len(e.env) > 0 {
		cmd.Env = append(os.Environ(), e.env...)
	}

	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr

	if err := cmd.Start(); err != nil {
		if isCommandNotFound(err) {
			return enhanceError(err, name)
		}
		return fmt.Errorf("failed to start %s: %w", name, err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- cmd.Wait()
	}()

	select {
	case <-ctx.Done():
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
		return fmt.Errorf("%s cancelled: %w", name, ctx.Err())
	case err := <-errCh:
		if err != nil {
			if isCommandNotFound(err) {
				return enhanceError(err, name)
			}
			return fmt.Errorf("%s failed: %w", name, err)
		}
		return nil
	}
}

// RunShell runs a command line through sh -c. Task commands are stored as
// single strings, so they may contain pipes, && and environment assignments.
func (e *Executor) RunShell(ctx context.Context, commandLine string) error {
	if strings.TrimSpace(commandLine) == "" {
		return errors.New("empty command")
	}
	return e.Run(ctx, "sh", "-c", commandLine)
}

// RunWithSpinner runs a command with a progress spinner on stderr.
// Command output is discarded; only the outcome is shown.
func (e *Executor) RunWithSpinner(ctx context.Context, message string, name string, args ...string) error {
	stdoutPipe, stdoutWriter := io.Pipe()
	stderrPipe, stderrWriter := io.Pipe()

	piped := &Executor{
		stdout:      stdoutWriter,
		stderr:      stderrWriter,
		env:         e.env,
		dir:         e.dir,
		commandFunc: e.commandFunc,
	}

	done := make(chan error, 1)
	go func() {
		err := piped.Run(ctx, name, args...)
		stdoutWriter.Close()
		stderrWriter.Close()
		done <- err
	}()

	p := tea.NewProgram(newSpinnerModel(message), tea.WithOutput(e.stderr), tea.WithInput(nil))
	go func() {
		_, _ = p.Run()
	}()

	go io.Copy(io.Discard, stdoutPipe)
	go io.Copy(io.Discard, stderrPipe)

	err := <-done
	p.Send(spinnerDoneMsg{err: err})

	// Give spinner time to render final state
	time.Sleep(50 * time.Millisecond)
	p.Quit()

	return err
}

// spinnerModel is the bubbletea model for the spinner
type spinnerModel struct {
	spinner spinner.Model
	message string
	done    bool
	err     error
}

type spinnerDoneMsg struct {
	err error
}

func newSpinnerModel(message string) *spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return &spinnerModel{
		spinner: s,
		message: message,
	}
}

func (m *spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		if !m.done {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *spinnerModel) View() string {
	if m.done {
		if m.err != nil {
			return fmt.Sprintf("❌ %s\n", m.message)
		}
		return fmt.Sprintf("✅ %s\n", m.message)
	}
	return fmt.Sprintf("%s %s...", m.spinner.View(), m.message)
}

// IsNotFound reports whether err means the command binary was missing.
func IsNotFound(err error) bool {
	return errors.Is(err, errNotFound) || isCommandNotFound(err)
}

var errNotFound = errors.New("command not found")

// isCommandNotFound checks if an error indicates a command was not found
func isCommandNotFound(err error) bool {
	if err == nil {
		return false
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 127 {
		return true
	}
	return errors.Is(err, exec.ErrNotFound) ||
		strings.Contains(err.Error(), "executable file not found") ||
		strings.Contains(err.Error(), "command not found")
}

// enhanceError adds helpful message for missing commands
func enhanceError(err error, cmd string) error {
	return fmt.Errorf("%w: %s (%v)\n💡 Install '%s' and try again", errNotFound, cmd, err, cmd)
}
