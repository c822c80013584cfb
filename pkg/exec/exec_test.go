package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCommand re-executes the test binary as a fake external command
func mockCommand(name string, args ...string) *exec.Cmd {
	cs := []string{"-test.run=TestHelperProcess", "--", name}
	cs = append(cs, args...)
	cmd := exec.Command(os.Args[0], cs...)
	cmd.Env = []string{"GO_WANT_HELPER_PROCESS=1"}
	return cmd
}

// TestHelperProcess is the fake command implementation
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	args := os.Args
	for i, arg := range args {
		if arg == "--" {
			args = args[i+1:]
			break
		}
	}

	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "no command specified\n")
		os.Exit(1)
	}

	switch args[0] {
	case "echo":
		if len(args) > 1 {
			fmt.Println(strings.Join(args[1:], " "))
		}
		os.Exit(0)
	case "sleep":
		time.Sleep(10 * time.Second)
		os.Exit(0)
	case "error":
		fmt.Fprintf(os.Stderr, "error occurred\n")
		os.Exit(1)
	case "success":
		fmt.Println("command succeeded")
		os.Exit(0)
	case "notfound":
		os.Exit(127)
	case "sh":
		// sh -c <line>
		line := args[len(args)-1]
		if strings.HasPrefix(line, "fail") {
			fmt.Fprintln(os.Stderr, "task failed")
			os.Exit(2)
		}
		fmt.Println("ran: " + line)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		os.Exit(1)
	}
}

func newMockExecutor(stdout, stderr *bytes.Buffer) *Executor {
	return NewExecutor(&Options{
		Stdout:      stdout,
		Stderr:      stderr,
		CommandFunc: mockCommand,
	})
}

func TestNewExecutor(t *testing.T) {
	executor := NewExecutor(nil)
	assert.NotNil(t, executor)
	assert.Equal(t, os.Stdout, executor.stdout)
	assert.Equal(t, os.Stderr, executor.stderr)
	assert.NotNil(t, executor.commandFunc)

	var stdout, stderr bytes.Buffer
	executor = NewExecutor(&Options{
		Stdout: &stdout,
		Stderr: &stderr,
		Env:    []string{"TEST=1"},
		Dir:    "/tmp",
	})
	assert.Equal(t, &stdout, executor.stdout)
	assert.Equal(t, &stderr, executor.stderr)
	assert.Equal(t, []string{"TEST=1"}, executor.env)
	assert.Equal(t, "/tmp", executor.Dir())
}

func TestExecutor_Run(t *testing.T) {
	var stdout, stderr bytes.Buffer
	executor := newMockExecutor(&stdout, &stderr)

	err := executor.Run(context.Background(), "echo", "hello", "world")
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "hello world")
}

func TestExecutor_RunWithError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	executor := newMockExecutor(&stdout, &stderr)

	err := executor.Run(context.Background(), "error")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error failed")
	assert.Contains(t, stderr.String(), "error occurred")
	assert.False(t, IsNotFound(err))
}

func TestExecutor_NotFound(t *testing.T) {
	var stdout, stderr bytes.Buffer
	executor := newMockExecutor(&stdout, &stderr)

	err := executor.Run(context.Background(), "notfound")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "Install 'notfound'")
}

func TestExecutor_Timeout(t *testing.T) {
	var stdout, stderr bytes.Buffer
	executor := newMockExecutor(&stdout, &stderr)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := executor.Run(ctx, "sleep")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cancelled")
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestExecutor_RunShell(t *testing.T) {
	var stdout, stderr bytes.Buffer
	executor := newMockExecutor(&stdout, &stderr)

	require.NoError(t, executor.RunShell(context.Background(), "npm run build && npm test"))
	assert.Contains(t, stdout.String(), "ran: npm run build && npm test")

	err := executor.RunShell(context.Background(), "   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty command")
}

func TestExecutor_RunWithSpinner(t *testing.T) {
	var stdout, stderr bytes.Buffer
	executor := newMockExecutor(&stdout, &stderr)

	err := executor.RunWithSpinner(context.Background(), "Testing", "echo", "test")
	assert.NoError(t, err)
	// Command output is swallowed by the spinner
	assert.NotContains(t, stdout.String(), "test")
}

// testCommandWrapper is a test implementation of CommandWrapper
type testCommandWrapper struct {
	name        string
	description string
	executeFunc func(context.Context, *Executor) error
}

func (t *testCommandWrapper) Name() string        { return t.name }
func (t *testCommandWrapper) Description() string { return t.description }
func (t *testCommandWrapper) Execute(ctx context.Context, exec *Executor) error {
	if t.executeFunc != nil {
		return t.executeFunc(ctx, exec)
	}
	return nil
}

func TestCommandRegistry(t *testing.T) {
	var _ CommandWrapper = (*testCommandWrapper)(nil)
	var _ CommandWrapper = (*ShellCommand)(nil)

	t.Run("register and get command", func(t *testing.T) {
		registry := NewCommandRegistry()

		require.NoError(t, registry.Register(&testCommandWrapper{name: "test-cmd", description: "A test command"}))

		retrieved, ok := registry.Get("test-cmd")
		assert.True(t, ok)
		assert.Equal(t, "A test command", retrieved.Description())
	})

	t.Run("register duplicate command", func(t *testing.T) {
		registry := NewCommandRegistry()

		require.NoError(t, registry.Register(&testCommandWrapper{name: "duplicate"}))
		err := registry.Register(&testCommandWrapper{name: "duplicate"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already registered")
	})

	t.Run("register invalid command", func(t *testing.T) {
		registry := NewCommandRegistry()

		err := registry.Register(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot register nil")

		err = registry.Register(&testCommandWrapper{name: ""})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty name")
	})

	t.Run("list commands sorted", func(t *testing.T) {
		registry := NewCommandRegistry()
		for _, name := range []string{"test", "build", "lint"} {
			require.NoError(t, registry.Register(&testCommandWrapper{name: name, description: name + " task"}))
		}

		assert.Equal(t, []string{"build", "lint", "test"}, registry.List())
		assert.Equal(t, "lint task", registry.ListWithDescriptions()["lint"])
		assert.Equal(t, 3, registry.Size())
		assert.True(t, registry.Has("build"))
		assert.False(t, registry.Has("deploy"))
	})

	t.Run("execute command", func(t *testing.T) {
		registry := NewCommandRegistry()
		executed := false

		require.NoError(t, registry.Register(&testCommandWrapper{
			name: "exec-test",
			executeFunc: func(ctx context.Context, exec *Executor) error {
				executed = true
				return nil
			},
		}))

		require.NoError(t, registry.Execute(context.Background(), "exec-test", NewExecutor(nil)))
		assert.True(t, executed)
	})

	t.Run("execute missing command", func(t *testing.T) {
		registry := NewCommandRegistry()
		err := registry.Execute(context.Background(), "missing", NewExecutor(nil))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found in registry")
	})
}

func TestShellCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	executor := newMockExecutor(&stdout, &stderr)

	cmd := NewShellCommand("build", "Compile", "tsc", "node esbuild.config.js")
	assert.Equal(t, "build", cmd.Name())
	assert.Equal(t, []string{"tsc", "node esbuild.config.js"}, cmd.Lines())

	require.NoError(t, cmd.Execute(context.Background(), executor))
	assert.Contains(t, stdout.String(), "ran: tsc")
	assert.Contains(t, stdout.String(), "ran: node esbuild.config.js")

	stdout.Reset()
	failing := NewShellCommand("test", "", "fail now", "never runs")
	err := failing.Execute(context.Background(), executor)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "test:")
	assert.NotContains(t, stdout.String(), "never runs")
}

func TestPrefixWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewPrefixWriter(&buf, "[build] ")

	_, err := w.Write([]byte("line one\nline "))
	require.NoError(t, err)
	assert.Equal(t, "[build] line one\n", buf.String())

	_, err = w.Write([]byte("two\n"))
	require.NoError(t, err)
	assert.Equal(t, "[build] line one\n[build] line two\n", buf.String())

	_, err = w.Write([]byte("tail"))
	require.NoError(t, err)
	require.NoError(t, w.Flush())
	assert.Equal(t, "[build] line one\n[build] line two\n[build] tail\n", buf.String())

	require.NoError(t, w.Flush())
}
