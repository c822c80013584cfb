package exec

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// CommandWrapper is a named command that can be looked up and run
type CommandWrapper interface {
	// Name returns the command name for registry lookup
	Name() string
	// Description returns a brief description of what the command does
	Description() string
	// Execute runs the command with the given context and executor
	Execute(ctx context.Context, exec *Executor) error
}

// ShellCommand runs one or more shell lines in order, stopping at the first failure.
type ShellCommand struct {
	name        string
	description string
	lines       []string
}

// NewShellCommand creates a CommandWrapper over shell lines.
func NewShellCommand(name, description string, lines ...string) *ShellCommand {
	return &ShellCommand{name: name, description: description, lines: lines}
}

func (s *ShellCommand) Name() string        { return s.name }
func (s *ShellCommand) Description() string { return s.description }

// Lines returns the shell lines executed by the command.
func (s *ShellCommand) Lines() []string {
	return append([]string(nil), s.lines...)
}

func (s *ShellCommand) Execute(ctx context.Context, exec *Executor) error {
	for _, line := range s.lines {
		if err := exec.RunShell(ctx, line); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}

// CommandRegistry manages registered command wrappers
type CommandRegistry struct {
	mu       sync.RWMutex
	commands map[string]CommandWrapper
}

// NewCommandRegistry creates a new command registry instance
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		commands: make(map[string]CommandWrapper),
	}
}

// Register adds a command wrapper to the registry
func (r *CommandRegistry) Register(cmd CommandWrapper) error {
	if cmd == nil {
		return fmt.Errorf("cannot register nil command")
	}

	name := cmd.Name()
	if name == "" {
		return fmt.Errorf("cannot register command with empty name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.commands[name]; exists {
		return fmt.Errorf("command '%s' is already registered", name)
	}

	r.commands[name] = cmd
	return nil
}

// Get retrieves a command wrapper by name
func (r *CommandRegistry) Get(name string) (CommandWrapper, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cmd, ok := r.commands[name]
	return cmd, ok
}

// List returns all registered command names in sorted order
func (r *CommandRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// ListWithDescriptions returns all registered commands with their descriptions
func (r *CommandRegistry) ListWithDescriptions() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]string, len(r.commands))
	for name, cmd := range r.commands {
		result[name] = cmd.Description()
	}
	return result
}

// Size returns the number of registered commands
func (r *CommandRegistry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.commands)
}

// Has checks if a command is registered
func (r *CommandRegistry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.commands[name]
	return exists
}

// Execute runs a command by name if it exists
func (r *CommandRegistry) Execute(ctx context.Context, name string, exec *Executor) error {
	cmd, ok := r.Get(name)
	if !ok {
		return fmt.Errorf("command '%s' not found in registry", name)
	}
	return cmd.Execute(ctx, exec)
}
