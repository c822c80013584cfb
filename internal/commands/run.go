package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/nest/internal/synth"
	"github.com/simonhull/firebird-suite/nest/pkg/exec"
	"github.com/simonhull/firebird-suite/nest/pkg/output"
)

// RunCmd creates the 'run' command.
func RunCmd() *cobra.Command {
	var (
		dir   string
		quiet bool
	)

	cmd := &cobra.Command{
		Use:   "run [task]",
		Short: "Run a task recorded in .nest/tasks.json",
		Long: `Runs the steps of a synthesized task in order, stopping at the first
failure. Without a task name, lists the available tasks.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := loadTasks(dir)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				descs := registry.ListWithDescriptions()
				for _, name := range registry.List() {
					output.Item(name, descs[name])
				}
				return nil
			}

			name := args[0]
			task, ok := registry.Get(name)
			if !ok {
				return unknownTask(name, registry.List())
			}

			stdout := exec.NewPrefixWriter(cmd.OutOrStdout(), "["+name+"] ")
			stderr := exec.NewPrefixWriter(cmd.ErrOrStderr(), "["+name+"] ")
			defer stdout.Flush()
			defer stderr.Flush()

			executor := exec.NewExecutor(&exec.Options{
				Dir:    dir,
				Stdout: stdout,
				Stderr: stderr,
			})

			// Verbose runs always show step output
			shell, isShell := task.(*exec.ShellCommand)
			if quiet && isShell && !output.IsVerbose() {
				for _, line := range shell.Lines() {
					if err := executor.RunWithSpinner(cmd.Context(), line, "sh", "-c", line); err != nil {
						return fmt.Errorf("%s: %w", name, err)
					}
				}
			} else {
				output.Verbose("Running task " + name)
				if err := registry.Execute(cmd.Context(), name, executor); err != nil {
					return err
				}
			}

			output.Success(fmt.Sprintf("Task %s finished", name))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "C", ".", "Project directory")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Hide step output behind a spinner")

	return cmd
}

// loadTasks registers every task of the project's tasks.json.
func loadTasks(dir string) (*exec.CommandRegistry, error) {
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(synth.TasksFile)))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("no %s in %s; run \"nest synth\" first", synth.TasksFile, dir)
		}
		return nil, err
	}
	specs, err := synth.ReadTasks(data)
	if err != nil {
		return nil, err
	}

	registry := exec.NewCommandRegistry()
	for _, s := range specs {
		if err := registry.Register(exec.NewShellCommand(s.Name, s.Description, s.Steps...)); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func unknownTask(name string, names []string) error {
	msg := fmt.Sprintf("unknown task %q", name)
	var suggestions []string
	for _, m := range fuzzy.Find(name, names) {
		suggestions = append(suggestions, m.Str)
		if len(suggestions) == 3 {
			break
		}
	}
	if len(suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(suggestions, ", "))
	}
	return errors.New(msg)
}
