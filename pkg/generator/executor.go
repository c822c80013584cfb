package generator

import (
	"context"
	"fmt"
	"io"
	"os"
)

// ExecuteOptions configures execution behavior
type ExecuteOptions struct {
	DryRun bool
	Force  bool
	Writer io.Writer // Where to write output (defaults to os.Stdout)
}

// Phase names the execution step an ExecError happened in.
type Phase string

const (
	PhaseValidate Phase = "validation"
	PhaseExecute  Phase = "execution"
)

// ExecError reports which operation failed and in which phase.
type ExecError struct {
	Op    Operation
	Phase Phase
	Err   error
	Done  int // Operations executed before the failure
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("%s failed: %s: %v", e.Phase, e.Op.Description(), e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// Execute validates every operation, then runs them in order. Execution
// stops at the first failure; operations already executed are not undone.
func Execute(ctx context.Context, ops []Operation, opts ExecuteOptions) error {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	for _, op := range ops {
		if err := op.Validate(ctx, opts.Force); err != nil {
			return &ExecError{Op: op, Phase: PhaseValidate, Err: err}
		}
	}

	for i, op := range ops {
		if opts.DryRun {
			fmt.Fprintf(opts.Writer, "✓ [DRY RUN] %s\n", op.Description())
			continue
		}
		if err := op.Execute(ctx); err != nil {
			return &ExecError{Op: op, Phase: PhaseExecute, Err: err, Done: i}
		}
		fmt.Fprintf(opts.Writer, "✓ %s\n", op.Description())
	}

	return nil
}
