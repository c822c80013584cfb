// Package engine runs one synthesis pass: resolve options, run the
// template's builders in order against the incremental resolution, commit
// the result and normalize it.
package engine

import (
	"context"
	"fmt"
	"io"

	"github.com/simonhull/firebird-suite/nest/internal/artifact"
	"github.com/simonhull/firebird-suite/nest/internal/builders"
	"github.com/simonhull/firebird-suite/nest/internal/normalize"
	"github.com/simonhull/firebird-suite/nest/internal/options"
	"github.com/simonhull/firebird-suite/nest/internal/resolve"
	"github.com/simonhull/firebird-suite/nest/internal/synth"
	"github.com/simonhull/firebird-suite/nest/internal/templates"
	"github.com/simonhull/firebird-suite/nest/pkg/exec"
	"github.com/simonhull/firebird-suite/nest/pkg/generator"
	"github.com/simonhull/firebird-suite/nest/pkg/output"
)

// Defaults is the bottom option layer shared by every template.
func Defaults() options.Values {
	return options.Values{
		builders.OptGithub:               true,
		builders.OptDependabot:           true,
		builders.OptDefaultWorkflows:     true,
		builders.OptVSCode:               true,
		builders.OptJest:                 true,
		builders.OptNodeVersion:          "18",
		builders.OptPackageManager:       "npm",
		builders.OptDefaultReleaseBranch: "main",
	}
}

// BuilderError wraps a failure inside a builder.
type BuilderError struct {
	Builder string
	Err     error
}

func (e *BuilderError) Error() string {
	return fmt.Sprintf("builder %s: %v", e.Builder, e.Err)
}

func (e *BuilderError) Unwrap() error {
	return e.Err
}

// Composition is the outcome of running a template's builders.
type Composition struct {
	Options options.Resolved
	Result  *resolve.Result
	Log     []artifact.Entry
}

// Compose resolves options and runs every builder. Each builder sees what
// the earlier ones registered, already resolved. Nothing touches the disk.
func Compose(tmpl templates.Descriptor, caller options.Values) (*Composition, error) {
	opts, err := options.Resolve(Defaults(), tmpl.Defaults, caller, tmpl.Fixed, tmpl.Options)
	if err != nil {
		return nil, err
	}

	state := resolve.NewState()
	view := state.View()
	registry := artifact.NewRegistry()

	for _, b := range tmpl.Builders {
		contributions, err := b.Contribute(view, opts)
		if err != nil {
			return nil, &BuilderError{Builder: b.ID(), Err: err}
		}
		entries, err := registry.Record(b.ID(), contributions)
		if err != nil {
			return nil, &BuilderError{Builder: b.ID(), Err: err}
		}
		for _, e := range entries {
			if err := state.Apply(e); err != nil {
				return nil, err
			}
		}
		output.Verbose(fmt.Sprintf("%s: %d contributions", b.ID(), len(entries)))
	}

	return &Composition{Options: opts, Result: state.Snapshot(), Log: registry.Entries()}, nil
}

// Request describes one pass.
type Request struct {
	Template templates.Descriptor
	Options  options.Values // caller layer
	Root     string

	// Resolver settles conflicts with user-owned files. Nil keeps them.
	Resolver *generator.Resolver

	DryRun bool

	// SkipNormalize leaves the output as committed.
	SkipNormalize bool

	// Runner runs external normalizer commands. Defaults to an executor
	// rooted at Root.
	Runner normalize.Runner

	// Writer receives the operation log. Nil discards it.
	Writer io.Writer
}

// Outcome is the result of a completed pass.
type Outcome struct {
	Options options.Resolved
	Result  *resolve.Result
	Report  *synth.Report

	// Warnings are normalization failures. The output is complete
	// without them.
	Warnings []error
}

// Run composes, commits and normalizes. Composition errors abort before
// any write. A commit error is returned with the partial report.
func Run(ctx context.Context, req Request) (*Outcome, error) {
	comp, err := Compose(req.Template, req.Options)
	if err != nil {
		return nil, err
	}

	out := &Outcome{Options: comp.Options, Result: comp.Result}
	out.Report, err = synth.Commit(ctx, comp.Result, req.Root, synth.Options{
		Data:     comp.Options.Map(),
		Resolver: req.Resolver,
		DryRun:   req.DryRun,
		Writer:   req.Writer,
	})
	if err != nil {
		return out, err
	}

	if req.DryRun || req.SkipNormalize {
		return out, nil
	}

	runner := req.Runner
	if runner == nil {
		w := req.Writer
		if w == nil {
			w = io.Discard
		}
		runner = exec.NewExecutor(&exec.Options{Dir: req.Root, Stdout: w, Stderr: w})
	}
	out.Warnings = normalize.Normalize(ctx, req.Root, req.Template.Normalize, runner)
	return out, nil
}
