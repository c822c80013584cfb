// Package synth writes a resolved project to disk. Every file is rendered
// and every conflict with a user-owned file is settled before the first
// write. A failed write stops the commit; nothing is rolled back.
package synth

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/simonhull/firebird-suite/nest/internal/resolve"
	"github.com/simonhull/firebird-suite/nest/pkg/filesystem"
	"github.com/simonhull/firebird-suite/nest/pkg/generator"
	"github.com/simonhull/firebird-suite/nest/pkg/output"
)

// Options configures a commit.
type Options struct {
	// Data is the template data for rendered assets, usually the resolved
	// options.
	Data map[string]any

	// Resolver settles differences with existing non-generated files.
	// Nil keeps the file on disk.
	Resolver *generator.Resolver

	// DryRun reports the operations without touching the disk.
	DryRun bool

	// Writer receives one line per operation. Nil discards them. On a dry
	// run Report.Written lists what would have been written.
	Writer io.Writer

	Renderer *generator.Renderer
}

// Report lists what a commit did, by output-relative path.
type Report struct {
	Written   []string
	Deleted   []string
	Skipped   []string // user-owned files kept as they were
	Unchanged []string

	// Generated lists every nest-owned path of the run, whatever
	// happened to it.
	Generated []string

	// Digest fingerprints the output tree after the commit. Empty on a dry
	// run.
	Digest string
}

// planned is one file the commit wants on disk.
type planned struct {
	path      string
	content   []byte
	mode      fs.FileMode
	generated bool
	builder   string
}

// Commit writes result under root.
func Commit(ctx context.Context, result *resolve.Result, root string, opts Options) (*Report, error) {
	if opts.Renderer == nil {
		opts.Renderer = generator.NewRenderer()
	}
	if opts.Writer == nil {
		opts.Writer = io.Discard
	}

	plan, err := buildPlan(result, opts)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	for _, p := range plan {
		if p.generated {
			report.Generated = append(report.Generated, p.path)
		}
	}
	var ops []generator.Operation
	owners := make(map[string]string)

	for _, p := range plan {
		full := filepath.Join(root, filepath.FromSlash(p.path))
		existing, err := os.ReadFile(full)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil && !isDir(full):
			return report, &SynthesisIOError{Path: p.path, Builder: p.builder, Err: err}
		case err == nil && bytes.Equal(existing, p.content):
			report.Unchanged = append(report.Unchanged, p.path)
			continue
		case err == nil && !p.generated:
			keep, err := keepExisting(opts.Resolver, p, existing)
			if err != nil {
				return report, err
			}
			if keep {
				report.Skipped = append(report.Skipped, p.path)
				continue
			}
		}

		ops = append(ops, &generator.WriteFileOp{Path: full, Content: p.content, Mode: p.mode})
		owners[full] = p.builder
	}

	stale, err := staleFiles(root, plan)
	if err != nil {
		return report, err
	}
	for _, rel := range stale {
		ops = append(ops, &generator.DeleteFileOp{Path: filepath.Join(root, filepath.FromSlash(rel))})
	}

	err = generator.Execute(ctx, ops, generator.ExecuteOptions{DryRun: opts.DryRun, Force: true, Writer: opts.Writer})
	done := len(ops)
	if err != nil {
		var execErr *generator.ExecError
		if !errors.As(err, &execErr) {
			return report, err
		}
		done = execErr.Done
		target := execErr.Op.(generator.Target).TargetPath()
		err = &SynthesisIOError{Path: relPath(root, target), Builder: owners[target], Err: execErr.Err}
	}

	for _, op := range ops[:done] {
		rel := relPath(root, op.(generator.Target).TargetPath())
		if _, ok := op.(*generator.DeleteFileOp); ok {
			report.Deleted = append(report.Deleted, rel)
		} else {
			report.Written = append(report.Written, rel)
		}
	}
	if err != nil {
		return report, err
	}

	output.Verbose(fmt.Sprintf("synth: %d written, %d deleted, %d skipped, %d unchanged",
		len(report.Written), len(report.Deleted), len(report.Skipped), len(report.Unchanged)))

	if opts.DryRun {
		return report, nil
	}
	fp, err := filesystem.Fingerprint(root, filesystem.WalkOptions{IncludeHidden: true})
	if err != nil {
		return report, fmt.Errorf("fingerprinting output: %w", err)
	}
	report.Digest = fp.Digest
	return report, nil
}

// buildPlan renders every output file, sorted by path.
func buildPlan(result *resolve.Result, opts Options) ([]planned, error) {
	var plan []planned
	var generated []string
	reserved := map[string]bool{PackageJSON: true, TasksFile: true, FilesManifest: true}

	for _, f := range result.Files() {
		builder := result.Owner(f.Key())
		if reserved[f.Path] {
			return nil, fmt.Errorf("%s is written by nest itself (contributed by %s)", f.Path, builder)
		}
		content, err := renderFile(f, opts.Renderer, opts.Data)
		if err != nil {
			return nil, fmt.Errorf("rendering %s (from %s): %w", f.Path, builder, err)
		}
		mode := fs.FileMode(0o644)
		if f.Executable {
			mode = 0o755
		}
		plan = append(plan, planned{path: f.Path, content: content, mode: mode, generated: f.Generated, builder: builder})
		if f.Generated {
			generated = append(generated, f.Path)
		}
	}

	pkg, err := packageJSON(result)
	if err != nil {
		return nil, err
	}
	tasks, err := tasksJSON(result)
	if err != nil {
		return nil, err
	}
	files, err := filesJSON(generated)
	if err != nil {
		return nil, err
	}
	plan = append(plan,
		planned{path: PackageJSON, content: pkg, mode: 0o644, generated: true},
		planned{path: TasksFile, content: tasks, mode: 0o644, generated: true},
		planned{path: FilesManifest, content: files, mode: 0o644, generated: true},
	)

	slices.SortFunc(plan, func(a, b planned) int { return strings.Compare(a.path, b.path) })
	return plan, nil
}

// keepExisting asks the resolver about a user-owned file that differs.
func keepExisting(r *generator.Resolver, p planned, existing []byte) (bool, error) {
	if r == nil {
		return true, nil
	}
	res, err := r.ResolveConflict(p.path, existing, p.content)
	if err != nil {
		return false, err
	}
	switch res {
	case generator.Overwrite:
		return false, nil
	case generator.Cancel:
		return false, generator.ErrCancelled
	default:
		return true, nil
	}
}

// staleFiles lists files the previous run generated that this run does not.
func staleFiles(root string, plan []planned) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(root, FilesManifest))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", FilesManifest, err)
	}
	previous, err := parseFilesManifest(data)
	if err != nil {
		output.Warn(fmt.Sprintf("ignoring %s: %v", FilesManifest, err))
		return nil, nil
	}

	current := make(map[string]bool, len(plan))
	for _, p := range plan {
		current[p.path] = true
	}

	var stale []string
	for _, rel := range previous {
		if current[rel] || !filepath.IsLocal(filepath.FromSlash(rel)) {
			continue
		}
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel))); err == nil {
			stale = append(stale, rel)
		}
	}
	slices.Sort(stale)
	return stale, nil
}

func relPath(root, full string) string {
	rel, err := filepath.Rel(root, full)
	if err != nil {
		return full
	}
	return filepath.ToSlash(rel)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
