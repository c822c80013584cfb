package generator_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/simonhull/firebird-suite/nest/pkg/generator"
)

func TestExecute_DryRun(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()

	ops := []generator.Operation{
		&generator.WriteFileOp{Path: filepath.Join(tmpDir, "package.json"), Content: []byte("{}\n"), Mode: 0644},
	}

	var buf bytes.Buffer
	if err := generator.Execute(ctx, ops, generator.ExecuteOptions{DryRun: true, Writer: &buf}); err != nil {
		t.Fatalf("dry run failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(tmpDir, "package.json")); !os.IsNotExist(err) {
		t.Error("dry run created file")
	}
	if !strings.Contains(buf.String(), "[DRY RUN]") {
		t.Errorf("output missing [DRY RUN] marker, got: %s", buf.String())
	}
}

func TestExecute_WritesNestedFiles(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, ".github", "workflows", "release.yml")

	ops := []generator.Operation{
		&generator.WriteFileOp{Path: path, Content: []byte("name: release\n"), Mode: 0644},
	}

	var buf bytes.Buffer
	if err := generator.Execute(ctx, ops, generator.ExecuteOptions{Writer: &buf}); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading file: %v", err)
	}
	if string(got) != "name: release\n" {
		t.Errorf("content = %q", got)
	}
	if !strings.Contains(buf.String(), "✓ Create") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestExecute_ExistingFileNeedsForce(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "Dockerfile")
	if err := os.WriteFile(path, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	ops := []generator.Operation{&generator.WriteFileOp{Path: path, Content: []byte("new"), Mode: 0644}}
	var buf bytes.Buffer

	err := generator.Execute(ctx, ops, generator.ExecuteOptions{Writer: &buf})
	var execErr *generator.ExecError
	if !errors.As(err, &execErr) {
		t.Fatalf("expected ExecError, got %v", err)
	}
	if execErr.Phase != generator.PhaseValidate {
		t.Errorf("phase = %s", execErr.Phase)
	}

	if err := generator.Execute(ctx, ops, generator.ExecuteOptions{Force: true, Writer: &buf}); err != nil {
		t.Fatalf("forced execute failed: %v", err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "new" {
		t.Errorf("content = %q, want overwritten", got)
	}
}

func TestExecute_ValidationBeforeExecution(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()
	first := filepath.Join(tmpDir, "a.txt")

	ops := []generator.Operation{
		&generator.WriteFileOp{Path: first, Content: []byte("a"), Mode: 0644},
		&generator.WriteFileOp{Path: filepath.Join(tmpDir, "b.txt"), Content: nil, Mode: 0644},
	}

	var buf bytes.Buffer
	if err := generator.Execute(ctx, ops, generator.ExecuteOptions{Writer: &buf}); err == nil {
		t.Fatal("expected validation error")
	}
	if _, err := os.Stat(first); !os.IsNotExist(err) {
		t.Error("first file written although validation failed")
	}
}

func TestExecute_StopsAtFirstFailure(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()
	blocker := filepath.Join(tmpDir, "blocker")
	first := filepath.Join(tmpDir, "first.txt")
	third := filepath.Join(tmpDir, "third.txt")

	failing := &failingOp{path: blocker}
	ops := []generator.Operation{
		&generator.WriteFileOp{Path: first, Content: []byte("1"), Mode: 0644},
		failing,
		&generator.WriteFileOp{Path: third, Content: []byte("3"), Mode: 0644},
	}

	var buf bytes.Buffer
	err := generator.Execute(ctx, ops, generator.ExecuteOptions{Force: true, Writer: &buf})

	var execErr *generator.ExecError
	if !errors.As(err, &execErr) {
		t.Fatalf("expected ExecError, got %v", err)
	}
	if execErr.Op != failing || execErr.Done != 1 || execErr.Phase != generator.PhaseExecute {
		t.Errorf("unexpected error details: %+v", execErr)
	}
	if !errors.Is(err, errDiskFull) {
		t.Error("ExecError does not unwrap to the cause")
	}

	// No rollback: the first file stays, the third never happens
	if _, err := os.Stat(first); err != nil {
		t.Errorf("first file missing: %v", err)
	}
	if _, err := os.Stat(third); !os.IsNotExist(err) {
		t.Error("third file written after failure")
	}
}

var errDiskFull = errors.New("disk full")

type failingOp struct{ path string }

func (f *failingOp) Validate(ctx context.Context, force bool) error { return nil }
func (f *failingOp) Execute(ctx context.Context) error              { return errDiskFull }
func (f *failingOp) Description() string                            { return "Create " + f.path }

func TestWriteFileOp_Validate(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()

	existing := filepath.Join(tmpDir, "existing.txt")
	os.WriteFile(existing, []byte("x"), 0644)
	dir := filepath.Join(tmpDir, "dir")
	os.Mkdir(dir, 0755)
	asFile := filepath.Join(tmpDir, "file")
	os.WriteFile(asFile, []byte("x"), 0644)

	tests := []struct {
		name    string
		op      *generator.WriteFileOp
		force   bool
		wantErr string
	}{
		{"new file", &generator.WriteFileOp{Path: filepath.Join(tmpDir, "new.txt"), Content: []byte{}}, false, ""},
		{"existing without force", &generator.WriteFileOp{Path: existing, Content: []byte("y")}, false, "already exists"},
		{"existing with force", &generator.WriteFileOp{Path: existing, Content: []byte("y")}, true, ""},
		{"directory", &generator.WriteFileOp{Path: dir, Content: []byte("y")}, true, "is a directory"},
		{"parent is file", &generator.WriteFileOp{Path: filepath.Join(asFile, "child.txt"), Content: []byte("y")}, true, "parent of"},
		{"nil content", &generator.WriteFileOp{Path: filepath.Join(tmpDir, "nil.txt")}, false, "content is nil"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.op.Validate(ctx, tt.force)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestWriteFileOp_ModeAppliedOnOverwrite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "codemod.sh")
	os.WriteFile(path, []byte("old"), 0644)

	op := &generator.WriteFileOp{Path: path, Content: []byte("#!/bin/sh\n"), Mode: 0755}
	if err := op.Execute(ctx); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0755 {
		t.Errorf("mode = %v, want 0755", info.Mode().Perm())
	}
}

func TestDeleteFileOp(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "stale.yml")
	os.WriteFile(path, []byte("x"), 0644)

	op := &generator.DeleteFileOp{Path: path}
	if err := op.Validate(ctx, false); err != nil {
		t.Fatal(err)
	}
	if err := op.Execute(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file not deleted")
	}

	// Already gone is fine
	if err := op.Validate(ctx, false); err != nil {
		t.Errorf("validate missing: %v", err)
	}
	if err := op.Execute(ctx); err != nil {
		t.Errorf("execute missing: %v", err)
	}

	dirOp := &generator.DeleteFileOp{Path: tmpDir}
	if err := dirOp.Validate(ctx, false); err == nil {
		t.Error("expected error deleting a directory")
	}

	if got := op.Description(); got != "Delete "+path {
		t.Errorf("description = %q", got)
	}
}

func TestExecute_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "a.txt")
	ops := []generator.Operation{&generator.WriteFileOp{Path: path, Content: []byte("a")}}

	var buf bytes.Buffer
	err := generator.Execute(ctx, ops, generator.ExecuteOptions{Writer: &buf})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
