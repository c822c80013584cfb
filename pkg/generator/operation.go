package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Operation represents a file system operation that can be validated and executed.
//
// Validate checks if the operation would succeed without executing it.
// force=true skips conflict checks (e.g., file already exists).
//
// Execute performs the actual operation. This should only be called after Validate succeeds.
//
// Description returns a human-readable description for output (e.g., "Create package.json (234 bytes)").
type Operation interface {
	Validate(ctx context.Context, force bool) error
	Execute(ctx context.Context) error
	Description() string
}

// Target is implemented by operations that act on a single path.
type Target interface {
	TargetPath() string
}

// WriteFileOp creates or replaces a file with content.
//
// Validation behavior:
//   - Checks for file conflicts unless force=true
//   - Rejects a path whose parent exists as a regular file
//   - Allows empty content (zero bytes) but rejects nil content
//
// Execution behavior:
//   - Creates parent directories if needed
//   - Writes file with specified Mode
type WriteFileOp struct {
	Path    string      // File path to create
	Content []byte      // File content (can be empty, must not be nil)
	Mode    fs.FileMode // File permissions (e.g., 0644)
}

func (op *WriteFileOp) Validate(ctx context.Context, force bool) error {
	if op.Content == nil {
		return fmt.Errorf("content is nil for file: %s", op.Path)
	}

	if !force {
		if _, err := os.Stat(op.Path); err == nil {
			return fmt.Errorf("file already exists: %s", op.Path)
		}
	}

	if info, err := os.Stat(op.Path); err == nil && info.IsDir() {
		return fmt.Errorf("path is a directory: %s", op.Path)
	}

	for dir := filepath.Dir(op.Path); dir != "." && dir != string(filepath.Separator); dir = filepath.Dir(dir) {
		info, err := os.Stat(dir)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("cannot inspect %s: %w", dir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("parent of %s is a file: %s", op.Path, dir)
		}
		break
	}

	return nil
}

func (op *WriteFileOp) Execute(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(op.Path), 0755); err != nil {
		return err
	}
	mode := op.Mode
	if mode == 0 {
		mode = 0644
	}
	if err := os.WriteFile(op.Path, op.Content, mode); err != nil {
		return err
	}
	// WriteFile keeps the old mode on existing files
	return os.Chmod(op.Path, mode)
}

func (op *WriteFileOp) Description() string {
	return fmt.Sprintf("Create %s (%d bytes)", op.Path, len(op.Content))
}

func (op *WriteFileOp) TargetPath() string {
	return op.Path
}

// DeleteFileOp removes a file. A file that is already gone is not an error.
type DeleteFileOp struct {
	Path string
}

func (op *DeleteFileOp) Validate(ctx context.Context, force bool) error {
	info, err := os.Stat(op.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot inspect %s: %w", op.Path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("refusing to delete directory: %s", op.Path)
	}
	return nil
}

func (op *DeleteFileOp) Execute(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(op.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (op *DeleteFileOp) Description() string {
	return fmt.Sprintf("Delete %s", op.Path)
}

func (op *DeleteFileOp) TargetPath() string {
	return op.Path
}
