// Package generator provides the file-level primitives nest synthesizes
// through: validated file operations, template rendering for asset
// payloads, unified diffs, and conflict resolution for files the user may
// have edited.
//
// # Operations
//
// Operations are validated as a batch before any of them executes:
//
//	ops := []generator.Operation{
//	    &generator.WriteFileOp{Path: "web/package.json", Content: data, Mode: 0644},
//	}
//	if err := generator.Execute(ctx, ops, generator.ExecuteOptions{Force: true}); err != nil {
//	    var execErr *generator.ExecError
//	    if errors.As(err, &execErr) {
//	        // execErr.Op identifies the failing file
//	    }
//	}
//
// Execution stops at the first failure. Files already written stay on disk.
//
// # Conflicts
//
// A Resolver decides what happens when a file exists and differs from the
// generated content (skip, overwrite, diff, or an interactive menu).
package generator
