package filesystem

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultIgnoreDirs are install and build directories to skip during traversal
var DefaultIgnoreDirs = []string{
	"node_modules", ".git", ".svn", ".hg",
	".next", "dist", "build", "coverage", "cdk.out",
}

// WalkOptions configures directory traversal behavior
type WalkOptions struct {
	IgnoreDirs     []string // Directories to skip (default: DefaultIgnoreDirs)
	IgnorePatterns []string // File patterns to skip (e.g., "*.tmp")
	IncludeHidden  bool     // Include hidden files/dirs (default: false)
}

// Walk traverses a directory tree with configurable ignore patterns.
// The visitor function is called for each file and directory.
// Return filepath.SkipDir from visitor to skip a directory.
func Walk(rootPath string, opts WalkOptions, visitor func(path string, info os.FileInfo) error) error {
	ignoreDirs := opts.IgnoreDirs
	if len(ignoreDirs) == 0 {
		ignoreDirs = DefaultIgnoreDirs
	}

	return filepath.Walk(rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Skip hidden files/directories unless explicitly included
		if !opts.IncludeHidden && strings.HasPrefix(info.Name(), ".") && path != rootPath {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() && path != rootPath {
			for _, ignore := range ignoreDirs {
				if info.Name() == ignore {
					return filepath.SkipDir
				}
			}
		}

		if !info.IsDir() && len(opts.IgnorePatterns) > 0 {
			for _, pattern := range opts.IgnorePatterns {
				if matched, _ := filepath.Match(pattern, info.Name()); matched {
					return nil
				}
			}
		}

		return visitor(path, info)
	})
}

// ListFiles returns every regular file under rootPath as a sorted list of
// slash-separated paths relative to rootPath.
func ListFiles(rootPath string, opts WalkOptions) ([]string, error) {
	var files []string
	err := Walk(rootPath, opts, func(path string, info os.FileInfo) error {
		if !info.Mode().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(rootPath, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
