// Package testutil holds helpers for tests that synthesize whole projects.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TestProject is a project directory under a test's temp dir. The
// directory itself is not created; "nest new" does that.
type TestProject struct {
	Root string
	Name string
	t    *testing.T
}

// NewTestProject returns a project named name inside t.TempDir().
func NewTestProject(t *testing.T, name string) *TestProject {
	t.Helper()
	return &TestProject{Root: t.TempDir(), Name: name, t: t}
}

// Dir is the project directory.
func (p *TestProject) Dir() string {
	return filepath.Join(p.Root, p.Name)
}

// Path joins a slash path onto the project directory.
func (p *TestProject) Path(rel string) string {
	return filepath.Join(p.Dir(), filepath.FromSlash(rel))
}

// FileExists checks if a file exists in the project
func (p *TestProject) FileExists(rel string) bool {
	p.t.Helper()
	_, err := os.Stat(p.Path(rel))
	return err == nil
}

// ReadFile reads a project file, failing the test if it cannot.
func (p *TestProject) ReadFile(rel string) string {
	p.t.Helper()
	data, err := os.ReadFile(p.Path(rel))
	if err != nil {
		p.t.Fatalf("reading %s: %v", rel, err)
	}
	return string(data)
}

// WriteFile writes a project file, creating parent directories.
func (p *TestProject) WriteFile(rel, content string) {
	p.t.Helper()
	path := p.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		p.t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		p.t.Fatalf("writing %s: %v", rel, err)
	}
}
