package filesystem

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestWalk_IgnoreDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]string{
		"node_modules/react/index.js": "x",
		".next/cache":                 "x",
		"cdk.out/tree.json":           "x",
		"keep.txt":                    "x",
	})

	var visited []string
	err := Walk(tmpDir, WalkOptions{IncludeHidden: true}, func(path string, info os.FileInfo) error {
		rel, _ := filepath.Rel(tmpDir, path)
		visited = append(visited, rel)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	for _, v := range visited {
		if strings.Contains(v, "node_modules") || strings.Contains(v, ".next") || strings.Contains(v, "cdk.out") {
			t.Errorf("Walk() visited ignored directory: %s", v)
		}
	}
}

func TestWalk_IgnorePatterns(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]string{
		"keep.txt":        "test",
		"ignore.tmp":      "test",
		"also_ignore.bak": "test",
	})

	var visited []string
	err := Walk(tmpDir, WalkOptions{
		IgnorePatterns: []string{"*.tmp", "*.bak"},
	}, func(path string, info os.FileInfo) error {
		if !info.IsDir() {
			visited = append(visited, info.Name())
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	if len(visited) != 1 || visited[0] != "keep.txt" {
		t.Errorf("Walk() visited %v, want [keep.txt]", visited)
	}
}

func TestWalk_HiddenFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]string{
		".github/workflows/ci.yml": "on: push",
		"README.md":                "# hi",
	})

	withoutHidden, err := ListFiles(tmpDir, WalkOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(withoutHidden) != 1 || withoutHidden[0] != "README.md" {
		t.Errorf("ListFiles() without hidden = %v", withoutHidden)
	}

	withHidden, err := ListFiles(tmpDir, WalkOptions{IncludeHidden: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(withHidden) != 2 || withHidden[0] != ".github/workflows/ci.yml" {
		t.Errorf("ListFiles() with hidden = %v", withHidden)
	}
}

func TestListFiles_Sorted(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]string{
		"a/b.txt": "1",
		"a.txt":   "2",
		"z.txt":   "3",
	})

	files, err := ListFiles(tmpDir, WalkOptions{})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"a.txt", "a/b.txt", "z.txt"}
	if strings.Join(files, ",") != strings.Join(want, ",") {
		t.Errorf("ListFiles() = %v, want %v", files, want)
	}
}
