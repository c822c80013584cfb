// Package assets embeds the static payloads builders reference by path:
// sample sources, Dockerfiles, bundler configs. Paths are slash-separated
// and rooted at the template name ("apollo-server/Dockerfile.tmpl").
//
// A ".tmpl" suffix marks a text/template rendered with the resolved
// options; a ".sample" suffix marks a starter file the user owns after
// the first synthesis. OutputName strips both suffixes.
package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed all:files
var embedded embed.FS

var root = mustSub(embedded, "files")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// FS returns the asset tree.
func FS() fs.FS {
	return root
}

// Read returns the raw bytes of an asset.
func Read(path string) ([]byte, error) {
	data, err := fs.ReadFile(root, path)
	if err != nil {
		return nil, fmt.Errorf("asset %s: %w", path, err)
	}
	return data, nil
}

// Exists reports whether path names an asset file.
func Exists(path string) bool {
	info, err := fs.Stat(root, path)
	return err == nil && !info.IsDir()
}

// List returns every asset under dir, sorted.
func List(dir string) ([]string, error) {
	var out []string
	err := fs.WalkDir(root, dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing assets in %s: %w", dir, err)
	}
	return out, nil
}

// IsTemplate reports whether the asset is rendered before writing.
func IsTemplate(path string) bool {
	return strings.HasSuffix(path, ".tmpl")
}

// OutputName strips the asset suffixes and the template directory:
// "nextjs/pages/_app.tsx.tmpl" → "pages/_app.tsx".
func OutputName(path string) string {
	if i := strings.IndexByte(path, '/'); i >= 0 {
		path = path[i+1:]
	}
	path = strings.TrimSuffix(path, ".tmpl")
	return strings.TrimSuffix(path, ".sample")
}
