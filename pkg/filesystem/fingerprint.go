package filesystem

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// TreeFingerprint is a content digest of a directory tree.
type TreeFingerprint struct {
	Digest string            // Digest over every (path, file hash) pair in order
	Files  map[string]string // Relative slash path → SHA-256 of content
}

// Fingerprint hashes every regular file under rootPath. Paths and contents
// both feed the digest; modification times and permissions do not.
func Fingerprint(rootPath string, opts WalkOptions) (*TreeFingerprint, error) {
	files, err := ListFiles(rootPath, opts)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", rootPath, err)
	}

	fp := &TreeFingerprint{Files: make(map[string]string, len(files))}
	tree := sha256.New()

	for _, rel := range files {
		data, err := os.ReadFile(filepath.Join(rootPath, filepath.FromSlash(rel)))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", rel, err)
		}
		sum := sha256.Sum256(data)
		hash := hex.EncodeToString(sum[:])
		fp.Files[rel] = hash

		fmt.Fprintf(tree, "%s\x00%s\n", rel, hash)
	}

	fp.Digest = hex.EncodeToString(tree.Sum(nil))
	return fp, nil
}

// CompareFingerprints returns the sorted relative paths that were added,
// removed, or changed between a and b.
func CompareFingerprints(a, b *TreeFingerprint) []string {
	seen := make(map[string]bool)
	var changed []string

	for path, hash := range a.Files {
		seen[path] = true
		if other, ok := b.Files[path]; !ok || other != hash {
			changed = append(changed, path)
		}
	}
	for path := range b.Files {
		if !seen[path] {
			changed = append(changed, path)
		}
	}

	sort.Strings(changed)
	return changed
}
