package builders

import (
	"slices"
	"strings"

	"github.com/simonhull/firebird-suite/nest/internal/artifact"
	"github.com/simonhull/firebird-suite/nest/internal/options"
)

// BaseGitignore holds the patterns every project ignores.
var BaseGitignore = []string{
	"node_modules/",
	"coverage/",
	"dist/",
	"lib/",
	"*.log",
	".DS_Store",
	".env*.local",
	".eslintcache",
	"*.tsbuildinfo",
}

// Gitignore contributes .gitignore. When an earlier builder already wrote
// one, the extra patterns are appended to it, skipping duplicates.
type Gitignore struct {
	Name  string
	Extra []string
}

func (g *Gitignore) ID() string { return idOr(g.Name, "gitignore") }

func (g *Gitignore) Contribute(view artifact.View, opts options.Resolved) ([]artifact.Contribution, error) {
	var lines []string
	if existing, ok := artifact.GetFile(view, ".gitignore"); ok && existing.Content != nil {
		lines = strings.Split(strings.TrimRight(string(existing.Content), "\n"), "\n")
	} else {
		lines = slices.Clone(BaseGitignore)
	}

	for _, pattern := range g.Extra {
		if !slices.Contains(lines, pattern) {
			lines = append(lines, pattern)
		}
	}
	return []artifact.Contribution{addOrReplace(view, textFile(".gitignore", lines))}, nil
}
