package builders

import (
	"github.com/simonhull/firebird-suite/nest/internal/artifact"
	"github.com/simonhull/firebird-suite/nest/internal/options"
)

// Sample contributes starter sources. They are not generated: once on disk
// they belong to the user and a re-run never overwrites an edited copy.
type Sample struct {
	Name   string
	Assets []string
	When   string // gating option, empty for always

	// UnderSrcdir places the files below the srcdir option.
	UnderSrcdir bool
}

func (s *Sample) ID() string { return idOr(s.Name, "sample") }

func (s *Sample) Contribute(view artifact.View, opts options.Resolved) ([]artifact.Contribution, error) {
	if !enabled(opts, s.When) {
		return nil, nil
	}
	dir := ""
	if s.UnderSrcdir {
		dir = opts.String(OptSrcdir, "")
	}
	return assetFiles(s.Assets, dir, false)
}

// Assets contributes generated asset files: configs nest owns and rewrites
// on every run.
type Assets struct {
	Name  string
	Files []string
	When  string
}

func (a *Assets) ID() string { return idOr(a.Name, "assets") }

func (a *Assets) Contribute(view artifact.View, opts options.Resolved) ([]artifact.Contribution, error) {
	if !enabled(opts, a.When) {
		return nil, nil
	}
	return assetFiles(a.Files, "", true)
}
