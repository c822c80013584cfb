package builders

import (
	"github.com/simonhull/firebird-suite/nest/internal/artifact"
	"github.com/simonhull/firebird-suite/nest/internal/options"
)

// Deps contributes a named dependency bundle. Specs use "name@constraint".
type Deps struct {
	Name    string
	Runtime []string
	Dev     []string
	When    string // gating option, empty for always
}

func (d *Deps) ID() string { return idOr(d.Name, "deps") }

func (d *Deps) Contribute(view artifact.View, opts options.Resolved) ([]artifact.Contribution, error) {
	if !enabled(opts, d.When) {
		return nil, nil
	}
	return bundle(d.Runtime, d.Dev)
}
