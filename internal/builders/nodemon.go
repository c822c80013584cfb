package builders

import (
	"github.com/simonhull/firebird-suite/nest/internal/artifact"
	"github.com/simonhull/firebird-suite/nest/internal/options"
)

// Nodemon contributes nodemon.json.
type Nodemon struct {
	Config map[string]any
}

func (n *Nodemon) ID() string { return "nodemon" }

func (n *Nodemon) Contribute(view artifact.View, opts options.Resolved) ([]artifact.Contribution, error) {
	return []artifact.Contribution{
		artifact.Add(jsonFile("nodemon.json", artifact.CloneValue(n.Config))),
	}, nil
}
