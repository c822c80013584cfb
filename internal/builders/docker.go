package builders

import (
	"fmt"

	"github.com/simonhull/firebird-suite/nest/internal/artifact"
	"github.com/simonhull/firebird-suite/nest/internal/options"
)

// Docker contributes .dockerignore and one or more Dockerfiles.
// The ignore file comes either from IgnoreLines or from IgnoreAsset.
type Docker struct {
	Name        string
	IgnoreLines []string
	IgnoreAsset string
	Dockerfiles []string // asset paths
}

func (d *Docker) ID() string { return idOr(d.Name, "docker") }

func (d *Docker) Contribute(view artifact.View, opts options.Resolved) ([]artifact.Contribution, error) {
	var out []artifact.Contribution

	switch {
	case d.IgnoreAsset != "" && len(d.IgnoreLines) > 0:
		return nil, fmt.Errorf("docker: set IgnoreLines or IgnoreAsset, not both")
	case d.IgnoreAsset != "":
		f, err := assetFile(d.IgnoreAsset, "", true)
		if err != nil {
			return nil, err
		}
		out = append(out, artifact.Add(f))
	case len(d.IgnoreLines) > 0:
		out = append(out, artifact.Add(textFile(".dockerignore", d.IgnoreLines)))
	}

	files, err := assetFiles(d.Dockerfiles, "", true)
	if err != nil {
		return nil, err
	}
	return append(out, files...), nil
}
