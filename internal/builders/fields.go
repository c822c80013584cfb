package builders

import (
	"github.com/simonhull/firebird-suite/nest/internal/artifact"
	"github.com/simonhull/firebird-suite/nest/internal/options"
)

// Fields contributes top-level package.json fields.
type Fields struct {
	Values map[string]any
}

func (f *Fields) ID() string { return "fields" }

func (f *Fields) Contribute(view artifact.View, opts options.Resolved) ([]artifact.Contribution, error) {
	out := make([]artifact.Contribution, 0, len(f.Values))
	for _, name := range sortedKeys(f.Values) {
		out = append(out, artifact.Add(&artifact.Field{Name: name, Value: artifact.CloneValue(f.Values[name])}))
	}
	return out, nil
}
