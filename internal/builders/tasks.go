package builders

import (
	"github.com/simonhull/firebird-suite/nest/internal/artifact"
	"github.com/simonhull/firebird-suite/nest/internal/options"
)

// Tasks applies template-specific task overrides: removals first, then
// replacements of existing tasks, then additions.
type Tasks struct {
	Name    string
	Remove  []string
	Replace []*artifact.Task
	Add     []*artifact.Task
	When    string // gating option, empty for always
}

func (t *Tasks) ID() string { return idOr(t.Name, "tasks") }

func (t *Tasks) Contribute(view artifact.View, opts options.Resolved) ([]artifact.Contribution, error) {
	if !enabled(opts, t.When) {
		return nil, nil
	}
	out := make([]artifact.Contribution, 0, len(t.Remove)+len(t.Replace)+len(t.Add))
	for _, name := range t.Remove {
		out = append(out, artifact.RemoveTask(name))
	}
	for _, task := range t.Replace {
		out = append(out, artifact.Replace(task))
	}
	for _, task := range t.Add {
		out = append(out, artifact.Add(task))
	}
	return out, nil
}
