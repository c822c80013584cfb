package artifact

import "fmt"

// Action says what a contribution does to its key.
type Action int

const (
	ActionAdd Action = iota
	ActionReplace
	ActionRemove
)

func (a Action) String() string {
	switch a {
	case ActionAdd:
		return "add"
	case ActionReplace:
		return "replace"
	case ActionRemove:
		return "remove"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Contribution is one action a builder wants applied. For ActionRemove only
// the artifact's Key matters.
type Contribution struct {
	Action   Action
	Artifact Artifact
}

func Add(a Artifact) Contribution     { return Contribution{Action: ActionAdd, Artifact: a} }
func Replace(a Artifact) Contribution { return Contribution{Action: ActionReplace, Artifact: a} }
func Remove(a Artifact) Contribution  { return Contribution{Action: ActionRemove, Artifact: a} }

// RemoveTask is shorthand for removing a task by name.
func RemoveTask(name string) Contribution {
	return Remove(&Task{Name: name})
}

// Entry is a contribution recorded with the builder that made it.
type Entry struct {
	Builder  string
	Action   Action
	Artifact Artifact
}

func (e Entry) String() string {
	return fmt.Sprintf("%s %s %s", e.Builder, e.Action, e.Artifact.Key())
}

// Registry is the ordered log of every contribution in one synthesis run.
// It is append-only and is never persisted.
type Registry struct {
	entries []Entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Record appends a builder's contributions and returns the new entries.
func (r *Registry) Record(builder string, contributions []Contribution) ([]Entry, error) {
	added := make([]Entry, 0, len(contributions))
	for _, c := range contributions {
		if c.Artifact == nil {
			return nil, fmt.Errorf("builder %s: %s contribution without artifact", builder, c.Action)
		}
		if f, ok := c.Artifact.(*File); ok && c.Action != ActionRemove {
			if err := f.Validate(); err != nil {
				return nil, fmt.Errorf("builder %s: %w", builder, err)
			}
		}
		added = append(added, Entry{Builder: builder, Action: c.Action, Artifact: Clone(c.Artifact)})
	}
	r.entries = append(r.entries, added...)
	return added, nil
}

// Entries returns a copy of the log.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of recorded entries.
func (r *Registry) Len() int {
	return len(r.entries)
}
