// Package resolve folds the contribution log into the final artifact set.
//
// Keys are resolved independently in log order:
//
//	add on an absent key inserts it
//	add on a present key fails, except for tasks where it replaces
//	replace on an absent key fails
//	remove deletes the key; removing an absent key does nothing
//
// A dependency added twice is accepted when both constraints agree.
package resolve

import (
	"slices"

	"github.com/simonhull/firebird-suite/nest/internal/artifact"
)

// Result is the resolved artifact set with the builder that contributed
// each winner.
type Result struct {
	artifacts map[artifact.Key]artifact.Artifact
	owners    map[artifact.Key]string
}

// Get returns a copy of the artifact at key.
func (r *Result) Get(key artifact.Key) (artifact.Artifact, bool) {
	a, ok := r.artifacts[key]
	if !ok {
		return nil, false
	}
	return artifact.Clone(a), true
}

// Owner returns the id of the builder whose contribution won key.
func (r *Result) Owner(key artifact.Key) string {
	return r.owners[key]
}

// Len returns the number of resolved artifacts.
func (r *Result) Len() int {
	return len(r.artifacts)
}

// Keys returns every resolved key, sorted by kind then name.
func (r *Result) Keys() []artifact.Key {
	keys := make([]artifact.Key, 0, len(r.artifacts))
	for k := range r.artifacts {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b artifact.Key) int {
		if a.Kind != b.Kind {
			return int(a.Kind) - int(b.Kind)
		}
		if a.Name < b.Name {
			return -1
		}
		if a.Name > b.Name {
			return 1
		}
		return 0
	})
	return keys
}

func (r *Result) Files() []*artifact.File { return artifact.Collect[*artifact.File](r.artifacts) }
func (r *Result) Tasks() []*artifact.Task { return artifact.Collect[*artifact.Task](r.artifacts) }
func (r *Result) Dependencies() []*artifact.Dependency {
	return artifact.Collect[*artifact.Dependency](r.artifacts)
}
func (r *Result) Fields() []*artifact.Field { return artifact.Collect[*artifact.Field](r.artifacts) }

func (r *Result) Has(key artifact.Key) bool {
	_, ok := r.artifacts[key]
	return ok
}

// State resolves entries one at a time so builders can see what earlier
// builders produced. It implements artifact.View.
type State struct {
	Result
	contributors map[artifact.Key][]string
}

// NewState returns an empty resolution state.
func NewState() *State {
	return &State{
		Result: Result{
			artifacts: make(map[artifact.Key]artifact.Artifact),
			owners:    make(map[artifact.Key]string),
		},
		contributors: make(map[artifact.Key][]string),
	}
}

// View returns a read-only view of the state that follows later Applies.
// Builders get this rather than the state itself.
func (s *State) View() artifact.View { return stateView{s: s} }

type stateView struct{ s *State }

func (v stateView) Has(key artifact.Key) bool                      { return v.s.Has(key) }
func (v stateView) Get(key artifact.Key) (artifact.Artifact, bool) { return v.s.Get(key) }
func (v stateView) Files() []*artifact.File                        { return v.s.Files() }
func (v stateView) Tasks() []*artifact.Task                        { return v.s.Tasks() }
func (v stateView) Dependencies() []*artifact.Dependency           { return v.s.Dependencies() }
func (v stateView) Fields() []*artifact.Field                      { return v.s.Fields() }

// Apply resolves one entry against the current state. On error the state is
// unchanged.
func (s *State) Apply(e artifact.Entry) error {
	key := e.Artifact.Key()
	existing, present := s.artifacts[key]
	builders := append(slices.Clone(s.contributors[key]), e.Builder)

	switch e.Action {
	case artifact.ActionAdd:
		if present {
			if key.Kind == artifact.KindDependency {
				return s.mergeDependency(existing.(*artifact.Dependency), e, builders)
			}
			if key.Kind != artifact.KindTask {
				return &DuplicateArtifactError{Kind: key.Kind, Key: key.Name, Builders: builders}
			}
		}
		s.put(key, e)

	case artifact.ActionReplace:
		if !present {
			return &MissingArtifactError{Kind: key.Kind, Key: key.Name, Builder: e.Builder}
		}
		s.put(key, e)

	case artifact.ActionRemove:
		delete(s.artifacts, key)
		delete(s.owners, key)
		delete(s.contributors, key)
		return nil
	}

	s.contributors[key] = builders
	return nil
}

func (s *State) put(key artifact.Key, e artifact.Entry) {
	s.artifacts[key] = artifact.Clone(e.Artifact)
	s.owners[key] = e.Builder
}

// mergeDependency accepts a repeated dependency with an equivalent
// constraint. When one side needs it at runtime the runtime entry wins.
func (s *State) mergeDependency(existing *artifact.Dependency, e artifact.Entry, builders []string) error {
	incoming := e.Artifact.(*artifact.Dependency)
	if !SameConstraint(existing.Constraint, incoming.Constraint) {
		return &DependencyConflictError{
			Name:     incoming.Name,
			Existing: existing.Constraint,
			Incoming: incoming.Constraint,
			Builders: builders,
		}
	}
	if existing.Type == artifact.Dev && incoming.Type == artifact.Runtime {
		s.put(incoming.Key(), e)
	}
	s.contributors[incoming.Key()] = builders
	return nil
}

// Snapshot returns the resolution so far, detached from the state.
func (s *State) Snapshot() *Result {
	r := &Result{
		artifacts: make(map[artifact.Key]artifact.Artifact, len(s.artifacts)),
		owners:    make(map[artifact.Key]string, len(s.owners)),
	}
	for k, a := range s.artifacts {
		r.artifacts[k] = artifact.Clone(a)
	}
	for k, o := range s.owners {
		r.owners[k] = o
	}
	return r
}

// Resolve folds a whole log. It stops at the first composition error.
func Resolve(log []artifact.Entry) (*Result, error) {
	s := NewState()
	for _, e := range log {
		if err := s.Apply(e); err != nil {
			return nil, err
		}
	}
	return s.Snapshot(), nil
}

var _ artifact.View = (*State)(nil)
