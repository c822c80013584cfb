package artifact

import (
	"cmp"
	"slices"
)

// View is a read-only window onto the artifacts resolved so far. Values
// returned are copies; mutating them changes nothing.
type View interface {
	Has(key Key) bool
	Get(key Key) (Artifact, bool)
	Files() []*File
	Tasks() []*Task
	Dependencies() []*Dependency
	Fields() []*Field
}

// StaticView is a View over a fixed artifact set. Later artifacts with the
// same key win. Used to feed builders in isolation.
func StaticView(artifacts ...Artifact) View {
	m := make(mapView, len(artifacts))
	for _, a := range artifacts {
		m[a.Key()] = Clone(a)
	}
	return m
}

type mapView map[Key]Artifact

func (m mapView) Has(key Key) bool {
	_, ok := m[key]
	return ok
}

func (m mapView) Get(key Key) (Artifact, bool) {
	a, ok := m[key]
	if !ok {
		return nil, false
	}
	return Clone(a), true
}

func (m mapView) Files() []*File              { return Collect[*File](m) }
func (m mapView) Tasks() []*Task              { return Collect[*Task](m) }
func (m mapView) Dependencies() []*Dependency { return Collect[*Dependency](m) }
func (m mapView) Fields() []*Field            { return Collect[*Field](m) }

// Collect returns copies of every artifact of type T, sorted by key name.
func Collect[T Artifact](m map[Key]Artifact) []T {
	var out []T
	for _, a := range m {
		if t, ok := a.(T); ok {
			out = append(out, Clone(t).(T))
		}
	}
	slices.SortFunc(out, func(a, b T) int {
		return cmp.Compare(a.Key().Name, b.Key().Name)
	})
	return out
}

// FileKey, TaskKey, DependencyKey and FieldKey build keys for lookups.
func FileKey(path string) Key       { return Key{Kind: KindFile, Name: path} }
func TaskKey(name string) Key       { return Key{Kind: KindTask, Name: name} }
func DependencyKey(name string) Key { return Key{Kind: KindDependency, Name: name} }
func FieldKey(name string) Key      { return Key{Kind: KindField, Name: name} }

// GetFile returns the file at path, if the view has one.
func GetFile(v View, path string) (*File, bool) {
	a, ok := v.Get(FileKey(path))
	if !ok {
		return nil, false
	}
	f, ok := a.(*File)
	return f, ok
}

// GetTask returns the named task, if the view has one.
func GetTask(v View, name string) (*Task, bool) {
	a, ok := v.Get(TaskKey(name))
	if !ok {
		return nil, false
	}
	t, ok := a.(*Task)
	return t, ok
}
