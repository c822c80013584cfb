package artifact

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"
)

// Kind discriminates artifact variants.
type Kind int

const (
	KindFile Kind = iota
	KindTask
	KindDependency
	KindField
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindTask:
		return "task"
	case KindDependency:
		return "dependency"
	case KindField:
		return "field"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Key addresses an artifact. Two artifacts with the same Key collide.
type Key struct {
	Kind Kind
	Name string
}

func (k Key) String() string {
	return k.Kind.String() + ":" + k.Name
}

// Artifact is implemented by *File, *Task, *Dependency and *Field.
type Artifact interface {
	Key() Key
	clone() Artifact
}

// Clone returns a deep copy of a.
func Clone(a Artifact) Artifact {
	if a == nil {
		return nil
	}
	return a.clone()
}

// Format selects how a File's Object is serialized.
type Format int

const (
	FormatRaw Format = iota
	FormatJSON
	FormatYAML
)

// File is a file in the output tree. Exactly one content source is set:
// Content (literal bytes), Asset (an embedded payload, rendered with the
// resolved options when Template is true), or Object (serialized as Format).
type File struct {
	Path       string // slash-separated, relative to the output root
	Content    []byte
	Asset      string
	Template   bool
	Object     any
	Format     Format
	Generated  bool // carries a provenance marker and is always rewritten
	Executable bool
}

func (f *File) Key() Key { return Key{Kind: KindFile, Name: f.Path} }

func (f *File) clone() Artifact {
	c := *f
	c.Content = slices.Clone(f.Content)
	c.Object = CloneValue(f.Object)
	return &c
}

// Validate checks that exactly one content source is set.
func (f *File) Validate() error {
	if f.Path == "" {
		return fmt.Errorf("file has no path")
	}
	if strings.HasPrefix(f.Path, "/") || !filepath.IsLocal(filepath.FromSlash(f.Path)) {
		return fmt.Errorf("file path must stay inside the project: %s", f.Path)
	}
	sources := 0
	if f.Content != nil {
		sources++
	}
	if f.Asset != "" {
		sources++
	}
	if f.Object != nil {
		sources++
		if f.Format == FormatRaw {
			return fmt.Errorf("file %s: structured content needs a format", f.Path)
		}
	}
	if sources != 1 {
		return fmt.Errorf("file %s: want exactly one content source, got %d", f.Path, sources)
	}
	return nil
}

// Phase groups tasks for display. It has no effect on execution.
type Phase string

const (
	PhaseBuild   Phase = "build"
	PhaseTest    Phase = "test"
	PhaseRelease Phase = "release"
	PhaseDev     Phase = "dev"
	PhaseMaint   Phase = "maintenance"
)

// Task is a named command sequence exposed to the end user.
type Task struct {
	Name        string
	Steps       []string // shell command lines, run in order
	Phase       Phase
	Description string
}

func (t *Task) Key() Key { return Key{Kind: KindTask, Name: t.Name} }

func (t *Task) clone() Artifact {
	c := *t
	c.Steps = slices.Clone(t.Steps)
	return &c
}

// Command joins the steps the way package.json scripts expect.
func (t *Task) Command() string {
	return strings.Join(t.Steps, " && ")
}

// DepType partitions dependencies in package.json.
type DepType int

const (
	Runtime DepType = iota
	Dev
)

func (d DepType) String() string {
	if d == Dev {
		return "dev"
	}
	return "runtime"
}

// Dependency is a third-party package requirement.
type Dependency struct {
	Name       string
	Constraint string // empty means any version
	Type       DepType
}

func (d *Dependency) Key() Key { return Key{Kind: KindDependency, Name: d.Name} }

func (d *Dependency) clone() Artifact {
	c := *d
	return &c
}

// Field is a top-level package.json field such as "type" or "prettier".
type Field struct {
	Name  string
	Value any
}

func (f *Field) Key() Key { return Key{Kind: KindField, Name: f.Name} }

func (f *Field) clone() Artifact {
	c := *f
	c.Value = CloneValue(f.Value)
	return &c
}

// Cloner is implemented by structured file objects that know how to copy
// themselves.
type Cloner interface {
	Clone() any
}

// CloneValue deep-copies JSON/YAML shaped values (maps, slices, scalars)
// and Cloners.
func CloneValue(v any) any {
	switch t := v.(type) {
	case Cloner:
		return t.Clone()
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = CloneValue(val)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, val := range t {
			s[i] = CloneValue(val)
		}
		return s
	case []string:
		return slices.Clone(t)
	case map[string]string:
		return maps.Clone(t)
	default:
		return v
	}
}

// ParseDependency parses "name" or "name@constraint". Scoped packages keep
// their leading '@': "@scope/pkg@^1.0.0".
func ParseDependency(spec string, typ DepType) (*Dependency, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, fmt.Errorf("empty dependency spec")
	}

	name, constraint := spec, ""
	if at := strings.LastIndex(spec, "@"); at > 0 {
		name, constraint = spec[:at], spec[at+1:]
	}
	if name == "" || name == "@" || (strings.HasPrefix(name, "@") && !strings.Contains(name, "/")) {
		return nil, fmt.Errorf("invalid dependency spec %q", spec)
	}
	return &Dependency{Name: name, Constraint: constraint, Type: typ}, nil
}
