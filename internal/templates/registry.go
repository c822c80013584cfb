// Package templates defines the project flavors nest can synthesize. A
// template is an ordered list of builders plus the option layers and
// normalization targets that go with it.
package templates

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/simonhull/firebird-suite/nest/internal/artifact"
	"github.com/simonhull/firebird-suite/nest/internal/builders"
	"github.com/simonhull/firebird-suite/nest/internal/normalize"
	"github.com/simonhull/firebird-suite/nest/internal/options"
)

// Descriptor describes one template.
type Descriptor struct {
	Name        string
	Description string

	// Builders run in this order.
	Builders []builders.Builder

	// Defaults apply over the engine defaults and under caller options.
	Defaults options.Values

	// Fixed options always win over caller options.
	Fixed options.Values

	Options   options.Declarations
	Normalize []normalize.Target
}

func (d Descriptor) clone() Descriptor {
	out := d
	out.Builders = slices.Clone(d.Builders)
	out.Defaults = cloneValues(d.Defaults)
	out.Fixed = cloneValues(d.Fixed)
	out.Options = slices.Clone(d.Options)
	out.Normalize = make([]normalize.Target, len(d.Normalize))
	for i, t := range d.Normalize {
		t.Commands = slices.Clone(t.Commands)
		for j := range t.Commands {
			t.Commands[j] = slices.Clone(t.Commands[j])
		}
		out.Normalize[i] = t
	}
	return out
}

func cloneValues(v options.Values) options.Values {
	if v == nil {
		return nil
	}
	out := make(options.Values, len(v))
	for k, val := range v {
		out[k] = artifact.CloneValue(val)
	}
	return out
}

// UnknownTemplateError is returned for a name no template is registered
// under. Suggestions holds close matches, best first.
type UnknownTemplateError struct {
	Name        string
	Suggestions []string
}

func (e *UnknownTemplateError) Error() string {
	msg := fmt.Sprintf("unknown template %q", e.Name)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

// Registry holds registered templates. Descriptors are copied in and out,
// so a registered template cannot be changed afterwards.
type Registry struct {
	templates map[string]Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{templates: make(map[string]Descriptor)}
}

// Register adds a template. Names must be unique, and builder ids must be
// unique within the template.
func (r *Registry) Register(d Descriptor) error {
	if d.Name == "" {
		return fmt.Errorf("template name cannot be empty")
	}
	if _, exists := r.templates[d.Name]; exists {
		return fmt.Errorf("template %s already registered", d.Name)
	}
	if len(d.Builders) == 0 {
		return fmt.Errorf("template %s has no builders", d.Name)
	}

	seen := make(map[string]bool, len(d.Builders))
	for i, b := range d.Builders {
		if b == nil {
			return fmt.Errorf("template %s: builder %d is nil", d.Name, i)
		}
		id := b.ID()
		if seen[id] {
			return fmt.Errorf("template %s: duplicate builder id %s", d.Name, id)
		}
		seen[id] = true
	}

	if _, err := d.Options.Schema(); err != nil {
		return fmt.Errorf("template %s: %w", d.Name, err)
	}

	r.templates[d.Name] = d.clone()
	return nil
}

// Get returns a copy of the named template.
func (r *Registry) Get(name string) (Descriptor, error) {
	d, ok := r.templates[name]
	if !ok {
		return Descriptor{}, &UnknownTemplateError{Name: name, Suggestions: r.suggest(name)}
	}
	return d.clone(), nil
}

// Names returns the registered template names, sorted.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.templates))
}

// List returns copies of every template, sorted by name.
func (r *Registry) List() []Descriptor {
	names := r.Names()
	out := make([]Descriptor, len(names))
	for i, n := range names {
		out[i] = r.templates[n].clone()
	}
	return out
}

func (r *Registry) suggest(name string) []string {
	if name == "" {
		return nil
	}
	var out []string
	for _, m := range fuzzy.Find(name, r.Names()) {
		out = append(out, m.Str)
	}
	if len(out) > 3 {
		out = out[:3]
	}
	return out
}

// Default returns a registry holding every built-in template.
func Default() *Registry {
	r := NewRegistry()
	for _, d := range []Descriptor{NextJS(), ApolloServer(), CDK(), BackendTest()} {
		if err := r.Register(d); err != nil {
			panic(err)
		}
	}
	return r
}
