// Package options merges the option layers of a synthesis run into one
// resolved map.
//
// Layers apply in order: engine defaults, template defaults, caller options,
// then the template's non-overridable options. Caller values are coerced
// and checked against the template's declarations before merging.
package options

import (
	"maps"
	"slices"
)

// Values is one layer of options.
type Values map[string]any

// Resolved is the merged option map handed to every builder. The zero value
// is an empty set.
type Resolved struct {
	values map[string]any
}

// Resolve merges the four layers. Nil values are dropped. Non-overridable
// keys always carry the template's value, whatever the caller passed.
func Resolve(engineDefaults, templateDefaults, caller, nonOverridable Values, decls Declarations) (Resolved, error) {
	checked, err := Check(caller, decls)
	if err != nil {
		return Resolved{}, err
	}

	merged := make(map[string]any)
	for _, layer := range []Values{engineDefaults, templateDefaults, checked, nonOverridable} {
		for k, v := range layer {
			if v == nil {
				continue
			}
			merged[k] = v
		}
	}
	return Resolved{values: merged}, nil
}

// New builds a Resolved directly from values. Meant for tests and for
// builders run in isolation.
func New(values Values) Resolved {
	m := make(map[string]any, len(values))
	for k, v := range values {
		if v != nil {
			m[k] = v
		}
	}
	return Resolved{values: m}
}

// Has reports whether key is set.
func (r Resolved) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Get returns the raw value for key.
func (r Resolved) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Bool returns the boolean at key, or def when the key is absent or not a bool.
func (r Resolved) Bool(key string, def bool) bool {
	if b, ok := r.values[key].(bool); ok {
		return b
	}
	return def
}

// String returns the string at key, or def.
func (r Resolved) String(key, def string) string {
	if s, ok := r.values[key].(string); ok {
		return s
	}
	return def
}

// Strings returns the string list at key, or def.
func (r Resolved) Strings(key string, def []string) []string {
	switch v := r.values[key].(type) {
	case []string:
		return slices.Clone(v)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return slices.Clone(def)
			}
			out = append(out, s)
		}
		return out
	}
	return slices.Clone(def)
}

// Int returns the integer at key, or def.
func (r Resolved) Int(key string, def int) int {
	switch v := r.values[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		if v == float64(int(v)) {
			return int(v)
		}
	}
	return def
}

// Keys returns every set key, sorted.
func (r Resolved) Keys() []string {
	return slices.Sorted(maps.Keys(r.values))
}

// Map returns a copy of the resolved values.
func (r Resolved) Map() Values {
	return maps.Clone(Values(r.values))
}
