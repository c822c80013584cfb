package options

import (
	"fmt"
	"slices"
)

// Type is the expected shape of an option value.
type Type string

const (
	TypeBool       Type = "bool"
	TypeString     Type = "string"
	TypeStringList Type = "string-list"
	TypeInt        Type = "int"
	TypeObject     Type = "object"
)

// Declaration describes one option a template understands.
type Declaration struct {
	Key         string
	Type        Type
	Description string
	Default     any      // shown by `nest list`; the template defaults carry the effective value
	Enum        []string // allowed values for TypeString
}

// Declarations is a template's option list.
type Declarations []Declaration

// Lookup returns the declaration for key.
func (d Declarations) Lookup(key string) (Declaration, bool) {
	i := slices.IndexFunc(d, func(decl Declaration) bool { return decl.Key == key })
	if i < 0 {
		return Declaration{}, false
	}
	return d[i], true
}

// Keys returns the declared keys in declaration order.
func (d Declarations) Keys() []string {
	keys := make([]string, len(d))
	for i, decl := range d {
		keys[i] = decl.Key
	}
	return keys
}

// schema renders the JSON Schema fragment for one declaration.
func (decl Declaration) schema() (map[string]any, error) {
	switch decl.Type {
	case TypeBool:
		return map[string]any{"type": "boolean"}, nil
	case TypeString:
		s := map[string]any{"type": "string"}
		if len(decl.Enum) > 0 {
			enum := make([]any, len(decl.Enum))
			for i, e := range decl.Enum {
				enum[i] = e
			}
			s["enum"] = enum
		}
		return s, nil
	case TypeStringList:
		return map[string]any{"type": "array", "items": map[string]any{"type": "string"}}, nil
	case TypeInt:
		return map[string]any{"type": "integer"}, nil
	case TypeObject:
		return map[string]any{"type": "object"}, nil
	default:
		return nil, fmt.Errorf("option %s: unknown type %q", decl.Key, decl.Type)
	}
}

// Schema renders the declarations as a JSON Schema object. Undeclared
// properties are allowed.
func (d Declarations) Schema() (map[string]any, error) {
	props := make(map[string]any, len(d))
	for _, decl := range d {
		s, err := decl.schema()
		if err != nil {
			return nil, err
		}
		if decl.Description != "" {
			s["description"] = decl.Description
		}
		props[decl.Key] = s
	}
	return map[string]any{
		"$schema":    "https://json-schema.org/draft/2020-12/schema",
		"type":       "object",
		"properties": props,
	}, nil
}
