package options

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Check coerces caller values to their declared types and validates the
// result against the declarations' JSON Schema. Undeclared keys pass
// through unchanged.
func Check(caller Values, decls Declarations) (Values, error) {
	coerced := make(Values, len(caller))
	for k, v := range caller {
		if v == nil {
			continue
		}
		decl, ok := decls.Lookup(k)
		if !ok {
			coerced[k] = v
			continue
		}
		c, err := coerce(decl, v)
		if err != nil {
			return nil, err
		}
		coerced[k] = c
	}

	if len(decls) == 0 {
		return coerced, nil
	}
	if err := validate(coerced, decls); err != nil {
		return nil, err
	}
	return coerced, nil
}

// coerce converts flag and YAML shaped values: "true" becomes a bool and
// "3" an int. Lists of strings become []string. A bare string is not a
// list; string inputs split with SplitList before they get here.
func coerce(decl Declaration, v any) (any, error) {
	invalid := func(reason string) error {
		return &InvalidOptionError{Key: decl.Key, Want: decl.Type, Got: describe(v), Reason: reason}
	}

	switch decl.Type {
	case TypeBool:
		if s, ok := v.(string); ok {
			b, err := strconv.ParseBool(strings.TrimSpace(s))
			if err != nil {
				return nil, invalid("not a boolean")
			}
			return b, nil
		}
	case TypeInt:
		switch n := v.(type) {
		case string:
			i, err := strconv.Atoi(strings.TrimSpace(n))
			if err != nil {
				return nil, invalid("not an integer")
			}
			return i, nil
		case float64:
			if n == float64(int(n)) {
				return int(n), nil
			}
		case int64:
			return int(n), nil
		}
	case TypeStringList:
		switch l := v.(type) {
		case string:
			return nil, invalid("not a list")
		case []any:
			out := make([]string, 0, len(l))
			for _, item := range l {
				s, ok := item.(string)
				if !ok {
					return nil, invalid("list items must be strings")
				}
				out = append(out, s)
			}
			return out, nil
		}
	}
	return v, nil
}

// SplitList splits a comma separated flag or environment value into a
// string list, dropping empty items.
func SplitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// validate runs the declarations' schema over the coerced values.
func validate(values Values, decls Declarations) error {
	doc, err := decls.Schema()
	if err != nil {
		return err
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("options.schema.json", doc); err != nil {
		return fmt.Errorf("adding options schema: %w", err)
	}
	schema, err := c.Compile("options.schema.json")
	if err != nil {
		return fmt.Errorf("compiling options schema: %w", err)
	}

	// Round-trip through JSON so numbers reach the validator as json.Number
	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("encoding options: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("preparing options for validation: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return fmt.Errorf("validating options: %w", err)
	}
	return firstInvalid(ve, values, decls)
}

// firstInvalid maps the leaf validation errors back to the offending keys
// and reports the alphabetically first one.
func firstInvalid(ve *jsonschema.ValidationError, values Values, decls Declarations) error {
	reasons := make(map[string]string)
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			if len(e.InstanceLocation) > 0 && e.ErrorKind != nil {
				key := e.InstanceLocation[0]
				if _, seen := reasons[key]; !seen {
					reasons[key] = e.ErrorKind.LocalizedString(printer)
				}
			}
			return
		}
		for _, cause := range e.Causes {
			walk(cause)
		}
	}
	walk(ve)

	if len(reasons) == 0 {
		return fmt.Errorf("invalid options: %s", ve.Error())
	}

	keys := make([]string, 0, len(reasons))
	for k := range reasons {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	key := keys[0]
	decl, _ := decls.Lookup(key)
	return &InvalidOptionError{Key: key, Want: decl.Type, Got: describe(values[key]), Reason: reasons[key]}
}
