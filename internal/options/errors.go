package options

import "fmt"

// InvalidOptionError is returned when a caller value does not match the
// declared type.
type InvalidOptionError struct {
	Key    string
	Want   Type
	Got    string // description of the offending value
	Reason string // validator message, if any
}

func (e *InvalidOptionError) Error() string {
	msg := fmt.Sprintf("option %q: want %s, got %s", e.Key, e.Want, e.Got)
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	return msg
}

func describe(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("string %q", t)
	case bool:
		return fmt.Sprintf("bool %t", t)
	case []any, []string:
		return fmt.Sprintf("list %v", t)
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T %v", v, v)
	}
}
