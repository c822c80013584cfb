package resolve

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// SameConstraint reports whether two dependency constraints are equivalent.
// Exact versions compare by value (1.7.0, v1.7.0 and =1.7.0 agree) and an
// empty constraint equals "*". Partial versions such as "1.7" are ranges in
// npm and never equal an exact version. Ranges compare textually after
// parsing.
func SameConstraint(a, b string) bool {
	return canonicalConstraint(a) == canonicalConstraint(b)
}

func canonicalConstraint(c string) string {
	c = strings.TrimSpace(c)
	if c == "" || c == "*" || c == "x" {
		return "*"
	}
	exact := strings.TrimPrefix(strings.TrimPrefix(c, "="), "v")
	if v, err := semver.StrictNewVersion(exact); err == nil {
		return "=" + v.String()
	}
	if cons, err := semver.NewConstraint(c); err == nil {
		return cons.String()
	}
	// Tags, URLs and file: specs compare verbatim
	return c
}
