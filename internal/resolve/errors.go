package resolve

import (
	"fmt"
	"strings"

	"github.com/simonhull/firebird-suite/nest/internal/artifact"
)

// DuplicateArtifactError is returned when two builders add the same file or
// field.
type DuplicateArtifactError struct {
	Kind     artifact.Kind
	Key      string
	Builders []string // every builder that contributed to the key, in order
}

func (e *DuplicateArtifactError) Error() string {
	return fmt.Sprintf("%s %q added more than once (builders: %s)", e.Kind, e.Key, strings.Join(e.Builders, ", "))
}

// MissingArtifactError is returned when a builder replaces a key nobody
// added.
type MissingArtifactError struct {
	Kind    artifact.Kind
	Key     string
	Builder string
}

func (e *MissingArtifactError) Error() string {
	return fmt.Sprintf("builder %s replaces %s %q which does not exist", e.Builder, e.Kind, e.Key)
}

// DependencyConflictError is returned when builders pin one package to
// different constraints.
type DependencyConflictError struct {
	Name     string
	Existing string
	Incoming string
	Builders []string
}

func (e *DependencyConflictError) Error() string {
	return fmt.Sprintf("dependency %q: constraint %q conflicts with %q (builders: %s)",
		e.Name, e.Incoming, displayConstraint(e.Existing), strings.Join(e.Builders, ", "))
}

func displayConstraint(c string) string {
	if c == "" {
		return "*"
	}
	return c
}
