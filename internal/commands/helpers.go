package commands

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/simonhull/firebird-suite/nest/internal/engine"
	"github.com/simonhull/firebird-suite/nest/internal/options"
	"github.com/simonhull/firebird-suite/nest/internal/synth"
	"github.com/simonhull/firebird-suite/nest/internal/templates"
	"github.com/simonhull/firebird-suite/nest/pkg/generator"
	"github.com/simonhull/firebird-suite/nest/pkg/output"
)

// conflictFlags are the mutually exclusive --force/--skip/--diff flags.
type conflictFlags struct {
	force, skip, diff bool
}

func (f conflictFlags) resolver() (*generator.Resolver, error) {
	var set []string
	if f.force {
		set = append(set, "--force")
	}
	if f.skip {
		set = append(set, "--skip")
	}
	if f.diff {
		set = append(set, "--diff")
	}
	if len(set) > 1 {
		return nil, fmt.Errorf("conflicting flags: %v are mutually exclusive", set)
	}
	return generator.NewResolver(f.force, f.skip, f.diff)
}

// parseSet turns --set key=value pairs into options. Values of declared
// list options split on commas; other values stay strings for the option
// resolver to coerce.
func parseSet(pairs []string, decls options.Declarations) (options.Values, error) {
	out := options.Values{}
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --set %q, want key=value", p)
		}
		if decl, ok := decls.Lookup(k); ok && decl.Type == options.TypeStringList {
			out[k] = options.SplitList(v)
			continue
		}
		out[k] = v
	}
	return out, nil
}

// readOptionsFile reads a YAML map of options.
func readOptionsFile(path string) (options.Values, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading options file: %w", err)
	}
	var out options.Values
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parsing options file %s: %w", path, err)
	}
	return out, nil
}

// knownOptions lists every option any template declares, plus untyped
// entries for engine defaults no template declares. The rc loader uses it
// to restore key case and to split list overrides.
func knownOptions(reg *templates.Registry) options.Declarations {
	var decls options.Declarations
	for _, d := range reg.List() {
		for _, decl := range d.Options {
			if _, seen := decls.Lookup(decl.Key); !seen {
				decls = append(decls, decl)
			}
		}
	}
	defaults := slices.Sorted(maps.Keys(engine.Defaults()))
	for _, k := range defaults {
		if _, seen := decls.Lookup(k); !seen {
			decls = append(decls, options.Declaration{Key: k})
		}
	}
	return decls
}

func printReport(r *synth.Report, dryRun bool) {
	if r == nil {
		return
	}
	for _, p := range r.Skipped {
		output.Info(fmt.Sprintf("Kept %s (edited)", p))
	}
	for _, p := range r.Deleted {
		output.Verbose("Deleted " + p)
	}
	verb := "Wrote"
	if dryRun {
		verb = "Would write"
	}
	output.Success(fmt.Sprintf("%s %d files (%d unchanged, %d kept, %d deleted)",
		verb, len(r.Written), len(r.Unchanged), len(r.Skipped), len(r.Deleted)))
}

func printWarnings(warnings []error) {
	for _, w := range warnings {
		output.Warn(w.Error())
	}
}
