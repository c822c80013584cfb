package builders

import (
	"fmt"
	"strings"

	"github.com/simonhull/firebird-suite/nest/internal/artifact"
	"github.com/simonhull/firebird-suite/nest/internal/options"
)

// LintTool selects the formatter/linter pair.
type LintTool string

const (
	// ToolOfmt uses the ofmt/olint pair configured through package.json.
	ToolOfmt LintTool = "ofmt"

	// ToolESLint writes .eslintrc.json and .prettierrc.json.
	ToolESLint LintTool = "eslint"
)

const ofmtVersion = "1.7.0"

// Lint contributes format, lint and typecheck tasks over the lint paths,
// plus the tool's config files and dev dependencies.
type Lint struct {
	Tool LintTool

	// DefaultPaths apply when the lintPaths option is unset.
	DefaultPaths []string

	// ExtraExtends are appended to the ESLint extends list.
	ExtraExtends []string

	// ExtraDeps are extra dev dependencies, e.g. ESLint plugins.
	ExtraDeps []string

	// Version pins the ofmt packages. Defaults to ofmtVersion.
	Version string

	// ExtrasWhen gates ExtraExtends and ExtraDeps on an option.
	ExtrasWhen string
}

func (l *Lint) ID() string { return "lint" }

func (l *Lint) Contribute(view artifact.View, opts options.Resolved) ([]artifact.Contribution, error) {
	paths := opts.Strings(OptLintPaths, l.DefaultPaths)
	if len(paths) == 0 {
		return nil, fmt.Errorf("no lint paths configured")
	}
	joined := strings.Join(paths, " ")
	version := l.Version
	if version == "" {
		version = ofmtVersion
	}

	var out []artifact.Contribution
	var dev []string

	extraExtends, extraDeps := l.ExtraExtends, l.ExtraDeps
	if !enabled(opts, l.ExtrasWhen) {
		extraExtends, extraDeps = nil, nil
	}

	switch l.Tool {
	case ToolOfmt, "":
		out = append(out,
			artifact.Add(task("format", artifact.PhaseMaint, "Format sources", "ofmt "+joined)),
			artifact.Add(task("lint", artifact.PhaseTest, "Check formatting and lint", "ofmt --lint "+joined, "olint "+joined)),
		)
		dev = []string{
			"@ottofeller/eslint-config-ofmt@" + version,
			"@ottofeller/ofmt@" + version,
			"@ottofeller/prettier-config-ofmt@" + version,
		}

	case ToolESLint:
		extends := append([]any{"@ottofeller/eslint-config-ofmt/eslint.quality.cjs"}, toAny(extraExtends)...)
		out = append(out,
			artifact.Add(task("format", artifact.PhaseMaint, "Format sources", "prettier --write "+joined)),
			artifact.Add(task("lint", artifact.PhaseTest, "Check formatting and lint",
				"prettier --check "+joined, "eslint --ext .js,.jsx,.ts,.tsx "+joined)),
			artifact.Add(jsonFile(".eslintrc.json", map[string]any{
				"root":    true,
				"extends": extends,
			})),
			artifact.Add(jsonFile(".prettierrc.json", map[string]any{
				"semi":           false,
				"singleQuote":    true,
				"bracketSpacing": false,
				"printWidth":     120,
				"trailingComma":  "all",
			})),
		)
		dev = []string{
			"eslint",
			"prettier",
			"@ottofeller/eslint-config-ofmt@" + version,
			"@ottofeller/prettier-config-ofmt@" + version,
		}

	default:
		return nil, fmt.Errorf("unknown lint tool %q", l.Tool)
	}

	out = append(out, artifact.Add(task("typecheck", artifact.PhaseTest, "Type-check sources", "tsc --noEmit")))

	deps, err := depContributions(artifact.Dev, append(dev, extraDeps...))
	if err != nil {
		return nil, err
	}
	return append(out, deps...), nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
