package builders

import (
	"maps"

	"github.com/simonhull/firebird-suite/nest/internal/artifact"
	"github.com/simonhull/firebird-suite/nest/internal/options"
)

// Manifest contributes the project skeleton: identity fields, the base task
// set of the flavor, and tsconfig.json.
type Manifest struct {
	Tasks []*artifact.Task

	// CompilerOptions are merged over the defaults in tsconfig.json.
	CompilerOptions map[string]any

	// DevTSConfig also writes tsconfig.dev.json including tests.
	DevTSConfig bool
}

func (m *Manifest) ID() string { return "manifest" }

var defaultCompilerOptions = map[string]any{
	"strict":                           true,
	"esModuleInterop":                  true,
	"skipLibCheck":                     true,
	"forceConsistentCasingInFileNames": true,
	"resolveJsonModule":                true,
	"module":                           "commonjs",
	"target":                           "es2020",
	"outDir":                           "lib",
}

func (m *Manifest) Contribute(view artifact.View, opts options.Resolved) ([]artifact.Contribution, error) {
	nodeVersion := opts.String(OptNodeVersion, "18")

	out := []artifact.Contribution{
		artifact.Add(&artifact.Field{Name: "name", Value: opts.String(OptName, "app")}),
		artifact.Add(&artifact.Field{Name: "version", Value: "0.0.0"}),
		artifact.Add(&artifact.Field{Name: "private", Value: true}),
		artifact.Add(&artifact.Field{Name: "engines", Value: map[string]any{"node": ">= " + nodeVersion}}),
	}

	for _, t := range m.Tasks {
		out = append(out, artifact.Add(t))
	}

	compiler := maps.Clone(defaultCompilerOptions)
	maps.Copy(compiler, m.CompilerOptions)
	srcdir := opts.String(OptSrcdir, "src")

	out = append(out, artifact.Add(jsonFile("tsconfig.json", map[string]any{
		"compilerOptions": compiler,
		"include":         []any{srcdir + "/**/*.ts", srcdir + "/**/*.tsx"},
		"exclude":         []any{"node_modules"},
	})))

	if m.DevTSConfig {
		out = append(out, artifact.Add(jsonFile("tsconfig.dev.json", map[string]any{
			"extends":         "./tsconfig.json",
			"compilerOptions": map[string]any{"noEmit": true},
			"include":         []any{srcdir + "/**/*.ts", "test/**/*.ts", ".nestrc.yml"},
		})))
	}
	return out, nil
}

// TypeScriptAppTasks is the base task set of a compiled TypeScript app.
func TypeScriptAppTasks() []*artifact.Task {
	return []*artifact.Task{
		task("pre-compile", artifact.PhaseBuild, "Prepare the project for compilation"),
		task("compile", artifact.PhaseBuild, "Only compile", "tsc --build"),
		task("post-compile", artifact.PhaseBuild, "Runs after successful compilation"),
		task("test", artifact.PhaseTest, "Run tests", "jest --passWithNoTests"),
		task("package", artifact.PhaseRelease, "Creates the distribution package", "mkdir -p dist/js", "npm pack --pack-destination dist/js"),
		task("build", artifact.PhaseBuild, "Full release build",
			"npm run pre-compile", "npm run compile", "npm run post-compile", "npm run test", "npm run package"),
		task("watch", artifact.PhaseDev, "Watch & compile in the background", "tsc --build -w"),
	}
}
