package templates

import (
	"github.com/simonhull/firebird-suite/nest/internal/artifact"
	"github.com/simonhull/firebird-suite/nest/internal/builders"
	"github.com/simonhull/firebird-suite/nest/internal/normalize"
	"github.com/simonhull/firebird-suite/nest/internal/options"
)

// BackendTest is a jest suite exercising a deployed backend. It has no
// build output, only tests and a strict type check.
func BackendTest() Descriptor {
	return Descriptor{
		Name:        "backend-test",
		Description: "Jest test suite for a running backend",
		Builders: []builders.Builder{
			&builders.Manifest{
				Tasks: []*artifact.Task{
					tsTask("test", artifact.PhaseTest, "Run tests", "jest"),
					tsTask("typecheck", artifact.PhaseTest, "Type-check sources", "tsc --noEmit"),
				},
				CompilerOptions: map[string]any{
					"target":                       "esnext",
					"module":                       "esnext",
					"noEmit":                       true,
					"isolatedModules":              false,
					"noImplicitAny":                true,
					"strictNullChecks":             true,
					"strictPropertyInitialization": true,
					"noImplicitThis":               true,
					"alwaysStrict":                 true,
					"noUnusedParameters":           true,
					"noImplicitReturns":            true,
					"noFallthroughCasesInSwitch":   true,
					"noUncheckedIndexedAccess":     true,
					"baseUrl":                      "./",
					"paths":                        map[string]any{"*": []any{"./*"}},
				},
			},
			&builders.Deps{
				Name: "backend-test-deps",
				Dev:  []string{"typescript", "ts-node", "@types/node"},
			},
			&builders.Jest{
				Samples: []string{"backend-test/src/__tests__/health.test.ts.sample"},
				Dev:     []string{"ts-jest"},
			},
			&builders.Gitignore{},
		},
		Defaults: options.Values{
			builders.OptSrcdir:         ".",
			builders.OptPackageManager: "npm",
		},
		Fixed: options.Values{
			builders.OptName: "backend-test",
			builders.OptJest: true,
		},
		Options:   options.Declarations{optNodeVersion, optPackageManager, optSrcdir},
		Normalize: []normalize.Target{rcTarget()},
	}
}
