package templates

import (
	"github.com/simonhull/firebird-suite/nest/internal/artifact"
	"github.com/simonhull/firebird-suite/nest/internal/builders"
	"github.com/simonhull/firebird-suite/nest/internal/normalize"
	"github.com/simonhull/firebird-suite/nest/internal/options"
)

// CDK is an AWS CDK app in TypeScript with a tag-based release workflow.
func CDK() Descriptor {
	return Descriptor{
		Name:        "cdk",
		Description: "AWS CDK app with cdk-nag and a release workflow",
		Builders: []builders.Builder{
			&builders.Manifest{
				Tasks: cdkTasks(),
				CompilerOptions: map[string]any{
					"paths":  map[string]any{"*": []any{"./src/*"}},
					"target": "es6",
				},
				DevTSConfig: true,
			},
			&builders.Deps{
				Name:    "cdk-deps",
				Runtime: []string{"aws-cdk-lib", "constructs", "cdk-nag@2.15.45"},
				Dev:     []string{"aws-cdk", "ts-node", "typescript", "@types/node"},
			},
			&builders.Lint{
				Tool:         builders.ToolOfmt,
				Version:      "1.3.6",
				DefaultPaths: []string{".nestrc.yml", "src"},
			},
			&builders.Tasks{
				Name: "cdk-tasks",
				Replace: []*artifact.Task{
					tsTask("format", artifact.PhaseMaint, "Format sources", "ofmt .nestrc.yml", "ofmt src"),
					tsTask("lint", artifact.PhaseTest, "Check formatting and lint",
						"ofmt --lint .nestrc.yml", "ofmt --lint src", "olint src .nestrc.yml"),
					tsTask("typecheck", artifact.PhaseTest, "Type-check sources and tests",
						"tsc --noEmit --project tsconfig.dev.json"),
				},
			},
			&builders.Assets{Name: "cdk-assets", Files: []string{"cdk/cdk.json"}},
			&builders.Sample{Name: "cdk-sample", Assets: []string{"cdk/src/main.ts.sample"}},
			&builders.Jest{Command: "jest --passWithNoTests", Dev: []string{"ts-jest"}},
			&builders.Release{},
			&builders.PullRequest{},
			&builders.Dependabot{},
			&builders.VSCode{Layers: []map[string]any{
				builders.BaseVSCodeSettings(),
				{
					"editor.codeActionsOnSave": map[string]any{"source.fixAll": true},
					"eslint.useESLintClass":    true,
					"eslint.options": map[string]any{
						"cache":                         true,
						"reportUnusedDisableDirectives": "error",
					},
				},
				{
					"editor.codeActionsOnSave":   map[string]any{"source.organizeImports": true},
					"editor.formatOnSave":        true,
					"[json]":                     prettierFormatter(),
					"[jsonc]":                    prettierFormatter(),
					"[yaml]":                     prettierFormatter(),
					"[typescript]":               prettierFormatter(),
					"[javascript]":               prettierFormatter(),
					"[svg]":                      prettierFormatter(),
					"[xml]":                      prettierFormatter(),
					"prettier.documentSelectors": []any{"**/*.svg"},
				},
			}},
			&builders.Gitignore{Extra: []string{"cdk.out/", ".cdk.staging/"}},
		},
		Defaults: options.Values{
			builders.OptPackageManager:        "npm",
			builders.OptJest:                  false,
			builders.OptDependabot:            true,
			builders.OptGithub:                true,
			builders.OptInitialReleaseVersion: "0.0.1",
		},
		Fixed: options.Values{
			builders.OptDefaultReleaseBranch: "main",
			builders.OptName:                 "cdk",
		},
		Options: options.Declarations{
			optGithub, optDependabot, optDefaultWorkflows, optVSCode,
			{
				Key: builders.OptJest, Type: options.TypeBool, Default: false,
				Description: "Set up jest and the test task",
			},
			optNodeVersion, optPackageManager, optLintPaths,
			{
				Key: builders.OptInitialReleaseVersion, Type: options.TypeString, Default: "0.0.1",
				Description: "Version of the very first release",
			},
		},
		Normalize: []normalize.Target{rcTarget([]string{"ofmt", ".nestrc.yml"})},
	}
}

func cdkTasks() []*artifact.Task {
	return []*artifact.Task{
		tsTask("compile", artifact.PhaseBuild, "Only compile", "tsc --build"),
		tsTask("test", artifact.PhaseTest, "Run tests", "jest --passWithNoTests"),
		tsTask("synth", artifact.PhaseBuild, "Synthesize the cloud assembly", "cdk synth"),
		tsTask("synth:silent", artifact.PhaseBuild, "Synthesize without printing templates", "cdk synth -q"),
		tsTask("build", artifact.PhaseBuild, "Compile and synthesize", "npm run compile", "npm run synth:silent"),
		tsTask("deploy", artifact.PhaseRelease, "Deploy the stacks", "cdk deploy"),
		tsTask("diff", artifact.PhaseRelease, "Diff against deployed stacks", "cdk diff"),
		tsTask("destroy", artifact.PhaseRelease, "Destroy the stacks", "cdk destroy"),
		tsTask("watch", artifact.PhaseDev, "Hotswap deploy on change", "cdk deploy --hotswap --watch"),
	}
}

func prettierFormatter() map[string]any {
	return map[string]any{"editor.defaultFormatter": "esbenp.prettier-vscode"}
}
