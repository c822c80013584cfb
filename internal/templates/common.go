package templates

import (
	"github.com/simonhull/firebird-suite/nest/internal/artifact"
	"github.com/simonhull/firebird-suite/nest/internal/builders"
	"github.com/simonhull/firebird-suite/nest/internal/normalize"
	"github.com/simonhull/firebird-suite/nest/internal/options"
	"github.com/simonhull/firebird-suite/nest/pkg/project"
)

// Options every template understands.
var (
	optGithub = options.Declaration{
		Key: builders.OptGithub, Type: options.TypeBool, Default: true,
		Description: "Generate GitHub workflows and config",
	}
	optDependabot = options.Declaration{
		Key: builders.OptDependabot, Type: options.TypeBool, Default: true,
		Description: "Generate a weekly dependabot config (needs github)",
	}
	optDefaultWorkflows = options.Declaration{
		Key: builders.OptDefaultWorkflows, Type: options.TypeBool, Default: true,
		Description: "Generate the pull request workflow (needs github)",
	}
	optVSCode = options.Declaration{
		Key: builders.OptVSCode, Type: options.TypeBool, Default: true,
		Description: "Generate .vscode/settings.json",
	}
	optJest = options.Declaration{
		Key: builders.OptJest, Type: options.TypeBool, Default: true,
		Description: "Set up jest and the test task",
	}
	optNodeVersion = options.Declaration{
		Key: builders.OptNodeVersion, Type: options.TypeString, Default: "18",
		Description: "Node.js major version for CI and Docker images",
	}
	optPackageManager = options.Declaration{
		Key: builders.OptPackageManager, Type: options.TypeString, Default: "npm",
		Description: "Package manager used by workflows",
		Enum:        []string{"npm", "yarn", "pnpm"},
	}
	optLintPaths = options.Declaration{
		Key: builders.OptLintPaths, Type: options.TypeStringList,
		Description: "Paths passed to the formatter and linter",
	}
	optSrcdir = options.Declaration{
		Key: builders.OptSrcdir, Type: options.TypeString,
		Description: "Directory sample sources are placed under",
	}
)

// rcTarget normalizes the rc file with the given formatter commands.
func rcTarget(commands ...[]string) normalize.Target {
	return normalize.Target{
		Path:      project.RCFileName,
		Canonical: normalize.YAML,
		Commands:  commands,
	}
}

// eslintVSCodeLayer turns on the ESLint class API with caching.
func eslintVSCodeLayer() map[string]any {
	return map[string]any{
		"eslint.useESLintClass": true,
		"eslint.options": map[string]any{
			"cache":                         true,
			"reportUnusedDisableDirectives": "error",
		},
	}
}

func tsTask(name string, phase artifact.Phase, desc string, steps ...string) *artifact.Task {
	return &artifact.Task{Name: name, Phase: phase, Description: desc, Steps: steps}
}
