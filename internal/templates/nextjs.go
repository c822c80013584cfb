package templates

import (
	"github.com/simonhull/firebird-suite/nest/internal/artifact"
	"github.com/simonhull/firebird-suite/nest/internal/builders"
	"github.com/simonhull/firebird-suite/nest/internal/normalize"
	"github.com/simonhull/firebird-suite/nest/internal/options"
)

const codemodTransform = "scripts/add-src-reference-codemod.js"

// NextJS is a Next.js TypeScript app with optional GraphQL client codegen
// and tailwind UI setup.
func NextJS() Descriptor {
	return Descriptor{
		Name:        "nextjs",
		Description: "Next.js app with GraphQL codegen, tailwind and jest",
		Builders: []builders.Builder{
			&builders.Manifest{
				Tasks: []*artifact.Task{
					tsTask("dev", artifact.PhaseDev, "Start the development server", "next dev"),
					tsTask("build", artifact.PhaseBuild, "Production build", "next build"),
					tsTask("start", artifact.PhaseDev, "Serve the production build", "next start"),
					tsTask("export", artifact.PhaseRelease, "Export a static site", "next export"),
				},
				CompilerOptions: map[string]any{
					"baseUrl":          "./",
					"target":           "es6",
					"lib":              []any{"dom", "dom.iterable", "esnext"},
					"allowJs":          true,
					"module":           "esnext",
					"moduleResolution": "node",
					"isolatedModules":  true,
					"jsx":              "preserve",
					"noEmit":           true,
					"incremental":      true,
				},
			},
			&builders.Deps{
				Name:    "nextjs-deps",
				Runtime: []string{"next", "react", "react-dom"},
				Dev:     []string{"typescript", "@types/node", "@types/react", "yaml", "jscodeshift"},
			},
			&builders.Sample{
				Name: "nextjs-sample",
				Assets: []string{
					"nextjs/pages/_app.tsx.tmpl",
					"nextjs/pages/index.tsx.sample",
					"nextjs/next.config.js",
					"nextjs/next-env.d.ts.sample",
					"nextjs/.env.development",
				},
			},
			&builders.Sample{
				Name: "nextjs-e2e-sample",
				When: builders.OptE2E,
				Assets: []string{
					"nextjs/src/tests/common/test.ts.sample",
					"nextjs/src/tests/pages/base.ts.sample",
					"nextjs/src/tests/pages/index.ts.sample",
					"nextjs/src/tests/pages/products.ts.sample",
					"nextjs/src/tests/pages/sign-in.ts.sample",
					"nextjs/src/tests/sign-in.spec.ts.sample",
				},
				UnderSrcdir: true,
			},
			&builders.Assets{
				Name:  "nextjs-assets",
				Files: []string{"nextjs/next.config.defaults.js", "nextjs/scripts/add-src-reference-codemod.js"},
			},
			&builders.Lint{
				Tool:         builders.ToolESLint,
				DefaultPaths: []string{".nestrc.yml", "pages", "src"},
				ExtraExtends: []string{"plugin:tailwindcss/recommended"},
				ExtraDeps:    []string{"eslint-plugin-tailwindcss"},
				ExtrasWhen:   builders.OptUI,
			},
			&builders.Codegen{
				When:   builders.OptGraphql,
				Config: nextjsCodegenConfig(),
				Runtime: []string{
					"@apollo/client",
					"@graphql-codegen/add",
					"@graphql-codegen/cli",
					"@graphql-codegen/import-types-preset",
					"@graphql-codegen/introspection",
					"@graphql-codegen/named-operations-object",
					"@graphql-codegen/typescript",
					"@graphql-codegen/typescript-graphql-request",
					"@graphql-codegen/typescript-operations",
					"@graphql-codegen/typescript-react-apollo",
					"graphql",
				},
				Tasks: []*artifact.Task{builders.GraphqlSchemaTask(), builders.GqlToTSTask("")},
			},
			&builders.Jest{
				Command: "jest",
				Configs: []string{"nextjs/jest.config.js", "nextjs/jest.setup.js"},
				Samples: []string{"nextjs/src/__tests__/index.test.tsx.sample"},
				Dev:     []string{"@testing-library/react", "@testing-library/jest-dom", "jest-environment-jsdom"},
			},
			&builders.UI{},
			&builders.Docker{
				IgnoreLines: []string{"node_modules", ".next"},
				Dockerfiles: []string{"nextjs/Dockerfile.dev.tmpl", "nextjs/Dockerfile.production.tmpl"},
			},
			&builders.VSCode{Layers: []map[string]any{
				builders.BaseVSCodeSettings(),
				eslintVSCodeLayer(),
			}},
			&builders.Gitignore{Extra: []string{".next/", ".idea/", "debug/", ".vscode/tasks.json", "build/"}},
			&builders.Tasks{
				Name: "nextjs-tasks",
				Add: []*artifact.Task{
					tsTask("codemod:add-src-to-imports", artifact.PhaseMaint, "Rewrite imports to src-relative paths",
						"jscodeshift -t ./"+codemodTransform+" --extensions=js,jsx,ts,tsx src pages"),
				},
			},
			&builders.Tasks{
				Name: "e2e",
				When: builders.OptE2E,
				Add: []*artifact.Task{
					tsTask("e2e", artifact.PhaseTest, "Run playwright end-to-end tests", "playwright test"),
				},
			},
			&builders.Deps{Name: "e2e-deps", When: builders.OptE2E, Dev: []string{"@playwright/test"}},
			&builders.PullRequest{},
			&builders.Dependabot{},
		},
		Defaults: options.Values{
			builders.OptSrcdir:  ".",
			builders.OptGraphql: true,
			builders.OptUI:      true,
			builders.OptE2E:     false,
		},
		Fixed: options.Values{
			builders.OptName:                 "nextjs",
			builders.OptDefaultReleaseBranch: "main",
			builders.OptPackageManager:       "npm",
		},
		Options: options.Declarations{
			optGithub, optDependabot, optDefaultWorkflows, optVSCode, optJest,
			optNodeVersion, optLintPaths, optSrcdir,
			{
				Key: builders.OptGraphql, Type: options.TypeBool, Default: true,
				Description: "Set up the Apollo client and GraphQL codegen",
			},
			{
				Key: builders.OptUI, Type: options.TypeBool, Default: true,
				Description: "Set up tailwind, postcss and UI packages",
			},
			{
				Key: builders.OptE2E, Type: options.TypeBool, Default: false,
				Description: "Add playwright end-to-end sample tests",
			},
		},
		Normalize: []normalize.Target{rcTarget(
			[]string{"prettier", "--write", ".nestrc.yml"},
			[]string{"eslint", "--fix", ".nestrc.yml"},
		)},
	}
}

func nextjsCodegenConfig() map[string]any {
	return map[string]any{
		"overwrite": true,
		"schema":    "graphql.schema.json",
		"documents": []any{"src/**/*.graphql", "pages/**/*.graphql"},
		"generates": map[string]any{
			"src/generated/index.tsx": map[string]any{
				"plugins": []any{
					map[string]any{"add": map[string]any{"content": "/* eslint-disable */"}},
					"typescript",
					"typescript-operations",
					"typescript-react-apollo",
					"named-operations-object",
				},
				"config": map[string]any{"withHooks": true},
			},
			"graphql.schema.json": map[string]any{
				"plugins": []any{"introspection"},
			},
		},
	}
}
