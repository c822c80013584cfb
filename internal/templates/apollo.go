package templates

import (
	"github.com/simonhull/firebird-suite/nest/internal/artifact"
	"github.com/simonhull/firebird-suite/nest/internal/builders"
	"github.com/simonhull/firebird-suite/nest/internal/normalize"
	"github.com/simonhull/firebird-suite/nest/internal/options"
)

// ApolloServer is a GraphQL API served by apollo-server and bundled with
// esbuild.
func ApolloServer() Descriptor {
	return Descriptor{
		Name:        "apollo-server",
		Description: "Apollo GraphQL server bundled with esbuild",
		Builders: []builders.Builder{
			&builders.Manifest{
				Tasks: builders.TypeScriptAppTasks(),
				CompilerOptions: map[string]any{
					"module":           "esnext",
					"moduleResolution": "node",
					"target":           "es2020",
					"outDir":           "build",
				},
			},
			&builders.Tasks{
				Name:   "apollo-tasks",
				Remove: []string{"build", "compile", "package", "post-compile", "pre-compile", "watch"},
				Add: []*artifact.Task{
					tsTask("build", artifact.PhaseBuild, "Bundle the server", "node esbuild.config.js"),
					tsTask("dev", artifact.PhaseDev, "Rebuild and restart on change", "nodemon"),
					tsTask("start", artifact.PhaseDev, "Start the bundled server", "node build/index.js"),
				},
			},
			&builders.Deps{
				Name: "apollo-deps",
				Runtime: []string{
					"apollo-server@3.7.0",
					"axios@0.27.2",
					"dd-trace@2.7.1",
					"dotenv@16.0.0",
					"esbuild@0.14.39",
					"graphql@16.5.0",
					"source-map-support@0.5.21",
					"yup@0.32.11",
					"@graphql-tools/merge@8.2.11",
					"@graphql-tools/schema@8.3.13",
				},
				Dev: []string{
					"@types/source-map-support@0.5.4",
					"nodemon@2.0.16",
					"typescript",
					"@types/node",
				},
			},
			&builders.Codegen{
				Config: apolloCodegenConfig(),
				Dev: []string{
					"@graphql-codegen/add@3.1.1",
					"@graphql-codegen/cli@2.6.2",
					"@graphql-codegen/named-operations-object@2.2.1",
					"@graphql-codegen/typescript@2.4.8",
					"@graphql-codegen/typescript-operations@2.4.0",
					"@graphql-codegen/typescript-resolvers@2.6.4",
					"@graphql-codegen/typescript-graphql-request@4.4.8",
				},
				Tasks: []*artifact.Task{
					builders.GraphqlSchemaTask(),
					builders.GqlToTSTask("dotenv_config_path=.env.development"),
				},
			},
			&builders.Lint{
				Tool:         builders.ToolOfmt,
				DefaultPaths: []string{".nestrc.yml", "src"},
			},
			&builders.Fields{Values: map[string]any{
				"type":     "module",
				"prettier": "@ottofeller/prettier-config-ofmt",
				"eslintConfig": map[string]any{
					"extends": []any{"@ottofeller/eslint-config-ofmt/eslint.quality.cjs"},
				},
			}},
			&builders.Sample{
				Name: "apollo-sample",
				Assets: []string{
					"apollo-server/src/index.ts.sample",
					"apollo-server/src/logger/create-logger.ts",
					"apollo-server/.env.development",
				},
			},
			&builders.Jest{
				Command: "jest",
				Samples: []string{"apollo-server/src/logger/__tests__/index.ts.sample"},
				Dev:     []string{"ts-jest"},
			},
			&builders.Assets{
				Name:  "apollo-assets",
				Files: []string{"apollo-server/apollo.config.cjs", "apollo-server/esbuild.config.js.tmpl"},
			},
			&builders.Docker{
				IgnoreAsset: "apollo-server/.dockerignore",
				Dockerfiles: []string{"apollo-server/Dockerfile.tmpl"},
			},
			&builders.Nodemon{Config: map[string]any{
				"env":    map[string]any{"NODE_ENV": "development"},
				"exec":   "npm run build && npm run start",
				"ext":    "ts,json",
				"ignore": []any{"src/**/*.test.ts", "src/**/__tests__/**"},
				"watch":  []any{"src"},
			}},
			&builders.PullRequest{},
			&builders.Dependabot{},
			&builders.VSCode{Layers: []map[string]any{
				builders.BaseVSCodeSettings(),
				eslintVSCodeLayer(),
			}},
			&builders.Gitignore{Extra: []string{"build/", ".env*.local"}},
		},
		Defaults: options.Values{},
		Fixed: options.Values{
			builders.OptName:                 "apollo-server",
			builders.OptDefaultReleaseBranch: "main",
			builders.OptPackageManager:       "npm",
		},
		Options: options.Declarations{
			optGithub, optDependabot, optDefaultWorkflows, optVSCode, optJest,
			optNodeVersion, optLintPaths,
		},
		Normalize: []normalize.Target{rcTarget([]string{"ofmt", ".nestrc.yml"})},
	}
}

func apolloCodegenConfig() map[string]any {
	return map[string]any{
		"overwrite": true,
		"schema":    "src/**/*.graphql",
		"generates": map[string]any{
			"src/generated/index.ts": map[string]any{
				"plugins": []any{
					map[string]any{"add": map[string]any{"content": "/* eslint-disable */"}},
					"typescript",
					"typescript-resolvers",
					"typescript-operations",
					"named-operations-object",
				},
				"config": map[string]any{
					"useIndexSignature": true,
					"enumsAsTypes":      true,
				},
			},
		},
	}
}
