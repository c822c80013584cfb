package builders

import (
	"github.com/simonhull/firebird-suite/nest/internal/artifact"
	"github.com/simonhull/firebird-suite/nest/internal/options"
)

// Codegen contributes codegen.yml, the GraphQL dependency bundle and the
// schema download / type generation tasks.
type Codegen struct {
	// When gates the feature; empty means always on.
	When string

	Config  map[string]any
	Runtime []string
	Dev     []string
	Tasks   []*artifact.Task
}

func (c *Codegen) ID() string { return "codegen" }

func (c *Codegen) Contribute(view artifact.View, opts options.Resolved) ([]artifact.Contribution, error) {
	if !enabled(opts, c.When) {
		return nil, nil
	}

	out := []artifact.Contribution{artifact.Add(yamlFile("codegen.yml", artifact.CloneValue(c.Config)))}
	for _, t := range c.Tasks {
		out = append(out, artifact.Add(t))
	}

	deps, err := bundle(c.Runtime, c.Dev)
	if err != nil {
		return nil, err
	}
	return append(out, deps...), nil
}

// GraphqlSchemaTask downloads the schema of the configured endpoint.
func GraphqlSchemaTask() *artifact.Task {
	return task("generate-graphql-schema", artifact.PhaseDev, "Download the GraphQL schema", "npx apollo schema:download")
}

// GqlToTSTask generates TypeScript types from the GraphQL schema.
func GqlToTSTask(extraArgs string) *artifact.Task {
	cmd := "graphql-codegen -r dotenv/config --config codegen.yml"
	if extraArgs != "" {
		cmd += " " + extraArgs
	}
	return task("gql-to-ts", artifact.PhaseDev, "Generate TypeScript from GraphQL", cmd)
}
