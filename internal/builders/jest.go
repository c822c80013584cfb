package builders

import (
	"github.com/simonhull/firebird-suite/nest/internal/artifact"
	"github.com/simonhull/firebird-suite/nest/internal/options"
)

// Jest contributes the test setup when the jest option is on, and removes
// the test task when it is off.
type Jest struct {
	// Command for the test task. Empty keeps whatever test task exists.
	Command string

	Configs []string // generated config assets
	Samples []string // starter test assets
	Dev     []string
}

func (j *Jest) ID() string { return "jest" }

func (j *Jest) Contribute(view artifact.View, opts options.Resolved) ([]artifact.Contribution, error) {
	if !opts.Bool(OptJest, true) {
		return []artifact.Contribution{artifact.RemoveTask("test")}, nil
	}

	var out []artifact.Contribution
	if j.Command != "" {
		out = append(out, artifact.Add(task("test", artifact.PhaseTest, "Run tests", j.Command)))
	}

	configs, err := assetFiles(j.Configs, "", true)
	if err != nil {
		return nil, err
	}
	samples, err := assetFiles(j.Samples, opts.String(OptSrcdir, ""), false)
	if err != nil {
		return nil, err
	}
	deps, err := depContributions(artifact.Dev, append([]string{"jest", "@types/jest"}, j.Dev...))
	if err != nil {
		return nil, err
	}

	out = append(out, configs...)
	out = append(out, samples...)
	return append(out, deps...), nil
}
