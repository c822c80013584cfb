// Package builders holds the feature builders templates compose. A builder
// reads the options and the artifacts earlier builders registered, and
// returns the contributions it wants applied. Builders never write files.
package builders

import (
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/simonhull/firebird-suite/nest/internal/artifact"
	"github.com/simonhull/firebird-suite/nest/internal/assets"
	"github.com/simonhull/firebird-suite/nest/internal/options"
)

// Builder contributes one feature to a project.
type Builder interface {
	ID() string
	Contribute(view artifact.View, opts options.Resolved) ([]artifact.Contribution, error)
}

// Option keys builders read.
const (
	OptName                  = "name"
	OptGithub                = "github"
	OptDependabot            = "dependabot"
	OptDefaultWorkflows      = "hasDefaultGithubWorkflows"
	OptVSCode                = "vscode"
	OptJest                  = "jest"
	OptNodeVersion           = "nodeVersion"
	OptPackageManager        = "packageManager"
	OptDefaultReleaseBranch  = "defaultReleaseBranch"
	OptInitialReleaseVersion = "initialReleaseVersion"
	OptLintPaths             = "lintPaths"
	OptGraphql               = "isGraphqlEnabled"
	OptUI                    = "isUiConfigEnabled"
	OptSrcdir                = "srcdir"
	OptE2E                   = "e2e"
)

// idOr returns id, or def when id is empty.
func idOr(id, def string) string {
	if id != "" {
		return id
	}
	return def
}

// enabled reports whether the gating option is on. An empty key means the
// builder is unconditional.
func enabled(opts options.Resolved, key string) bool {
	return key == "" || opts.Bool(key, false)
}

// assetFile turns an embedded asset into a File at its output name, placed
// under dir when dir is not empty or ".".
func assetFile(asset, dir string, generated bool) (*artifact.File, error) {
	if !assets.Exists(asset) {
		return nil, fmt.Errorf("unknown asset %s", asset)
	}
	out := assets.OutputName(asset)
	if dir != "" && dir != "." {
		out = path.Join(dir, out)
	}
	return &artifact.File{
		Path:       out,
		Asset:      asset,
		Template:   assets.IsTemplate(asset),
		Generated:  generated,
		Executable: strings.HasSuffix(out, ".sh"),
	}, nil
}

func assetFiles(list []string, dir string, generated bool) ([]artifact.Contribution, error) {
	out := make([]artifact.Contribution, 0, len(list))
	for _, a := range list {
		f, err := assetFile(a, dir, generated)
		if err != nil {
			return nil, err
		}
		out = append(out, artifact.Add(f))
	}
	return out, nil
}

func jsonFile(path string, obj any) *artifact.File {
	return &artifact.File{Path: path, Object: obj, Format: artifact.FormatJSON, Generated: true}
}

func yamlFile(path string, obj any) *artifact.File {
	return &artifact.File{Path: path, Object: obj, Format: artifact.FormatYAML, Generated: true}
}

func textFile(path string, lines []string) *artifact.File {
	return &artifact.File{Path: path, Content: []byte(strings.Join(lines, "\n") + "\n"), Generated: true}
}

func task(name string, phase artifact.Phase, desc string, steps ...string) *artifact.Task {
	return &artifact.Task{Name: name, Phase: phase, Description: desc, Steps: steps}
}

// depContributions parses dependency specs into add contributions.
func depContributions(typ artifact.DepType, specs []string) ([]artifact.Contribution, error) {
	out := make([]artifact.Contribution, 0, len(specs))
	for _, s := range specs {
		d, err := artifact.ParseDependency(s, typ)
		if err != nil {
			return nil, err
		}
		out = append(out, artifact.Add(d))
	}
	return out, nil
}

// bundle adds runtime then dev dependencies.
func bundle(runtime, dev []string) ([]artifact.Contribution, error) {
	r, err := depContributions(artifact.Runtime, runtime)
	if err != nil {
		return nil, err
	}
	d, err := depContributions(artifact.Dev, dev)
	if err != nil {
		return nil, err
	}
	return append(r, d...), nil
}

// addOrReplace picks the action for a key earlier builders may already hold.
func addOrReplace(view artifact.View, a artifact.Artifact) artifact.Contribution {
	if view.Has(a.Key()) {
		return artifact.Replace(a)
	}
	return artifact.Add(a)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
