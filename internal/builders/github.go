package builders

import (
	"github.com/simonhull/firebird-suite/nest/internal/artifact"
	"github.com/simonhull/firebird-suite/nest/internal/options"
	"github.com/simonhull/firebird-suite/nest/internal/workflow"
)

const (
	pullRequestWorkflowPath = ".github/workflows/pull-request.yml"
	releaseWorkflowPath     = ".github/workflows/release.yml"
	dependabotPath          = ".github/dependabot.yml"
)

// checkTasks are run by the pull request workflow when present, in order.
var checkTasks = []string{"lint", "typecheck", "test", "build"}

func nodeOptions(opts options.Resolved) workflow.NodeOptions {
	return workflow.NodeOptions{
		NodeVersion:    opts.String(OptNodeVersion, "18"),
		PackageManager: opts.String(OptPackageManager, "npm"),
	}
}

// runnable reports whether the named task has steps. Tasks without steps
// never reach package.json scripts, so "npm run" cannot call them.
func runnable(view artifact.View, name string) bool {
	t, ok := artifact.GetTask(view, name)
	return ok && len(t.Steps) > 0
}

// PullRequest contributes the default pull request workflow. It runs only
// when github and hasDefaultGithubWorkflows are on, and leaves an existing
// workflow at the same path alone.
type PullRequest struct{}

func (p *PullRequest) ID() string { return "github" }

func (p *PullRequest) Contribute(view artifact.View, opts options.Resolved) ([]artifact.Contribution, error) {
	if !opts.Bool(OptGithub, true) || !opts.Bool(OptDefaultWorkflows, true) {
		return nil, nil
	}
	if view.Has(artifact.FileKey(pullRequestWorkflowPath)) {
		return nil, nil
	}

	var tasks []string
	for _, name := range checkTasks {
		if runnable(view, name) {
			tasks = append(tasks, name)
		}
	}

	wf := workflow.PullRequestTest(nodeOptions(opts), tasks)
	return []artifact.Contribution{artifact.Add(yamlFile(pullRequestWorkflowPath, wf))}, nil
}

// Release contributes the release workflow seeded with initialReleaseVersion.
type Release struct{}

func (r *Release) ID() string { return "release" }

func (r *Release) Contribute(view artifact.View, opts options.Resolved) ([]artifact.Contribution, error) {
	if !opts.Bool(OptGithub, true) {
		return nil, nil
	}

	ro := workflow.ReleaseOptions{
		NodeOptions:    nodeOptions(opts),
		Branch:         opts.String(OptDefaultReleaseBranch, "main"),
		InitialVersion: opts.String(OptInitialReleaseVersion, "0.0.1"),
	}
	if runnable(view, "build") {
		ro.BuildTask = "build"
	}
	return []artifact.Contribution{artifact.Add(yamlFile(releaseWorkflowPath, workflow.Release(ro)))}, nil
}

// Dependabot contributes a weekly dependabot config when github and
// dependabot are both on.
type Dependabot struct{}

func (d *Dependabot) ID() string { return "dependabot" }

func (d *Dependabot) Contribute(view artifact.View, opts options.Resolved) ([]artifact.Contribution, error) {
	if !opts.Bool(OptGithub, true) || !opts.Bool(OptDependabot, true) {
		return nil, nil
	}
	return []artifact.Contribution{artifact.Add(yamlFile(dependabotPath, workflow.WeeklyDependabot()))}, nil
}
