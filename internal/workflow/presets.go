package workflow

import "fmt"

const (
	checkoutAction  = "actions/checkout@v4"
	setupNodeAction = "actions/setup-node@v4"
	ubuntu          = "ubuntu-latest"
)

// NodeOptions configures the node setup shared by every preset.
type NodeOptions struct {
	NodeVersion    string
	PackageManager string // npm, yarn or pnpm
}

func (o NodeOptions) installCommand() string {
	switch o.PackageManager {
	case "yarn":
		return "yarn install --frozen-lockfile"
	case "pnpm":
		return "pnpm install --frozen-lockfile"
	default:
		return "npm ci"
	}
}

func (o NodeOptions) runCommand(task string) string {
	switch o.PackageManager {
	case "yarn":
		return "yarn " + task
	case "pnpm":
		return "pnpm run " + task
	default:
		return "npm run " + task
	}
}

func (o NodeOptions) setupSteps(fetchDepth int) []Step {
	checkout := Step{Name: "Checkout", Uses: checkoutAction}
	if fetchDepth >= 0 {
		checkout.With = map[string]any{"fetch-depth": fetchDepth}
	}
	cache := o.PackageManager
	if cache == "" {
		cache = "npm"
	}
	return []Step{
		checkout,
		{Name: "Setup node", Uses: setupNodeAction, With: map[string]any{"node-version": o.NodeVersion, "cache": cache}},
		{Name: "Install dependencies", Run: o.installCommand()},
	}
}

// PullRequestTest returns the workflow that runs each of tasks, in order,
// on every pull request.
func PullRequestTest(node NodeOptions, tasks []string) *Workflow {
	steps := node.setupSteps(-1)
	for _, task := range tasks {
		steps = append(steps, Step{Name: "Run " + task, Run: node.runCommand(task)})
	}
	return &Workflow{
		Name: "pull-request",
		On:   Triggers{PullRequest: &BranchFilter{}},
		Concurrency: &Concurrency{
			Group:            "${{ github.workflow }}-${{ github.ref }}",
			CancelInProgress: true,
		},
		Jobs: map[string]*Job{
			"test": {Name: "Lint and test", RunsOn: ubuntu, Steps: steps},
		},
	}
}

// ReleaseOptions configures the release workflow.
type ReleaseOptions struct {
	NodeOptions
	Branch         string
	InitialVersion string
	BuildTask      string // empty to skip building
}

// Release returns a workflow that tags and publishes a GitHub release on
// every push to the release branch. The first release uses InitialVersion;
// later ones bump the patch of the latest tag.
func Release(opts ReleaseOptions) *Workflow {
	steps := opts.setupSteps(0)
	if opts.BuildTask != "" {
		steps = append(steps, Step{Name: "Build", Run: opts.runCommand(opts.BuildTask)})
	}
	steps = append(steps,
		Step{
			Name: "Compute version",
			ID:   "version",
			Run:  versionScript(opts.InitialVersion),
		},
		Step{
			Name: "Create release",
			Run:  `gh release create "${{ steps.version.outputs.tag }}" --target "${{ github.sha }}" --generate-notes`,
			Env:  map[string]string{"GH_TOKEN": "${{ secrets.GITHUB_TOKEN }}"},
		},
	)

	return &Workflow{
		Name:        "release",
		On:          Triggers{Push: &BranchFilter{Branches: []string{opts.Branch}}, WorkflowDispatch: &struct{}{}},
		Permissions: map[string]string{"contents": "write"},
		Jobs: map[string]*Job{
			"release": {Name: "Release", RunsOn: ubuntu, Steps: steps},
		},
	}
}

func versionScript(initial string) string {
	return fmt.Sprintf(`LATEST=$(git describe --tags --abbrev=0 2>/dev/null || true)
if [ -z "$LATEST" ]; then
  NEXT="v%s"
else
  IFS=. read -r MAJOR MINOR PATCH <<< "${LATEST#v}"
  NEXT="v$MAJOR.$MINOR.$((PATCH + 1))"
fi
echo "tag=$NEXT" >> "$GITHUB_OUTPUT"
`, initial)
}

// Dependabot is a .github/dependabot.yml document.
type Dependabot struct {
	Version int              `yaml:"version"`
	Updates []DependabotRule `yaml:"updates"`
}

type DependabotRule struct {
	PackageEcosystem      string             `yaml:"package-ecosystem"`
	Directory             string             `yaml:"directory"`
	Schedule              DependabotSchedule `yaml:"schedule"`
	OpenPullRequestsLimit int                `yaml:"open-pull-requests-limit,omitempty"`
	VersioningStrategy    string             `yaml:"versioning-strategy,omitempty"`
	Labels                []string           `yaml:"labels,omitempty"`
}

type DependabotSchedule struct {
	Interval string `yaml:"interval"`
}

// WeeklyDependabot updates npm packages and workflow actions once a week.
func WeeklyDependabot() *Dependabot {
	return &Dependabot{
		Version: 2,
		Updates: []DependabotRule{
			{
				PackageEcosystem:   "npm",
				Directory:          "/",
				Schedule:           DependabotSchedule{Interval: "weekly"},
				VersioningStrategy: "lockfile-only",
				Labels:             []string{"auto-approve"},
			},
			{
				PackageEcosystem: "github-actions",
				Directory:        "/",
				Schedule:         DependabotSchedule{Interval: "weekly"},
			},
		},
	}
}

// Marshal encodes the dependabot config.
func (d *Dependabot) Marshal() ([]byte, error) {
	return encode(d)
}

// Clone returns a deep copy.
func (d *Dependabot) Clone() any {
	c := *d
	c.Updates = make([]DependabotRule, len(d.Updates))
	for i, u := range d.Updates {
		u.Labels = append([]string(nil), u.Labels...)
		c.Updates[i] = u
	}
	return &c
}
