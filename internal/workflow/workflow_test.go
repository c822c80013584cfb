package workflow

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPullRequestTest(t *testing.T) {
	w := PullRequestTest(NodeOptions{NodeVersion: "18", PackageManager: "npm"}, []string{"lint", "test", "build"})

	data, err := w.Marshal()
	require.NoError(t, err)
	out := string(data)

	assert.True(t, strings.HasPrefix(out, "name: pull-request\n"))
	assert.Contains(t, out, "pull_request: {}")
	assert.Contains(t, out, "run: npm ci")
	assert.Contains(t, out, "run: npm run lint")
	assert.Less(t, strings.Index(out, "npm run lint"), strings.Index(out, "npm run build"))

	parsed, err := Parse(data)
	require.NoError(t, err)
	require.Contains(t, parsed.Jobs, "test")
	assert.Len(t, parsed.Jobs["test"].Steps, 6)
}

func TestPullRequestTest_PackageManagers(t *testing.T) {
	tests := []struct {
		pm      string
		install string
		run     string
	}{
		{"npm", "npm ci", "npm run test"},
		{"yarn", "yarn install --frozen-lockfile", "yarn test"},
		{"pnpm", "pnpm install --frozen-lockfile", "pnpm run test"},
	}

	for _, tt := range tests {
		t.Run(tt.pm, func(t *testing.T) {
			w := PullRequestTest(NodeOptions{NodeVersion: "20", PackageManager: tt.pm}, []string{"test"})
			steps := w.Jobs["test"].Steps
			assert.Equal(t, tt.install, steps[2].Run)
			assert.Equal(t, tt.run, steps[3].Run)
		})
	}
}

func TestRelease(t *testing.T) {
	w := Release(ReleaseOptions{
		NodeOptions:    NodeOptions{NodeVersion: "18"},
		Branch:         "main",
		InitialVersion: "0.0.1",
		BuildTask:      "build",
	})

	data, err := w.Marshal()
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "- main")
	assert.Contains(t, out, `NEXT="v0.0.1"`)
	assert.Contains(t, out, "contents: write")
	assert.Contains(t, out, "fetch-depth: 0")
	assert.Contains(t, out, "npm run build")
}

func TestMarshal_Deterministic(t *testing.T) {
	build := func() []byte {
		w := Release(ReleaseOptions{NodeOptions: NodeOptions{NodeVersion: "18"}, Branch: "main", InitialVersion: "1.0.0"})
		w.Jobs["extra"] = &Job{RunsOn: "ubuntu-latest", Steps: []Step{{Run: "true"}}}
		data, err := w.Marshal()
		require.NoError(t, err)
		return data
	}
	assert.Equal(t, build(), build())
}

func TestValidate(t *testing.T) {
	valid := func() *Workflow {
		return &Workflow{
			Name: "ci",
			On:   Triggers{Push: &BranchFilter{}},
			Jobs: map[string]*Job{"a": {RunsOn: "ubuntu-latest", Steps: []Step{{Run: "echo"}}}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Workflow)
		wantErr string
	}{
		{"valid", func(*Workflow) {}, ""},
		{"no name", func(w *Workflow) { w.Name = "" }, "no name"},
		{"no trigger", func(w *Workflow) { w.On = Triggers{} }, "no trigger"},
		{"no jobs", func(w *Workflow) { w.Jobs = nil }, "no jobs"},
		{"no runner", func(w *Workflow) { w.Jobs["a"].RunsOn = "" }, "runs-on"},
		{"no steps", func(w *Workflow) { w.Jobs["a"].Steps = nil }, "no steps"},
		{"uses and run", func(w *Workflow) { w.Jobs["a"].Steps[0].Uses = "x@v1" }, "exactly one"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := valid()
			tt.mutate(w)
			err := w.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestClone(t *testing.T) {
	w := PullRequestTest(NodeOptions{NodeVersion: "18"}, []string{"test"})
	c := w.Clone().(*Workflow)
	c.Jobs["test"].Steps[0].Name = "changed"
	assert.Equal(t, "Checkout", w.Jobs["test"].Steps[0].Name)

	d := WeeklyDependabot()
	dc := d.Clone().(*Dependabot)
	dc.Updates[0].Labels[0] = "changed"
	assert.Equal(t, "auto-approve", d.Updates[0].Labels[0])
}

func TestWeeklyDependabot(t *testing.T) {
	data, err := WeeklyDependabot().Marshal()
	require.NoError(t, err)
	out := string(data)
	assert.True(t, strings.HasPrefix(out, "version: 2\n"))
	assert.Contains(t, out, "interval: weekly")
	assert.Contains(t, out, "package-ecosystem: npm")
}
