package resolve

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/firebird-suite/nest/internal/artifact"
)

func entry(builder string, c artifact.Contribution) artifact.Entry {
	return artifact.Entry{Builder: builder, Action: c.Action, Artifact: c.Artifact}
}

func task(name string, steps ...string) *artifact.Task {
	return &artifact.Task{Name: name, Steps: steps}
}

func file(path, content string) *artifact.File {
	return &artifact.File{Path: path, Content: []byte(content), Generated: true}
}

func TestResolve_TaskReplaceSemantics(t *testing.T) {
	result, err := Resolve([]artifact.Entry{
		entry("manifest", artifact.Add(task("test", "jest"))),
		entry("apollo", artifact.Replace(task("test", "jest --passWithNoTests"))),
	})
	require.NoError(t, err)

	got, ok := result.Get(artifact.TaskKey("test"))
	require.True(t, ok)
	assert.Equal(t, []string{"jest --passWithNoTests"}, got.(*artifact.Task).Steps)
	assert.Equal(t, "apollo", result.Owner(artifact.TaskKey("test")))
}

func TestResolve_SecondTaskAddActsAsReplace(t *testing.T) {
	result, err := Resolve([]artifact.Entry{
		entry("manifest", artifact.Add(task("build", "tsc"))),
		entry("apollo", artifact.Add(task("build", "node esbuild.config.js"))),
	})
	require.NoError(t, err)

	got, _ := result.Get(artifact.TaskKey("build"))
	assert.Equal(t, []string{"node esbuild.config.js"}, got.(*artifact.Task).Steps)
	assert.Equal(t, "apollo", result.Owner(artifact.TaskKey("build")))
}

func TestResolve_ConflictingDockerfileNamesBothBuilders(t *testing.T) {
	_, err := Resolve([]artifact.Entry{
		entry("docker", artifact.Add(file("Dockerfile", "FROM node:18"))),
		entry("extra-docker", artifact.Add(file("Dockerfile", "FROM node:20"))),
	})

	var dup *DuplicateArtifactError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, artifact.KindFile, dup.Kind)
	assert.Equal(t, "Dockerfile", dup.Key)
	assert.Equal(t, []string{"docker", "extra-docker"}, dup.Builders)
	assert.Contains(t, err.Error(), "docker, extra-docker")
}

func TestResolve_DuplicateAfterRemoveNamesOnlyColliders(t *testing.T) {
	_, err := Resolve([]artifact.Entry{
		entry("a", artifact.Add(file("Dockerfile", "FROM node:16"))),
		entry("b", artifact.Remove(file("Dockerfile", ""))),
		entry("c", artifact.Add(file("Dockerfile", "FROM node:18"))),
		entry("d", artifact.Add(file("Dockerfile", "FROM node:20"))),
	})

	var dup *DuplicateArtifactError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, []string{"c", "d"}, dup.Builders)
}

func TestResolve_DuplicateField(t *testing.T) {
	_, err := Resolve([]artifact.Entry{
		entry("fields", artifact.Add(&artifact.Field{Name: "type", Value: "module"})),
		entry("other", artifact.Add(&artifact.Field{Name: "type", Value: "commonjs"})),
	})
	var dup *DuplicateArtifactError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, artifact.KindField, dup.Kind)
}

func TestResolve_RemoveOfAbsentIsSafe(t *testing.T) {
	result, err := Resolve([]artifact.Entry{
		entry("manifest", artifact.Add(task("build", "tsc"))),
		entry("apollo", artifact.RemoveTask("watch")),
		entry("apollo", artifact.RemoveTask("package")),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Len())
	assert.True(t, result.Has(artifact.TaskKey("build")))
}

func TestResolve_RemoveThenAdd(t *testing.T) {
	result, err := Resolve([]artifact.Entry{
		entry("manifest", artifact.Add(task("build", "tsc"))),
		entry("apollo", artifact.RemoveTask("build")),
		entry("apollo", artifact.Add(task("build", "node esbuild.config.js"))),
	})
	require.NoError(t, err)

	got, _ := result.Get(artifact.TaskKey("build"))
	assert.Equal(t, "node esbuild.config.js", got.(*artifact.Task).Command())
}

func TestResolve_RemovedKeysAreAbsent(t *testing.T) {
	result, err := Resolve([]artifact.Entry{
		entry("manifest", artifact.Add(task("test", "jest"))),
		entry("jest", artifact.RemoveTask("test")),
	})
	require.NoError(t, err)
	assert.False(t, result.Has(artifact.TaskKey("test")))
	assert.Empty(t, result.Owner(artifact.TaskKey("test")))
	assert.Empty(t, result.Tasks())
}

func TestResolve_ReplaceOfAbsent(t *testing.T) {
	_, err := Resolve([]artifact.Entry{
		entry("cdk", artifact.Replace(task("format", "prettier --write ."))),
	})

	var missing *MissingArtifactError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "format", missing.Key)
	assert.Equal(t, "cdk", missing.Builder)
	assert.Equal(t, artifact.KindTask, missing.Kind)
}

func TestResolve_DependencyConflictDetection(t *testing.T) {
	tests := []struct {
		name      string
		existing  string
		incoming  string
		wantError bool
	}{
		{"same exact", "1.7.0", "1.7.0", false},
		{"v prefix", "1.7.0", "v1.7.0", false},
		{"equals prefix", "=1.7.0", "1.7.0", false},
		{"empty and star", "", "*", false},
		{"same range", "^18.2.0", "^18.2.0", false},
		{"different exact", "1.7.0", "1.8.0", true},
		{"range vs exact", "^1.7.0", "1.7.0", true},
		{"tag vs empty", "latest", "", true},
		{"major vs exact", "1", "1.0.0", true},
		{"minor vs exact", "1.7", "1.7.0", true},
		{"major 18 vs exact", "18", "18.0.0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve([]artifact.Entry{
				entry("deps", artifact.Add(&artifact.Dependency{Name: "graphql", Constraint: tt.existing})),
				entry("codegen", artifact.Add(&artifact.Dependency{Name: "graphql", Constraint: tt.incoming})),
			})
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			var conflict *DependencyConflictError
			require.True(t, errors.As(err, &conflict))
			assert.Equal(t, "graphql", conflict.Name)
			assert.Equal(t, tt.existing, conflict.Existing)
			assert.Equal(t, tt.incoming, conflict.Incoming)
			assert.Equal(t, []string{"deps", "codegen"}, conflict.Builders)
		})
	}
}

func TestResolve_DependencyRuntimeWins(t *testing.T) {
	result, err := Resolve([]artifact.Entry{
		entry("lint", artifact.Add(&artifact.Dependency{Name: "dotenv", Type: artifact.Dev})),
		entry("deps", artifact.Add(&artifact.Dependency{Name: "dotenv", Type: artifact.Runtime})),
		entry("codegen", artifact.Add(&artifact.Dependency{Name: "dotenv", Type: artifact.Dev})),
	})
	require.NoError(t, err)

	deps := result.Dependencies()
	require.Len(t, deps, 1)
	assert.Equal(t, artifact.Runtime, deps[0].Type)
	assert.Equal(t, "deps", result.Owner(artifact.DependencyKey("dotenv")))
}

func TestState_ErrorLeavesStateUnchanged(t *testing.T) {
	s := NewState()
	require.NoError(t, s.Apply(entry("a", artifact.Add(file("x", "1")))))
	require.Error(t, s.Apply(entry("b", artifact.Add(file("x", "2")))))

	f, ok := artifact.GetFile(s, "x")
	require.True(t, ok)
	assert.Equal(t, "1", string(f.Content))
	assert.Equal(t, "a", s.Owner(artifact.FileKey("x")))
}

func TestState_ViewReturnsCopies(t *testing.T) {
	s := NewState()
	require.NoError(t, s.Apply(entry("a", artifact.Add(task("build", "tsc")))))

	got, _ := artifact.GetTask(s, "build")
	got.Steps[0] = "mutated"

	again, _ := artifact.GetTask(s, "build")
	assert.Equal(t, "tsc", again.Steps[0])
}

func TestState_ViewIsReadOnly(t *testing.T) {
	s := NewState()
	view := s.View()

	_, isState := view.(*State)
	assert.False(t, isState)
	_, canApply := view.(interface{ Apply(artifact.Entry) error })
	assert.False(t, canApply)

	require.NoError(t, s.Apply(entry("a", artifact.Add(task("build", "tsc")))))
	assert.True(t, view.Has(artifact.TaskKey("build")), "view follows the state")
	assert.Len(t, view.Tasks(), 1)
}

func TestState_SnapshotIsDetached(t *testing.T) {
	s := NewState()
	require.NoError(t, s.Apply(entry("a", artifact.Add(task("build", "tsc")))))
	snap := s.Snapshot()

	require.NoError(t, s.Apply(entry("b", artifact.RemoveTask("build"))))
	assert.True(t, snap.Has(artifact.TaskKey("build")))
	assert.False(t, s.Has(artifact.TaskKey("build")))
}

func TestResult_KeysSorted(t *testing.T) {
	result, err := Resolve([]artifact.Entry{
		entry("a", artifact.Add(task("z"))),
		entry("a", artifact.Add(file("b.txt", ""))),
		entry("a", artifact.Add(file("a.txt", ""))),
		entry("a", artifact.Add(task("m"))),
	})
	require.NoError(t, err)

	assert.Equal(t, []artifact.Key{
		artifact.FileKey("a.txt"),
		artifact.FileKey("b.txt"),
		artifact.TaskKey("m"),
		artifact.TaskKey("z"),
	}, result.Keys())
}

func TestSameConstraint(t *testing.T) {
	assert.False(t, SameConstraint("1.7", "1.7.0"))
	assert.True(t, SameConstraint("1.7", "1.7"))
	assert.True(t, SameConstraint("=v1.7.0", "1.7.0"))
	assert.True(t, SameConstraint(" 2.0.0 ", "v2.0.0"))
	assert.False(t, SameConstraint("~1.2.0", "^1.2.0"))
	assert.True(t, SameConstraint("file:../lib", "file:../lib"))
}
