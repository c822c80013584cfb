package synth

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/simonhull/firebird-suite/nest/internal/artifact"
	"github.com/simonhull/firebird-suite/nest/internal/normalize"
	"github.com/simonhull/firebird-suite/nest/internal/resolve"
)

// Paths nest owns besides the File artifacts.
const (
	PackageJSON   = "package.json"
	TasksFile     = ".nest/tasks.json"
	FilesManifest = ".nest/files.json"
)

// reservedFields are package.json keys rendered from tasks and
// dependencies. A Field artifact cannot set them.
var reservedFields = map[string]bool{
	"scripts":         true,
	"dependencies":    true,
	"devDependencies": true,
	markerKey:         true,
}

// packageJSON renders fields, scripts and both dependency partitions.
// Tasks without steps are listed in tasks.json only.
func packageJSON(result *resolve.Result) ([]byte, error) {
	doc := map[string]any{markerKey: Marker}

	for _, f := range result.Fields() {
		if reservedFields[f.Name] {
			return nil, fmt.Errorf("package.json field %q is managed by nest (set by %s)", f.Name, result.Owner(f.Key()))
		}
		doc[f.Name] = f.Value
	}

	scripts := map[string]any{}
	for _, t := range result.Tasks() {
		if len(t.Steps) > 0 {
			scripts[t.Name] = t.Command()
		}
	}
	if len(scripts) > 0 {
		doc["scripts"] = scripts
	}

	runtime, dev := map[string]any{}, map[string]any{}
	for _, d := range result.Dependencies() {
		constraint := d.Constraint
		if constraint == "" {
			constraint = "*"
		}
		if d.Type == artifact.Runtime {
			runtime[d.Name] = constraint
		} else {
			dev[d.Name] = constraint
		}
	}
	if len(runtime) > 0 {
		doc["dependencies"] = runtime
	}
	if len(dev) > 0 {
		doc["devDependencies"] = dev
	}

	return normalize.EncodeJSON(doc)
}

type taskEntry struct {
	Description string   `json:"description,omitempty"`
	Phase       string   `json:"phase,omitempty"`
	Steps       []string `json:"steps"`
}

type taskManifest struct {
	Marker string               `json:"//"`
	Tasks  map[string]taskEntry `json:"tasks"`
}

// tasksJSON renders the task registry read by "nest run".
func tasksJSON(result *resolve.Result) ([]byte, error) {
	m := taskManifest{Marker: Marker, Tasks: map[string]taskEntry{}}
	for _, t := range result.Tasks() {
		steps := t.Steps
		if steps == nil {
			steps = []string{}
		}
		m.Tasks[t.Name] = taskEntry{Description: t.Description, Phase: string(t.Phase), Steps: steps}
	}
	return normalize.EncodeJSON(m)
}

// TaskSpec is one entry of tasks.json.
type TaskSpec struct {
	Name        string
	Description string
	Phase       string
	Steps       []string
}

// ReadTasks parses tasks.json content into specs sorted by name.
func ReadTasks(data []byte) ([]TaskSpec, error) {
	var m taskManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", TasksFile, err)
	}
	out := make([]TaskSpec, 0, len(m.Tasks))
	for _, name := range sortedNames(m.Tasks) {
		e := m.Tasks[name]
		out = append(out, TaskSpec{Name: name, Description: e.Description, Phase: e.Phase, Steps: e.Steps})
	}
	return out, nil
}

type filesManifest struct {
	Marker string   `json:"//"`
	Files  []string `json:"files"`
}

// filesJSON records the generated files of this run, so the next run can
// delete the ones no builder contributes anymore.
func filesJSON(paths []string) ([]byte, error) {
	if paths == nil {
		paths = []string{}
	}
	return normalize.EncodeJSON(filesManifest{Marker: Marker, Files: paths})
}

func parseFilesManifest(data []byte) ([]string, error) {
	var m filesManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FilesManifest, err)
	}
	return m.Files, nil
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}
