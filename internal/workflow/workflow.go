// Package workflow models GitHub Actions workflow and Dependabot files so
// builders can assemble them as values and the synthesizer can emit them
// with yaml.v3.
package workflow

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Workflow is a .github/workflows/*.yml document.
type Workflow struct {
	Name        string            `yaml:"name"`
	On          Triggers          `yaml:"on"`
	Permissions map[string]string `yaml:"permissions,omitempty"`
	Concurrency *Concurrency      `yaml:"concurrency,omitempty"`
	Jobs        map[string]*Job   `yaml:"jobs"`
}

// Triggers lists the events a workflow runs on.
type Triggers struct {
	PullRequest      *BranchFilter `yaml:"pull_request,omitempty"`
	Push             *BranchFilter `yaml:"push,omitempty"`
	WorkflowDispatch *struct{}     `yaml:"workflow_dispatch,omitempty"`
}

// BranchFilter restricts a trigger to branches. An empty filter matches all.
type BranchFilter struct {
	Branches []string `yaml:"branches,omitempty"`
}

type Concurrency struct {
	Group            string `yaml:"group"`
	CancelInProgress bool   `yaml:"cancel-in-progress"`
}

// Job is one job of a workflow.
type Job struct {
	Name        string            `yaml:"name,omitempty"`
	RunsOn      string            `yaml:"runs-on"`
	Permissions map[string]string `yaml:"permissions,omitempty"`
	Env         map[string]string `yaml:"env,omitempty"`
	Steps       []Step            `yaml:"steps"`
}

// Step is either an action (Uses) or a shell command (Run).
type Step struct {
	Name string            `yaml:"name,omitempty"`
	ID   string            `yaml:"id,omitempty"`
	If   string            `yaml:"if,omitempty"`
	Uses string            `yaml:"uses,omitempty"`
	With map[string]any    `yaml:"with,omitempty"`
	Run  string            `yaml:"run,omitempty"`
	Env  map[string]string `yaml:"env,omitempty"`
}

// Validate checks the structural rules GitHub enforces on load.
func (w *Workflow) Validate() error {
	if w.Name == "" {
		return fmt.Errorf("workflow has no name")
	}
	if w.On.PullRequest == nil && w.On.Push == nil && w.On.WorkflowDispatch == nil {
		return fmt.Errorf("workflow %s has no trigger", w.Name)
	}
	if len(w.Jobs) == 0 {
		return fmt.Errorf("workflow %s has no jobs", w.Name)
	}
	for id, job := range w.Jobs {
		if job.RunsOn == "" {
			return fmt.Errorf("workflow %s: job %s has no runs-on", w.Name, id)
		}
		if len(job.Steps) == 0 {
			return fmt.Errorf("workflow %s: job %s has no steps", w.Name, id)
		}
		for i, s := range job.Steps {
			if (s.Uses == "") == (s.Run == "") {
				return fmt.Errorf("workflow %s: job %s step %d needs exactly one of uses or run", w.Name, id, i)
			}
		}
	}
	return nil
}

// Marshal encodes the workflow with 2-space indentation. Map keys come out
// sorted, so output is deterministic.
func (w *Workflow) Marshal() ([]byte, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return encode(w)
}

// Clone returns a deep copy.
func (w *Workflow) Clone() any {
	data, err := encode(w)
	if err != nil {
		return w
	}
	var c Workflow
	if err := yaml.Unmarshal(data, &c); err != nil {
		return w
	}
	return &c
}

// Parse decodes a workflow document.
func Parse(data []byte) (*Workflow, error) {
	var w Workflow
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("parsing workflow: %w", err)
	}
	return &w, nil
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
