package builders

import (
	"maps"

	"github.com/simonhull/firebird-suite/nest/internal/artifact"
	"github.com/simonhull/firebird-suite/nest/internal/options"
)

const vscodeSettingsPath = ".vscode/settings.json"

// VSCode contributes .vscode/settings.json from layered setting maps. Later
// layers override earlier ones per top-level key. When an earlier builder
// already wrote the file, its settings form the bottom layer.
type VSCode struct {
	Name   string
	Layers []map[string]any
}

func (v *VSCode) ID() string { return idOr(v.Name, "vscode") }

// BaseVSCodeSettings is the first layer every template starts from.
func BaseVSCodeSettings() map[string]any {
	return map[string]any{
		"editor.formatOnSave":          true,
		"editor.defaultFormatter":      "esbenp.prettier-vscode",
		"typescript.tsdk":              "node_modules/typescript/lib",
		"files.insertFinalNewline":     true,
		"files.trimTrailingWhitespace": true,
	}
}

func (v *VSCode) Contribute(view artifact.View, opts options.Resolved) ([]artifact.Contribution, error) {
	if !opts.Bool(OptVSCode, true) {
		return nil, nil
	}

	settings := map[string]any{}
	if existing, ok := artifact.GetFile(view, vscodeSettingsPath); ok {
		if m, ok := existing.Object.(map[string]any); ok {
			settings = m
		}
	}
	for _, layer := range v.Layers {
		maps.Copy(settings, artifact.CloneValue(layer).(map[string]any))
	}

	return []artifact.Contribution{addOrReplace(view, jsonFile(vscodeSettingsPath, settings))}, nil
}
