package project

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// RCFileName is the file that records how a project was scaffolded.
const RCFileName = ".nestrc.yml"

// NestConfig contains the detected rc file summary
type NestConfig struct {
	ConfigPath string // Path to .nestrc.yml
	Template   string // Template the project was created from
	Options    int    // Number of caller options recorded
}

// IsNestProject checks if a directory contains .nestrc.yml
func IsNestProject(rootPath string) bool {
	_, err := os.Stat(filepath.Join(rootPath, RCFileName))
	return err == nil
}

// DetectNestProject checks for .nestrc.yml and parses its header.
// Returns (found bool, config *NestConfig, error).
func DetectNestProject(rootPath string) (bool, *NestConfig, error) {
	configPath := filepath.Join(rootPath, RCFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil, nil
		}
		return false, nil, fmt.Errorf("failed to read %s: %w", RCFileName, err)
	}

	var rc struct {
		Template string         `yaml:"template"`
		Options  map[string]any `yaml:"options"`
	}

	if err := yaml.Unmarshal(data, &rc); err != nil {
		return false, nil, fmt.Errorf("failed to parse %s: %w", RCFileName, err)
	}

	if rc.Template == "" {
		return false, nil, fmt.Errorf("%s has no template", configPath)
	}

	return true, &NestConfig{
		ConfigPath: configPath,
		Template:   rc.Template,
		Options:    len(rc.Options),
	}, nil
}
