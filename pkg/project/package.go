package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// PackageInfo contains information from package.json
type PackageInfo struct {
	Name    string   // Package name
	Scripts []string // Script names, sorted
}

// DetectPackage reads package.json and returns package information.
// Returns an error if package.json doesn't exist or is invalid.
func DetectPackage(rootPath string) (*PackageInfo, error) {
	manifestPath := filepath.Join(rootPath, "package.json")
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("package.json not found in %s", rootPath)
		}
		return nil, fmt.Errorf("failed to read package.json: %w", err)
	}

	var manifest struct {
		Name    string            `json:"name"`
		Scripts map[string]string `json:"scripts"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse package.json: %w", err)
	}

	info := &PackageInfo{Name: manifest.Name}
	for name := range manifest.Scripts {
		info.Scripts = append(info.Scripts, name)
	}
	sort.Strings(info.Scripts)

	return info, nil
}
