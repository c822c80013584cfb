// Package project detects nest projects and reads the package manifest of
// a scaffolded tree.
//
// # Overview
//
//   - nest project detection (via .nestrc.yml)
//   - package.json name and script discovery
//
// # Usage
//
// Check if a directory was scaffolded by nest:
//
//	if project.IsNestProject("./web") {
//	    fmt.Println("re-run with: nest synth ./web")
//	}
//
// Read the rc file's template name:
//
//	found, rc, err := project.DetectNestProject("./web")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if found {
//	    fmt.Printf("Template: %s\n", rc.Template)
//	}
package project
