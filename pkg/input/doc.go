// Package input provides interactive terminal input utilities.
//
// # Usage
//
//	name := input.Prompt("Template", "nextjs")
//
//	if input.Confirm("Directory is not empty. Continue?", false) {
//	    // User said yes
//	}
//
// # Non-Interactive Mode
//
// Commands bypass prompts when the answer was supplied by a flag. Tests
// swap the reader with SetReader.
package input
