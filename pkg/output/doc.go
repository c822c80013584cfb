// Package output provides styled terminal output for the nest CLI.
//
// # Usage
//
//	import "github.com/simonhull/firebird-suite/nest/pkg/output"
//
//	output.Success("Synthesized nextjs into ./web")
//	output.Warn("formatter failed for .nestrc.yml")
//	output.Step("cd web")
//
// # Verbose Mode
//
// The root command's --verbose flag enables pipeline tracing:
//
//	output.SetVerbose(true)
//	output.Verbose("builder lint contributed 7 artifacts")
//
// # Styling
//
//   - Success: 🪺 green bold
//   - Error: ❌ red bold
//   - Warn: ⚠️ yellow
//   - Info: ℹ️ cyan
//   - Step: indented gray
//   - Verbose: 🔍 gray (when enabled)
package output
