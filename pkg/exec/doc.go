// Package exec runs external commands for nest: post-synthesis formatters
// and the tasks recorded in a scaffolded project's task manifest.
//
// It has two parts:
//
// 1. Executor - runs system commands with context support, streaming output, and spinners
// 2. CommandRegistry - named CommandWrappers looked up and executed by name
//
// # Basic Usage
//
//	executor := exec.NewExecutor(&exec.Options{Dir: "./web"})
//	err := executor.Run(ctx, "prettier", "--write", ".nestrc.yml")
//
// # Command Registry Pattern
//
// Commands receive an Executor at execution time, not construction:
//
//	registry := exec.NewCommandRegistry()
//	registry.Register(exec.NewShellCommand("build", "Compile", "node esbuild.config.js"))
//	err := registry.Execute(ctx, "build", executor)
//
// Tests swap the process factory through Options.CommandFunc.
package exec
