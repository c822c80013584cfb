// Package commands implements the nest CLI.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/nest/internal/templates"
	"github.com/simonhull/firebird-suite/nest/pkg/output"
)

// RootCmd creates the root command with every subcommand attached.
func RootCmd(version string) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "nest",
		Short: "Composing project scaffolder for TypeScript projects",
		Long: `Nest synthesizes Node.js/TypeScript projects from templates.

Each template composes feature builders (manifest, lint, CI workflows,
Docker, samples...) into one project. Re-running is safe:
• Generated files are rewritten and stay byte-identical for the same input
• Sample sources you edited are kept
• Tasks are recorded in package.json and .nest/tasks.json`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")

	reg := templates.Default()
	cmd.AddCommand(NewCmd(reg))
	cmd.AddCommand(SynthCmd(reg))
	cmd.AddCommand(CheckCmd(reg))
	cmd.AddCommand(ListCmd(reg))
	cmd.AddCommand(RunCmd())

	return cmd
}
