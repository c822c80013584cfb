package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/nest/internal/config"
	"github.com/simonhull/firebird-suite/nest/internal/engine"
	"github.com/simonhull/firebird-suite/nest/internal/templates"
	"github.com/simonhull/firebird-suite/nest/pkg/output"
)

// SynthCmd creates the 'synth' command.
func SynthCmd(reg *templates.Registry) *cobra.Command {
	var (
		dryRun    bool
		noFormat  bool
		conflicts conflictFlags
	)

	cmd := &cobra.Command{
		Use:   "synth [dir]",
		Short: "Re-synthesize a project from its .nestrc.yml",
		Long: `Re-runs the template recorded in .nestrc.yml.

Generated files are rewritten. Sample files you edited are kept unless
--force is given. Options can be overridden with NEST_OPTIONS_<KEY>
environment variables, the template with NEST_TEMPLATE.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			rc, err := config.Load(dir, knownOptions(reg))
			if err != nil {
				return err
			}
			tmpl, err := reg.Get(rc.Template)
			if err != nil {
				return err
			}
			resolver, err := conflicts.resolver()
			if err != nil {
				return err
			}

			output.Verbose(fmt.Sprintf("Synthesizing %s in %s", rc.Template, dir))

			outcome, err := engine.Run(cmd.Context(), engine.Request{
				Template:      tmpl,
				Options:       rc.Options,
				Root:          dir,
				Resolver:      resolver,
				DryRun:        dryRun,
				SkipNormalize: noFormat,
				Writer:        cmd.OutOrStdout(),
			})
			if outcome != nil {
				printReport(outcome.Report, dryRun)
				printWarnings(outcome.Warnings)
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be written without writing")
	cmd.Flags().BoolVar(&noFormat, "no-format", false, "Skip post-synthesis formatting")
	cmd.Flags().BoolVar(&conflicts.force, "force", false, "Overwrite edited files without asking")
	cmd.Flags().BoolVar(&conflicts.skip, "skip", false, "Keep edited files without asking")
	cmd.Flags().BoolVar(&conflicts.diff, "diff", false, "Show a diff for edited files")

	return cmd
}
