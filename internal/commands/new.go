package commands

import (
	"fmt"
	"maps"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/nest/internal/builders"
	"github.com/simonhull/firebird-suite/nest/internal/config"
	"github.com/simonhull/firebird-suite/nest/internal/engine"
	"github.com/simonhull/firebird-suite/nest/internal/options"
	"github.com/simonhull/firebird-suite/nest/internal/templates"
	"github.com/simonhull/firebird-suite/nest/pkg/input"
	"github.com/simonhull/firebird-suite/nest/pkg/output"
	"github.com/simonhull/firebird-suite/nest/pkg/project"
)

// NewCmd creates the 'new' command.
func NewCmd(reg *templates.Registry) *cobra.Command {
	var (
		set        []string
		configFile string
		dryRun     bool
		noFormat   bool
		conflicts  conflictFlags
	)

	cmd := &cobra.Command{
		Use:   "new [template] [dir]",
		Short: "Create a project from a template",
		Long: `Creates a project from a template and records the choice in .nestrc.yml.

Options come from --config (a YAML map) and --set, later flags winning.
Run "nest list" to see templates and their options.

Example:
  nest new nextjs web --set isGraphqlEnabled=false
  nest new cdk infra --set initialReleaseVersion=1.0.0`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			} else {
				name = input.Choose("Template", reg.Names(), "")
				if name == "" {
					return fmt.Errorf("no template chosen")
				}
			}

			tmpl, err := reg.Get(name)
			if err != nil {
				return err
			}

			dir := ""
			if len(args) > 1 {
				dir = args[1]
			} else {
				dir = input.Prompt("Project directory", name)
			}

			if found, rc, err := project.DetectNestProject(dir); err != nil {
				return err
			} else if found {
				return fmt.Errorf("%s is already a nest project (template %s). Run \"nest synth\" instead", dir, rc.Template)
			}
			if pkg, err := project.DetectPackage(dir); err == nil && !conflicts.force {
				msg := fmt.Sprintf("%s already has a package.json (%s). It will be replaced. Continue?", dir, pkg.Name)
				if !input.Confirm(msg, false) {
					return fmt.Errorf("aborted")
				}
			}

			caller := options.Values{}
			if configFile != "" {
				fromFile, err := readOptionsFile(configFile)
				if err != nil {
					return err
				}
				maps.Copy(caller, fromFile)
			}
			fromFlags, err := parseSet(set, tmpl.Options)
			if err != nil {
				return err
			}
			maps.Copy(caller, fromFlags)

			resolver, err := conflicts.resolver()
			if err != nil {
				return err
			}

			output.Verbose(fmt.Sprintf("Creating %s project in %s with %d options", name, dir, len(caller)))

			// Fail on bad options before anything is written.
			if _, err := engine.Compose(tmpl, caller); err != nil {
				return err
			}
			if !dryRun {
				if err := config.Save(dir, &config.RC{Template: name, Options: caller}); err != nil {
					return err
				}
			}

			outcome, err := engine.Run(cmd.Context(), engine.Request{
				Template:      tmpl,
				Options:       caller,
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
			if err != nil {
				return err
			}

			if !dryRun {
				output.Success(fmt.Sprintf("Created %s project: %s", name, dir))
				output.Info("Next steps:")
				output.Step(fmt.Sprintf("cd %s", dir))
				output.Step(outcome.Options.String(builders.OptPackageManager, "npm") + " install")
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&set, "set", nil, "Set an option (key=value, repeatable)")
	cmd.Flags().StringVar(&configFile, "config", "", "YAML file with options")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be written without writing")
	cmd.Flags().BoolVar(&noFormat, "no-format", false, "Skip post-synthesis formatting")
	cmd.Flags().BoolVar(&conflicts.force, "force", false, "Overwrite edited files without asking")
	cmd.Flags().BoolVar(&conflicts.skip, "skip", false, "Keep edited files without asking")
	cmd.Flags().BoolVar(&conflicts.diff, "diff", false, "Show a diff for edited files")

	return cmd
}
