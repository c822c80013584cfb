package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/nest/internal/config"
	"github.com/simonhull/firebird-suite/nest/internal/engine"
	"github.com/simonhull/firebird-suite/nest/internal/templates"
	"github.com/simonhull/firebird-suite/nest/pkg/filesystem"
	"github.com/simonhull/firebird-suite/nest/pkg/generator"
	"github.com/simonhull/firebird-suite/nest/pkg/output"
)

// CheckCmd creates the 'check' command.
func CheckCmd(reg *templates.Registry) *cobra.Command {
	var showDiff bool

	cmd := &cobra.Command{
		Use:   "check [dir]",
		Short: "Verify generated files are up to date",
		Long: `Synthesizes the project into a temporary directory and compares every
generated file with the one on disk. Exits non-zero when any differs.
Sample files are not compared.`,
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

			tmp, err := os.MkdirTemp("", "nest-check-*")
			if err != nil {
				return err
			}
			defer os.RemoveAll(tmp)

			outcome, err := engine.Run(cmd.Context(), engine.Request{
				Template:      tmpl,
				Options:       rc.Options,
				Root:          tmp,
				SkipNormalize: true,
			})
			if err != nil {
				return err
			}

			drift, err := compareGenerated(tmp, dir, outcome.Report.Generated)
			if err != nil {
				return err
			}
			if len(drift) == 0 {
				output.Success(fmt.Sprintf("%d generated files up to date", len(outcome.Report.Generated)))
				return nil
			}

			for _, p := range drift {
				output.Item(p, "out of date")
				if showDiff {
					want, _ := os.ReadFile(filepath.Join(tmp, filepath.FromSlash(p)))
					have, _ := os.ReadFile(filepath.Join(dir, filepath.FromSlash(p)))
					fmt.Fprint(cmd.OutOrStdout(), generator.NewDiffGenerator().Unified(p, have, want))
				}
			}
			return fmt.Errorf("%d generated files are out of date; run \"nest synth\"", len(drift))
		},
	}

	cmd.Flags().BoolVar(&showDiff, "diff", false, "Show a diff for each out-of-date file")
	return cmd
}

// compareGenerated returns the paths whose content differs between the
// fresh tree and the project, in order.
func compareGenerated(fresh, dir string, paths []string) ([]string, error) {
	walk := filesystem.WalkOptions{IncludeHidden: true}
	want, err := filesystem.Fingerprint(fresh, walk)
	if err != nil {
		return nil, err
	}
	have, err := filesystem.Fingerprint(dir, walk)
	if err != nil {
		return nil, err
	}

	changed := make(map[string]bool)
	for _, p := range filesystem.CompareFingerprints(want, have) {
		changed[p] = true
	}

	var drift []string
	for _, p := range paths {
		if changed[p] {
			drift = append(drift, p)
		}
	}
	return drift, nil
}
