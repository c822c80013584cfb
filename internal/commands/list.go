package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/nest/internal/options"
	"github.com/simonhull/firebird-suite/nest/internal/templates"
	"github.com/simonhull/firebird-suite/nest/pkg/output"
)

// ListCmd creates the 'list' command.
func ListCmd(reg *templates.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "list [template]",
		Short: "List templates and their options",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			descs := reg.List()
			if len(args) == 1 {
				d, err := reg.Get(args[0])
				if err != nil {
					return err
				}
				descs = []templates.Descriptor{d}
			}

			for _, d := range descs {
				output.Item(d.Name, d.Description)
				for _, decl := range d.Options {
					output.Step(fmt.Sprintf("   %s: %s", decl.Key, describeOption(decl, d.Defaults[decl.Key])))
				}
			}
			return nil
		},
	}
}

func describeOption(decl options.Declaration, def any) string {
	var b strings.Builder
	b.WriteString(string(decl.Type))
	if len(decl.Enum) > 0 {
		b.WriteString(" (" + strings.Join(decl.Enum, "|") + ")")
	}
	if def == nil {
		def = decl.Default
	}
	if def != nil {
		fmt.Fprintf(&b, " = %v", def)
	}
	if decl.Description != "" {
		b.WriteString("  " + decl.Description)
	}
	return b.String()
}
