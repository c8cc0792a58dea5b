// internal/cli/aliases.go
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pie-nix/pnix/pkg/registry"
)

func newAliasesCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "aliases [name]...",
		Short: "List package aliases",
		Long: `List the aliases defined in the alias file (aliases.toml next to the state
file), or only the named ones.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := opts.manager(cmd)
			if err != nil {
				return err
			}

			reg := m.Registry()
			out := cmd.OutOrStdout()

			var entries []registry.Entry
			if len(args) == 0 {
				entries = reg.Entries()
			}
			for _, name := range args {
				e, err := reg.Lookup(name)
				if err != nil {
					return err
				}
				entries = append(entries, *e)
			}

			if reg.Path() != "" {
				fmt.Fprintf(out, "Aliases from %s\n", reg.Path())
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "No aliases defined")
				return nil
			}

			for _, e := range entries {
				printAlias(out, e)
			}
			return nil
		},
	}
}

func printAlias(out io.Writer, e registry.Entry) {
	fmt.Fprintf(out, "%-20s %s", e.Name, e.Ref)
	if e.Description != "" {
		fmt.Fprintf(out, "  # %s", e.Description)
	}
	fmt.Fprintln(out)
}
