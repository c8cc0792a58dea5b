// internal/cli/list.go
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newListCmd(opts *globalOptions) *cobra.Command {
	var installed bool

	cmd := &cobra.Command{
		Use:     "list-packages [distro]...",
		Aliases: []string{"list", "ls"},
		Short:   "List recorded packages",
		Long:    `List the recorded packages of the given distros (all when none is given).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := opts.manager(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			listings, missing := m.Packages(args)
			if len(missing) > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: unknown distros: %s\n", strings.Join(missing, ", "))
			}

			if len(listings) == 0 {
				fmt.Fprintln(out, "No packages recorded")
			}
			for _, l := range listings {
				fmt.Fprintf(out, "%s:\n", l.Name)
				for _, r := range l.Records {
					fmt.Fprintf(out, "  %-30s priority %d\n", r.Name, r.Priority)
				}
			}

			if !installed {
				return nil
			}

			pkgs, err := m.Installed(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "\nProfile (%s):\n", m.Backend())
			for _, p := range pkgs {
				ver := p.Version
				if ver == "" {
					ver = "-"
				}
				marker := " "
				if !p.Active {
					marker = "!"
				}
				fmt.Fprintf(out, "%s %-30s %s\n", marker, p.Name, ver)
			}
			fmt.Fprintf(out, "\nTotal: %d packages\n", len(pkgs))
			return nil
		},
	}

	cmd.Flags().BoolVar(&installed, "installed", false, "also list what the nix profile contains")

	return cmd
}
