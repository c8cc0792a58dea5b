// internal/cli/install.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pie-nix/pnix"
)

func newInstallCmd(opts *globalOptions) *cobra.Command {
	var installOpts pnix.InstallOptions

	cmd := &cobra.Command{
		Use:   "install <package>...",
		Short: "Install packages and record them",
		Long: `Install packages into the nix profile and record them in the given
distros (the default distro when none is given).

Examples:
  pnix install nixpkgs#ripgrep
  pnix install nixpkgs#kubectl nixpkgs#k9s --distros work --priority 10
  pnix install nixpkgs#cowsay --temp`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := opts.manager(cmd)
			if err != nil {
				return err
			}

			results, err := m.Install(cmd.Context(), args, installOpts)
			if results == nil {
				return err
			}

			failed := printResults(cmd, "install", results)
			if len(args) > 1 || failed > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "\n%d of %d packages installed\n", len(results)-failed, len(args))
			}

			// Packages installed before an interrupt are still recorded.
			saveState(cmd, m)
			return err
		},
	}

	cmd.Flags().BoolVarP(&installOpts.Temp, "temp", "t", false, "install without recording the package")
	cmd.Flags().StringSliceVarP(&installOpts.Groups, "distros", "d", nil, "distros to record the packages in")
	cmd.Flags().UintVarP(&installOpts.Priority, "priority", "p", 0, "reload priority, lower installs first")

	return cmd
}
