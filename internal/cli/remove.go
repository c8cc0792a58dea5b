// internal/cli/remove.go
package cli

import (
	"github.com/spf13/cobra"

	"github.com/pie-nix/pnix"
)

func newRemoveCmd(opts *globalOptions) *cobra.Command {
	var removeOpts pnix.RemoveOptions

	cmd := &cobra.Command{
		Use:   "remove <package>...",
		Short: "Remove packages and forget them",
		Long: `Remove packages from the nix profile and drop them from the given distros
(every distro when none is given). Records are dropped even if nix fails to
remove the package.`,
		Aliases: []string{"rm"},
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := opts.manager(cmd)
			if err != nil {
				return err
			}

			results, err := m.Remove(cmd.Context(), args, removeOpts)
			if err != nil {
				return err
			}

			printResults(cmd, "remove", results)

			if !removeOpts.Temp {
				saveState(cmd, m)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&removeOpts.Groups, "distros", "d", nil, "distros to drop the packages from")
	cmd.Flags().BoolVarP(&removeOpts.Temp, "temp", "t", false, "remove from the profile but keep the records")
	cmd.Flags().BoolVar(&removeOpts.StateOnly, "state-only", false, "drop the records without touching the profile")
	cmd.MarkFlagsMutuallyExclusive("temp", "state-only")

	return cmd
}
