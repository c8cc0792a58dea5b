// internal/cli/reload.go
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newReloadCmd(opts *globalOptions) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:     "reload [distro]...",
		Aliases: []string{"recover"},
		Short:   "Reinstall every recorded package",
		Long: `Reinstall the recorded packages of the given distros (all distros when
none is given) in ascending priority order, e.g. after a fresh install.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := opts.manager(cmd)
			if err != nil {
				return err
			}

			report, err := m.Reload(cmd.Context(), args, dryRun)
			if report == nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(report.Missing) > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: unknown distros: %s\n", strings.Join(report.Missing, ", "))
			}
			if len(report.Plan) == 0 {
				fmt.Fprintln(out, "Nothing to reload")
				return nil
			}

			if dryRun {
				fmt.Fprintf(out, "Would reinstall %d packages:\n", len(report.Plan))
				for _, e := range report.Plan {
					fmt.Fprintf(out, "  %3d  %s (%s)\n", e.Priority, e.Name, e.Group)
				}
				return nil
			}

			fmt.Fprintf(out, "Reinstalling %d packages...\n", len(report.Plan))
			failed := printResults(cmd, "reinstall", report.Results)
			fmt.Fprintf(out, "\n%d of %d packages reinstalled\n", len(report.Results)-failed, len(report.Plan))
			return err
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "print the install order without installing")

	return cmd
}
