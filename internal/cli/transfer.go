// internal/cli/transfer.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newExportCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write the recorded packages to a file",
		Long:  `Write the recorded packages to a file; a .xz suffix compresses it.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := opts.manager(cmd)
			if err != nil {
				return err
			}

			if err := m.Export(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d packages to %s\n", m.State().Len(), args[0])
			return nil
		},
	}
}

func newImportCmd(opts *globalOptions) *cobra.Command {
	var merge bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the recorded packages with an exported file",
		Long: `Replace the recorded packages with those of a file written by export, or
merge them in with --merge. Nothing is installed; run reload afterwards.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := opts.manager(cmd)
			if err != nil {
				return err
			}

			n, err := m.Import(args[0], merge)
			if err != nil {
				return err
			}

			saveState(cmd, m)
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %d packages from %s\n", n, args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&merge, "merge", false, "merge into the recorded packages instead of replacing them")

	return cmd
}
