// internal/cli/version.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pie-nix/pnix/pkg/platform"
)

const version = "0.3.0"

func newVersionCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "pnix version %s\n", version)
			p := platform.Detect(cfg.NixBinary)
			fmt.Fprintf(out, "Platform: %s\n", p)
			fmt.Fprintf(out, "State: %s\n", cfg.StatePath)
			if !p.HasNix() {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s not found, install/reload will fail\n", cfg.NixBinary)
			}
			return nil
		},
	}
}
