// internal/cli/root.go
package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/pie-nix/pnix"
	"github.com/pie-nix/pnix/pkg/core"
	"github.com/pie-nix/pnix/pkg/nix"
	"github.com/pie-nix/pnix/pkg/registry"
)

// globalOptions holds the persistent flags
type globalOptions struct {
	cfgFile   string
	statePath string
	nixBinary string
	debug     bool
}

// Execute executes the root command
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "pnix",
		Short: "Declarative nix profile packages",
		Long: `pnix - keep a declared set of nix profile packages

Packages installed through pnix are recorded in groups ("distros") with a
priority, so the whole set can be re-applied on a fresh machine with
'pnix reload'.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.config/pie-nix/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.statePath, "state", "", "package state file (default is $HOME/.pie-nix/pkgs.pnix)")
	rootCmd.PersistentFlags().StringVar(&opts.nixBinary, "nix", "", "nix binary to run")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newInstallCmd(opts))
	rootCmd.AddCommand(newRemoveCmd(opts))
	rootCmd.AddCommand(newReloadCmd(opts))
	rootCmd.AddCommand(newListCmd(opts))
	rootCmd.AddCommand(newExportCmd(opts))
	rootCmd.AddCommand(newImportCmd(opts))
	rootCmd.AddCommand(newAliasesCmd(opts))
	rootCmd.AddCommand(newVersionCmd(opts))

	return rootCmd
}

// loadConfig reads the config file and applies flag overrides
func (o *globalOptions) loadConfig() (*core.Config, error) {
	cfg, err := core.LoadConfig(o.cfgFile)
	if err != nil {
		return nil, err
	}

	if o.statePath != "" {
		cfg.StatePath = o.statePath
	}
	if o.nixBinary != "" {
		cfg.NixBinary = o.nixBinary
	}
	if o.debug {
		cfg.Debug = true
	}

	if err := cfg.ApplyDefaults(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// manager wires config, aliases, the nix backend and the state file
func (o *globalOptions) manager(cmd *cobra.Command) (*pnix.Manager, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}

	logger := log.New(io.Discard, "", 0)
	if cfg.Debug {
		logger = log.New(cmd.ErrOrStderr(), "[pnix] ", log.LstdFlags)
		logger.Printf("State: %s", cfg.StatePath)
		logger.Printf("Aliases: %s", cfg.AliasPath)
	}

	reg, err := registry.Load(cfg.AliasPath)
	if err != nil {
		return nil, err
	}

	backend := nix.NewPackageManager(&nix.Config{
		Binary: cfg.NixBinary,
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
		Debug:  cfg.Debug,
		Logger: logger,
	})

	return pnix.NewManager(cfg, backend, reg, logger)
}

// saveState writes the state file; failure is reported but not returned
func saveState(cmd *cobra.Command, m *pnix.Manager) {
	if err := m.Save(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}
}

// printResults prints one ✓/✗ line per backend call and returns the number
// of failures
func printResults(cmd *cobra.Command, verb string, results []pnix.Result) int {
	failed := 0
	for _, res := range results {
		if !res.OK() {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "✗ Failed to %s %s: %v\n", verb, res.Package, res.Err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", describe(res))
	}
	return failed
}

func describe(res pnix.Result) string {
	s := res.Package
	if res.Ref != res.Package {
		s += " (" + res.Ref + ")"
	}
	if len(res.Groups) > 0 {
		s += fmt.Sprintf(" %v", res.Groups)
	}
	return s
}
