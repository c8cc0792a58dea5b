// manager.go
package nix

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"strings"

	"github.com/pie-nix/pnix/pkg/core"
)

// PackageManager drives `nix profile` as a child process
type PackageManager struct {
	config *Config
	logger *log.Logger
}

var _ core.Backend = (*PackageManager)(nil)

// NewPackageManager creates a new Nix package manager
func NewPackageManager(cfg *Config) *PackageManager {
	if cfg == nil {
		cfg = &Config{}
	}

	if cfg.Binary == "" {
		cfg.Binary = DefaultBinary
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}

	logger := cfg.Logger
	if logger == nil {
		if cfg.Debug {
			logger = log.New(os.Stderr, "[DEBUG] ", log.LstdFlags)
		} else {
			logger = log.New(io.Discard, "", 0)
		}
	}

	pm := &PackageManager{
		config: cfg,
		logger: logger,
	}

	if cfg.Debug {
		pm.logger.Printf("Initialized nix PackageManager")
		pm.logger.Printf("  Binary: %s", cfg.Binary)
	}

	return pm
}

// Name returns the backend name
func (pm *PackageManager) Name() string {
	return BackendName
}

// Install runs `nix profile install <pkg>`
func (pm *PackageManager) Install(ctx context.Context, pkg string) error {
	if pkg == "" {
		return fmt.Errorf("package name is required")
	}
	return pm.run(ctx, append(installArgs, pkg)...)
}

// Remove runs `nix profile remove` on the element pkg was installed as
func (pm *PackageManager) Remove(ctx context.Context, pkg string) error {
	if pkg == "" {
		return fmt.Errorf("package name is required")
	}
	return pm.run(ctx, append(removeArgs, ElementName(pkg))...)
}

// IsAvailable reports whether the nix binary resolves and runs
func (pm *PackageManager) IsAvailable(ctx context.Context) bool {
	path, err := exec.LookPath(pm.config.Binary)
	if err != nil {
		pm.logger.Printf("%s not found: %v", pm.config.Binary, err)
		return false
	}

	cmd := exec.CommandContext(ctx, path, versionArgs...)
	out, err := cmd.Output()
	if err != nil {
		pm.logger.Printf("%s --version failed: %v", path, err)
		return false
	}

	pm.logger.Printf("Found %s", strings.TrimSpace(string(out)))
	return true
}

// List returns the elements of the current profile
func (pm *PackageManager) List(ctx context.Context) ([]core.Package, error) {
	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, pm.config.Binary, listArgs...)
	cmd.Stdout = &stdout
	cmd.Stderr = pm.config.Stderr

	pm.logger.Printf("Running: %s %s", pm.config.Binary, strings.Join(listArgs, " "))
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s %s: %w", pm.config.Binary, strings.Join(listArgs, " "), err)
	}

	return parseProfileList(stdout.Bytes())
}

// run executes the binary with output passed through to the user
func (pm *PackageManager) run(ctx context.Context, args ...string) error {
	pm.logger.Printf("Running: %s %s", pm.config.Binary, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, pm.config.Binary, args...)
	cmd.Stdout = pm.config.Stdout
	cmd.Stderr = pm.config.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", pm.config.Binary, strings.Join(args, " "), err)
	}
	return nil
}
