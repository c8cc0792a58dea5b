// pkg/platform/detect.go
package platform

import (
	"fmt"
	"runtime"

	"github.com/pie-nix/pnix/pkg/nix"
)

// Platform describes the host pnix runs on
type Platform struct {
	OS      string // linux, darwin
	Arch    string // amd64, arm64, 386, arm
	System  string // Nix system triple, empty when unsupported
	NixPath string // Resolved nix binary, empty when not on PATH
}

// Detect detects the current platform and where the nix binary lives
func Detect(nixBinary string) *Platform {
	p := &Platform{
		OS:   runtime.GOOS,
		Arch: runtime.GOARCH,
	}

	if sys, err := nix.DetectSystem(); err == nil {
		p.System = sys.String()
	}

	if nixBinary == "" {
		nixBinary = nix.DefaultBinary
	}
	p.NixPath = commandPath(nixBinary)

	return p
}

// HasNix reports whether the nix binary was found
func (p *Platform) HasNix() bool {
	return p.NixPath != ""
}

// String returns a string representation of the platform
func (p *Platform) String() string {
	system := p.System
	if system == "" {
		system = "unsupported"
	}
	nixPath := p.NixPath
	if nixPath == "" {
		nixPath = "not found"
	}
	return fmt.Sprintf("%s/%s (system: %s, nix: %s)", p.OS, p.Arch, system, nixPath)
}
