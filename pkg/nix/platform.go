// platform.go
package nix

import (
	"fmt"
	"runtime"
)

// System is a Nix system triple such as x86_64-linux
type System string

const (
	SystemX8664Linux    System = "x86_64-linux"
	SystemI686Linux     System = "i686-linux"
	SystemAarch64Linux  System = "aarch64-linux"
	SystemArmv7lLinux   System = "armv7l-linux"
	SystemX8664Darwin   System = "x86_64-darwin"
	SystemAarch64Darwin System = "aarch64-darwin"
)

// AllSystems contains the systems nixpkgs commonly builds for
var AllSystems = []System{
	SystemX8664Linux,
	SystemI686Linux,
	SystemAarch64Linux,
	SystemArmv7lLinux,
	SystemX8664Darwin,
	SystemAarch64Darwin,
}

// DetectSystem maps GOOS/GOARCH to the Nix system triple
func DetectSystem() (System, error) {
	return systemFor(runtime.GOOS, runtime.GOARCH)
}

func systemFor(goos, goarch string) (System, error) {
	switch goos {
	case "linux":
		switch goarch {
		case "amd64":
			return SystemX8664Linux, nil
		case "386":
			return SystemI686Linux, nil
		case "arm64":
			return SystemAarch64Linux, nil
		case "arm":
			return SystemArmv7lLinux, nil
		}
		return "", fmt.Errorf("unsupported Linux architecture: %s", goarch)
	case "darwin":
		switch goarch {
		case "amd64":
			return SystemX8664Darwin, nil
		case "arm64":
			return SystemAarch64Darwin, nil
		}
		return "", fmt.Errorf("unsupported Darwin architecture: %s", goarch)
	default:
		return "", fmt.Errorf("unsupported operating system: %s", goos)
	}
}

// String returns the string representation of the system
func (s System) String() string {
	return string(s)
}

// IsValid checks if the system is a known one
func (s System) IsValid() bool {
	for _, valid := range AllSystems {
		if s == valid {
			return true
		}
	}
	return false
}
