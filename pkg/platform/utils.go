// pkg/platform/utils.go
package platform

import (
	"os/exec"
)

// commandPath returns the PATH resolution of cmd, or "" when missing
func commandPath(cmd string) string {
	path, err := exec.LookPath(cmd)
	if err != nil {
		return ""
	}
	return path
}
