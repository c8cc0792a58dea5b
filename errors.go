// errors.go
package pnix

import (
	"errors"
	"fmt"

	"github.com/pie-nix/pnix/pkg/core"
	"github.com/pie-nix/pnix/pkg/state"
)

var (
	// ErrToolNotAvailable indicates the nix binary cannot be run
	ErrToolNotAvailable = errors.New("package manager not available")

	// ErrInvalidPackage indicates an empty or malformed package name
	ErrInvalidPackage = errors.New("invalid package")

	// ErrCorruptState indicates the state file could not be decoded
	ErrCorruptState = state.ErrCorruptState

	// ErrNoHome indicates the home directory could not be determined
	ErrNoHome = core.ErrNoHome
)

// Error wraps an error with additional context
type Error struct {
	Op      string // Operation that failed
	Package string // Package name if applicable
	Err     error  // Underlying error
}

func (e *Error) Error() string {
	if e.Package != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Package, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
