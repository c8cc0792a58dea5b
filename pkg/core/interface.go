// pkg/core/interface.go
package core

import "context"

// Backend is the external package manager pnix drives
type Backend interface {
	// Name returns the backend name (e.g., "nix")
	Name() string

	// Install installs a package into the user profile
	Install(ctx context.Context, pkg string) error

	// Remove removes a package from the user profile
	Remove(ctx context.Context, pkg string) error

	// List lists what the user profile currently contains
	List(ctx context.Context) ([]Package, error)

	// IsAvailable checks if the backend binary can be run
	IsAvailable(ctx context.Context) bool
}
