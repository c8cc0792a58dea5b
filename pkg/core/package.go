// pkg/core/package.go
package core

// Package is an element of the backend's profile
type Package struct {
	Name      string   // Element name
	Version   string   // Version parsed from the store path, if any
	Source    string   // Flake reference or attribute path it came from
	StorePath []string // Realised store paths
	Backend   string   // Which backend manages this package
	Active    bool     // Whether the element is active in the profile
}
