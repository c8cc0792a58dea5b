// types.go
package nix

import (
	"encoding/json"
	"io"
	"log"
)

// Config configures the package manager
type Config struct {
	Binary string      // Default: nix, looked up on PATH
	Stdout io.Writer   // Child stdout; defaults to os.Stdout
	Stderr io.Writer   // Child stderr; defaults to os.Stderr
	Debug  bool        // Enable debug logging
	Logger *log.Logger // Custom logger (optional)
}

// profileList is the output of `nix profile list --json`. Elements is an
// object keyed by element name from manifest version 3 on, an array before.
type profileList struct {
	Version  int             `json:"version"`
	Elements json.RawMessage `json:"elements"`
}

// profileElement is one entry of a profile manifest
type profileElement struct {
	Active      *bool    `json:"active"`
	AttrPath    string   `json:"attrPath"`
	OriginalURL string   `json:"originalUrl"`
	URL         string   `json:"url"`
	StorePaths  []string `json:"storePaths"`
	Priority    int      `json:"priority"`
}
