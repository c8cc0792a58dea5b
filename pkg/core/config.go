// pkg/core/config.go
package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultGroup is the group packages land in when no distro is given
const DefaultGroup = "default"

// StateEnvVar overrides the state file location
const StateEnvVar = "PIE_NIX_STATE"

// ErrNoHome is returned when the home directory cannot be determined and no
// explicit paths were configured
var ErrNoHome = errors.New("cannot determine home directory")

// Config holds pnix configuration
type Config struct {
	StatePath    string `yaml:"state_path"`
	AliasPath    string `yaml:"alias_path"`
	NixBinary    string `yaml:"nix_binary"`
	DefaultGroup string `yaml:"default_group"`
	Debug        bool   `yaml:"debug"`
}

// DefaultConfig returns a configuration with every path left for
// ApplyDefaults to fill in
func DefaultConfig() *Config {
	return &Config{
		NixBinary:    "nix",
		DefaultGroup: DefaultGroup,
		Debug:        false,
	}
}

// DefaultConfigPath is $HOME/.config/pie-nix/config.yaml
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoHome, err)
	}
	return filepath.Join(home, ".config", "pie-nix", "config.yaml"), nil
}

// LoadConfig loads configuration from file. A missing file yields the
// defaults; an unreadable or malformed one is an error.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultConfigPath()
		if err != nil {
			// No home means no default config file either; the paths are
			// resolved (and fail) in ApplyDefaults.
			return DefaultConfig(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// ApplyDefaults fills empty fields. The state path is taken from
// PIE_NIX_STATE when set, otherwise $HOME/.pie-nix/pkgs.pnix. The alias file
// sits next to the state file unless configured.
func (c *Config) ApplyDefaults() error {
	if c.NixBinary == "" {
		c.NixBinary = "nix"
	}
	if c.DefaultGroup == "" {
		c.DefaultGroup = DefaultGroup
	}
	if c.StatePath == "" {
		c.StatePath = os.Getenv(StateEnvVar)
	}
	if c.StatePath == "" {
		dir, err := DataDir()
		if err != nil {
			return err
		}
		c.StatePath = filepath.Join(dir, "pkgs.pnix")
	}
	if c.AliasPath == "" {
		c.AliasPath = filepath.Join(filepath.Dir(c.StatePath), "aliases.toml")
	}
	return nil
}

// DataDir returns $HOME/.pie-nix
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoHome, err)
	}
	return filepath.Join(home, ".pie-nix"), nil
}
