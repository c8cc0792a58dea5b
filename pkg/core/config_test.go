package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_ExplicitMissing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
state_path: /tmp/pkgs.pnix
nix_binary: /run/current-system/sw/bin/nix
debug: true
`), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/pkgs.pnix", cfg.StatePath)
	assert.Equal(t, "/run/current-system/sw/bin/nix", cfg.NixBinary)
	assert.Equal(t, DefaultGroup, cfg.DefaultGroup)
	assert.True(t, cfg.Debug)
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("debug: [\n"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestApplyDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(StateEnvVar, "")

	cfg := &Config{}
	require.NoError(t, cfg.ApplyDefaults())
	assert.Equal(t, filepath.Join(home, ".pie-nix", "pkgs.pnix"), cfg.StatePath)
	assert.Equal(t, filepath.Join(home, ".pie-nix", "aliases.toml"), cfg.AliasPath)
	assert.Equal(t, "nix", cfg.NixBinary)
	assert.Equal(t, DefaultGroup, cfg.DefaultGroup)
}

func TestApplyDefaults_EnvOverride(t *testing.T) {
	override := filepath.Join(t.TempDir(), "afs", "pkgs.pnix")
	t.Setenv(StateEnvVar, override)

	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyDefaults())
	assert.Equal(t, override, cfg.StatePath)
	assert.Equal(t, filepath.Join(filepath.Dir(override), "aliases.toml"), cfg.AliasPath)
}

func TestApplyDefaults_NoHome(t *testing.T) {
	t.Setenv("HOME", "")
	t.Setenv(StateEnvVar, "")

	err := (&Config{}).ApplyDefaults()
	assert.ErrorIs(t, err, ErrNoHome)
}
