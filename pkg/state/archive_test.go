package state

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleState() *State {
	st := New()
	st.Add("default", Record{Name: "ripgrep", Priority: 1})
	st.Add("default", Record{Name: "fd"})
	st.Add("work", Record{Name: "kubectl", Priority: 10})
	return st
}

func TestExportImport_Plain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, Export(sampleState(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"packages"`)

	st, err := Import(path, "default")
	require.NoError(t, err)
	assert.Equal(t, sampleState().Group("default"), st.Group("default"))
	assert.Equal(t, sampleState().Group("work"), st.Group("work"))
}

func TestExportImport_XZ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "backup.pnix.xz")
	require.NoError(t, Export(sampleState(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, xzMagic))

	st, err := Import(path, "default")
	require.NoError(t, err)
	assert.Equal(t, 3, st.Len())
	assert.Equal(t, []string{"default", "work"}, st.Groups())
}

func TestImport_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.xz")
	require.NoError(t, os.WriteFile(path, append(append([]byte{}, xzMagic...), 1, 2, 3), 0644))

	_, err := Import(path, "default")
	assert.ErrorIs(t, err, ErrCorruptState)
}

func TestImport_Missing(t *testing.T) {
	_, err := Import(filepath.Join(t.TempDir(), "nope"), "default")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCorruptState)
}
