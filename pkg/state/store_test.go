package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_LoadMissing(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nested", "pkgs.pnix"), "", nil)

	st, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, st.Len())
}

func TestStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pkgs.pnix")
	require.NoError(t, os.WriteFile(path, []byte(`{"packages": {"default": [["pkgA", 1], ["pkgB", 0]]}}`), 0644))
	store := NewStore(path, "default", nil)

	st, err := store.Load()
	require.NoError(t, err)
	require.NoError(t, store.Save(st))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"packages": {"default": [["pkgA", 1], ["pkgB", 0]]}}`, string(data))

	again, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, []Record{{Name: "pkgA", Priority: 1}, {Name: "pkgB", Priority: 0}}, again.Group("default"))
}

func TestStore_SaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".pie-nix", "pkgs.pnix")
	store := NewStore(path, "", nil)

	st := New()
	st.Add("work", Record{Name: "jq", Priority: 2})
	require.NoError(t, store.Save(st))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, []Record{{Name: "jq", Priority: 2}}, loaded.Group("work"))
}

func TestStore_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pkgs.pnix")
	for _, body := range []string{`{"packages": `, `{"packages": {"default": [[1, 2]]}}`, `not json`} {
		require.NoError(t, os.WriteFile(path, []byte(body), 0644))

		_, err := NewStore(path, "", nil).Load()
		assert.ErrorIs(t, err, ErrCorruptState, body)
	}
}

func TestStore_LoadLegacyFlatList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pkgs.pnix")
	require.NoError(t, os.WriteFile(path, []byte(`["ripgrep", "fd", "ripgrep"]`), 0644))

	st, err := NewStore(path, "main", nil).Load()
	require.NoError(t, err)
	assert.Equal(t, []Record{{Name: "ripgrep"}, {Name: "fd"}}, st.Group("main"))
}

func TestStore_LoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pkgs.pnix")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	st, err := NewStore(path, "", nil).Load()
	require.NoError(t, err)
	assert.Equal(t, 0, st.Len())
}

func TestStore_LoadBareGroupMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pkgs.pnix")
	require.NoError(t, os.WriteFile(path, []byte(`{"default": [["jq", 1]], "work": [["kubectl", 2], "k9s"]}`), 0644))
	store := NewStore(path, "default", nil)

	st, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, []Record{{Name: "jq", Priority: 1}}, st.Group("default"))
	assert.Equal(t, []Record{{Name: "kubectl", Priority: 2}, {Name: "k9s"}}, st.Group("work"))

	st.Add("default", Record{Name: "htop"})
	require.NoError(t, store.Save(st))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"packages": {
		"default": [["jq", 1], ["htop", 0]],
		"work": [["kubectl", 2], ["k9s", 0]]
	}}`, string(data))
}

func TestStore_LoadRejectsUnrecognisedObjects(t *testing.T) {
	bodies := []string{
		`null`,
		`{"pkgs": {"default": [["jq", 1]]}}`,
		`{"packages": null}`,
		`{"packages": {"default": null}}`,
		`{"packages": {"default": [["jq", 1]]}, "version": 2}`,
		`{"default": {"jq": 1}}`,
	}
	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "pkgs.pnix")
			require.NoError(t, os.WriteFile(path, []byte(body), 0644))

			_, err := NewStore(path, "", nil).Load()
			assert.ErrorIs(t, err, ErrCorruptState)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, body, string(data))
		})
	}
}

func TestStore_LoadEmptyObjects(t *testing.T) {
	for _, body := range []string{`{}`, `{"packages": {}}`} {
		path := filepath.Join(t.TempDir(), "pkgs.pnix")
		require.NoError(t, os.WriteFile(path, []byte(body), 0644))

		st, err := NewStore(path, "", nil).Load()
		require.NoError(t, err, body)
		assert.Equal(t, 0, st.Len(), body)
	}
}
