// pkg/registry/registry.go
package registry

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/BurntSushi/toml"
)

// ErrNotFound is returned by Lookup for names without an alias
var ErrNotFound = errors.New("registry: alias not found")

// Entry is one [[package]] table of the alias file
type Entry struct {
	Name        string `toml:"name"`
	Ref         string `toml:"ref"`
	Description string `toml:"description"`
}

type file struct {
	Packages []Entry `toml:"package"`
}

// Registry maps short package names to the installable the backend receives
type Registry struct {
	path    string
	entries map[string]Entry
}

// New returns an empty registry
func New() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Load reads the alias file at path. A missing file is an empty registry.
func Load(path string) (*Registry, error) {
	r := New()
	r.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return r, nil
		}
		return nil, fmt.Errorf("registry: reading %s: %w", path, err)
	}

	var f file
	if _, err := toml.Decode(string(data), &f); err != nil {
		return nil, fmt.Errorf("registry: failed to parse '%s': %w", path, err)
	}

	for i, e := range f.Packages {
		if e.Name == "" || e.Ref == "" {
			return nil, fmt.Errorf("registry: %s: package %d needs both name and ref", path, i+1)
		}
		if _, dup := r.entries[e.Name]; dup {
			return nil, fmt.Errorf("registry: %s: duplicate alias '%s'", path, e.Name)
		}
		r.entries[e.Name] = e
	}

	return r, nil
}

// Path returns the file the registry was loaded from
func (r *Registry) Path() string {
	return r.path
}

// Add registers an alias, replacing any previous one for the name
func (r *Registry) Add(e Entry) {
	r.entries[e.Name] = e
}

// Lookup returns the entry for name
func (r *Registry) Lookup(name string) (*Entry, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrNotFound, name)
	}
	return &e, nil
}

// Resolve returns the ref aliased to name, or name itself
// e.g. Resolve("rg") -> "nixpkgs#ripgrep"
func (r *Registry) Resolve(name string) string {
	if e, ok := r.entries[name]; ok {
		return e.Ref
	}
	return name
}

// Entries returns all aliases sorted by name
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
