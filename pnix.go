// pnix.go
package pnix

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"

	"github.com/pie-nix/pnix/pkg/core"
	"github.com/pie-nix/pnix/pkg/registry"
	"github.com/pie-nix/pnix/pkg/state"
)

// Re-export state types for convenience
type (
	Record = state.Record
	Entry  = state.Entry
)

// InstallOptions configures Install
type InstallOptions struct {
	Temp     bool     // Install without recording the package
	Groups   []string // Target groups; the default group when empty
	Priority uint     // Reload priority recorded with the package
}

// RemoveOptions configures Remove
type RemoveOptions struct {
	Groups    []string // Groups to drop the package from; all when empty
	Temp      bool     // Remove from the profile only, keep the record
	StateOnly bool     // Drop the record only, leave the profile alone
}

// Result is the outcome of one backend invocation
type Result struct {
	Package string   // Name as the user gave it
	Ref     string   // What the backend received
	Groups  []string // Groups recorded in or removed from
	Err     error
}

// OK reports whether the backend call succeeded
func (r Result) OK() bool {
	return r.Err == nil
}

// ReloadReport describes a reload
type ReloadReport struct {
	Plan    []Entry  // Install order
	Missing []string // Requested groups that do not exist
	Results []Result // One per executed plan entry; empty on dry run
}

// Failed returns the number of failed installs
func (r *ReloadReport) Failed() int {
	n := 0
	for _, res := range r.Results {
		if !res.OK() {
			n++
		}
	}
	return n
}

// GroupListing is one group with its records
type GroupListing struct {
	Name    string
	Records []Record
}

// Manager applies commands to the declared package set and the backend
type Manager struct {
	backend  core.Backend
	store    *state.Store
	state    *state.State
	registry *registry.Registry
	config   *core.Config
	logger   *log.Logger
}

// NewManager loads the state file named by config and returns a manager
// driving b. A nil registry resolves every name to itself.
func NewManager(config *core.Config, b core.Backend, reg *registry.Registry, logger *log.Logger) (*Manager, error) {
	if b == nil {
		return nil, fmt.Errorf("backend cannot be nil")
	}
	if config == nil {
		config = core.DefaultConfig()
	}
	if err := config.ApplyDefaults(); err != nil {
		return nil, &Error{Op: "config", Err: err}
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if reg == nil {
		reg = registry.New()
	}

	store := state.NewStore(config.StatePath, config.DefaultGroup, logger)
	st, err := store.Load()
	if err != nil {
		return nil, &Error{Op: "load", Err: err}
	}

	return &Manager{
		backend:  b,
		store:    store,
		state:    st,
		registry: reg,
		config:   config,
		logger:   logger,
	}, nil
}

// Install installs each package and, unless opts.Temp, records the ones
// that succeeded in every target group. Per-package failures are reported in
// the results; the returned error is for failures that stop the whole batch.
// When ctx is cancelled the batch stops and the results so far are returned
// along with the error.
func (m *Manager) Install(ctx context.Context, names []string, opts InstallOptions) ([]Result, error) {
	if err := validateNames(names); err != nil {
		return nil, &Error{Op: "install", Err: err}
	}
	if err := m.requireBackend(ctx, "install"); err != nil {
		return nil, err
	}

	groups := uniq(opts.Groups)
	if len(groups) == 0 {
		groups = []string{m.config.DefaultGroup}
	}

	results := make([]Result, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return results, &Error{Op: "install", Err: err}
		}

		ref := m.registry.Resolve(name)
		res := Result{Package: name, Ref: ref}

		m.logger.Printf("Installing %s (%s)", name, ref)
		if err := m.backend.Install(ctx, ref); err != nil {
			res.Err = &Error{Op: "install", Package: name, Err: err}
			results = append(results, res)
			continue
		}

		if !opts.Temp {
			for _, g := range groups {
				if m.state.Add(g, Record{Name: name, Priority: opts.Priority}) {
					m.logger.Printf("Updated %s in %s to priority %d", name, g, opts.Priority)
				}
			}
			res.Groups = groups
		}
		results = append(results, res)
	}

	return results, nil
}

// Remove removes each package from the profile and drops its records from
// the target groups. Records are dropped whether or not the backend call
// succeeds.
func (m *Manager) Remove(ctx context.Context, names []string, opts RemoveOptions) ([]Result, error) {
	if err := validateNames(names); err != nil {
		return nil, &Error{Op: "remove", Err: err}
	}
	if opts.Temp && opts.StateOnly {
		return nil, &Error{Op: "remove", Err: errors.New("temp and state-only are mutually exclusive")}
	}

	results := make([]Result, 0, len(names))
	for _, name := range names {
		ref := m.registry.Resolve(name)
		res := Result{Package: name, Ref: ref}

		if !opts.StateOnly {
			m.logger.Printf("Removing %s (%s)", name, ref)
			if err := m.backend.Remove(ctx, ref); err != nil {
				res.Err = &Error{Op: "remove", Package: name, Err: err}
			}
		}
		results = append(results, res)
	}

	if opts.Temp {
		return results, nil
	}

	removed := m.state.Remove(uniq(opts.Groups), names)
	for i := range results {
		for _, g := range sortedKeys(removed) {
			for _, n := range removed[g] {
				if n == results[i].Package {
					results[i].Groups = append(results[i].Groups, g)
				}
			}
		}
	}
	return results, nil
}

// Reload installs every recorded package of the given groups (all groups
// when empty) in ascending priority order. With dryRun only the plan is
// computed. Cancelling ctx stops the reload; the report then holds the
// results gathered so far.
func (m *Manager) Reload(ctx context.Context, groups []string, dryRun bool) (*ReloadReport, error) {
	if !dryRun {
		if err := m.requireBackend(ctx, "reload"); err != nil {
			return nil, err
		}
	}

	plan, missing := m.state.Collect(groups)
	report := &ReloadReport{Plan: plan, Missing: missing}
	if dryRun {
		return report, nil
	}

	for _, e := range plan {
		if err := ctx.Err(); err != nil {
			return report, &Error{Op: "reload", Err: err}
		}

		ref := m.registry.Resolve(e.Name)
		res := Result{Package: e.Name, Ref: ref, Groups: []string{e.Group}}

		m.logger.Printf("Reinstalling %s from %s (priority %d)", e.Name, e.Group, e.Priority)
		if err := m.backend.Install(ctx, ref); err != nil {
			res.Err = &Error{Op: "reload", Package: e.Name, Err: err}
		}
		report.Results = append(report.Results, res)
	}

	return report, nil
}

// Packages lists the given groups (all when empty) sorted by name, and the
// requested groups that do not exist
func (m *Manager) Packages(groups []string) (listings []GroupListing, missing []string) {
	if len(groups) == 0 {
		groups = m.state.Groups()
	} else {
		groups = uniq(groups)
		sort.Strings(groups)
	}

	for _, g := range groups {
		if !m.state.HasGroup(g) {
			missing = append(missing, g)
			continue
		}
		listings = append(listings, GroupListing{Name: g, Records: m.state.Group(g)})
	}
	return listings, missing
}

// Installed lists what the backend's profile currently contains
func (m *Manager) Installed(ctx context.Context) ([]core.Package, error) {
	pkgs, err := m.backend.List(ctx)
	if err != nil {
		return nil, &Error{Op: "list", Err: err}
	}
	return pkgs, nil
}

// Export writes the declared set to path
func (m *Manager) Export(path string) error {
	if err := state.Export(m.state, path); err != nil {
		return &Error{Op: "export", Err: err}
	}
	return nil
}

// Import reads a declared set from path and replaces the current one, or
// merges into it. It returns the number of records read.
func (m *Manager) Import(path string, merge bool) (int, error) {
	imported, err := state.Import(path, m.config.DefaultGroup)
	if err != nil {
		return 0, &Error{Op: "import", Err: err}
	}

	if merge {
		m.state.Merge(imported)
	} else {
		m.state = imported
	}
	return imported.Len(), nil
}

// Save writes the state file
func (m *Manager) Save() error {
	if err := m.store.Save(m.state); err != nil {
		return &Error{Op: "save", Err: err}
	}
	return nil
}

// State returns the in-memory declared set
func (m *Manager) State() *state.State {
	return m.state
}

// StatePath returns the state file location
func (m *Manager) StatePath() string {
	return m.store.Path()
}

// Registry returns the alias registry
func (m *Manager) Registry() *registry.Registry {
	return m.registry
}

// Backend returns the name of the active backend
func (m *Manager) Backend() string {
	return m.backend.Name()
}

func (m *Manager) requireBackend(ctx context.Context, op string) error {
	if !m.backend.IsAvailable(ctx) {
		return &Error{Op: op, Err: fmt.Errorf("%w: %s", ErrToolNotAvailable, m.backend.Name())}
	}
	return nil
}

func validateNames(names []string) error {
	if len(names) == 0 {
		return fmt.Errorf("%w: no package names given", ErrInvalidPackage)
	}
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			return fmt.Errorf("%w: empty package name", ErrInvalidPackage)
		}
	}
	return nil
}

func uniq(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, v := range in {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
