// pkg/state/state.go
package state

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// State maps group names to their ordered package records
type State struct {
	packages map[string][]Record
}

// New returns an empty state
func New() *State {
	return &State{packages: make(map[string][]Record)}
}

// Groups returns the known group names, sorted
func (s *State) Groups() []string {
	groups := make([]string, 0, len(s.packages))
	for g := range s.packages {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}

// HasGroup reports whether the group exists
func (s *State) HasGroup(group string) bool {
	_, ok := s.packages[group]
	return ok
}

// Group returns a copy of the group's records in declaration order
func (s *State) Group(group string) []Record {
	recs := s.packages[group]
	out := make([]Record, len(recs))
	copy(out, recs)
	return out
}

// Len returns the number of records across all groups
func (s *State) Len() int {
	n := 0
	for _, recs := range s.packages {
		n += len(recs)
	}
	return n
}

// Add records rec in group. An existing record with the same name has its
// priority replaced in place; replaced reports whether that happened.
func (s *State) Add(group string, rec Record) (replaced bool) {
	if s.packages == nil {
		s.packages = make(map[string][]Record)
	}
	recs := s.packages[group]
	for i := range recs {
		if recs[i].Name == rec.Name {
			recs[i].Priority = rec.Priority
			return true
		}
	}
	s.packages[group] = append(recs, rec)
	return false
}

// Remove drops every record named in names from the given groups, or from
// all groups when groups is empty. Groups left without records are deleted.
// The result maps each touched group to the names removed from it.
func (s *State) Remove(groups []string, names []string) map[string][]string {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	if len(groups) == 0 {
		groups = s.Groups()
	}

	removed := make(map[string][]string)
	for _, g := range groups {
		recs, ok := s.packages[g]
		if !ok {
			continue
		}
		kept := recs[:0]
		for _, r := range recs {
			if drop[r.Name] {
				removed[g] = append(removed[g], r.Name)
				continue
			}
			kept = append(kept, r)
		}
		if len(kept) == 0 {
			delete(s.packages, g)
		} else {
			s.packages[g] = kept
		}
	}
	return removed
}

// Collect gathers the records of the given groups (all groups when empty)
// in reload order: ascending priority, ties broken by group name and then
// declaration order. A name declared in several groups appears once, at its
// first position. Groups that do not exist are returned in missing.
func (s *State) Collect(groups []string) (entries []Entry, missing []string) {
	if len(groups) == 0 {
		groups = s.Groups()
	} else {
		groups = dedupSorted(groups)
	}

	for _, g := range groups {
		recs, ok := s.packages[g]
		if !ok {
			missing = append(missing, g)
			continue
		}
		for _, r := range recs {
			entries = append(entries, Entry{Group: g, Record: r})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Priority < entries[j].Priority
	})

	seen := make(map[string]bool, len(entries))
	out := entries[:0]
	for _, e := range entries {
		if seen[e.Name] {
			continue
		}
		seen[e.Name] = true
		out = append(out, e)
	}
	return out, missing
}

// Merge adds every record of other into s
func (s *State) Merge(other *State) {
	for _, g := range other.Groups() {
		for _, r := range other.packages[g] {
			s.Add(g, r)
		}
	}
}

// MarshalJSON encodes {"packages": {group: [[name, priority], ...]}}
func (s *State) MarshalJSON() ([]byte, error) {
	doc := document{Packages: s.packages}
	if doc.Packages == nil {
		doc.Packages = map[string][]Record{}
	}
	return json.Marshal(doc)
}

// UnmarshalJSON decodes the packages document. A top-level array of names
// is read into the default group, the layout flat-list files used, and an
// object without the "packages" wrapper is read as the group mapping itself.
func (s *State) UnmarshalJSON(data []byte) error {
	return s.decode(data, "default")
}

func (s *State) decode(data []byte, defaultGroup string) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var flat []Record
		if err := json.Unmarshal(data, &flat); err != nil {
			return err
		}
		ns := New()
		for _, r := range flat {
			ns.Add(defaultGroup, r)
		}
		*s = *ns
		return nil
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return err
	}
	if top == nil {
		return fmt.Errorf("state must be a JSON object, got null")
	}

	groups := top
	if raw, ok := top["packages"]; ok && isObject(raw) {
		if len(top) != 1 {
			return fmt.Errorf("unexpected keys next to \"packages\"")
		}
		groups = nil
		if err := json.Unmarshal(raw, &groups); err != nil {
			return err
		}
	}

	// Without a "packages" wrapper the object is read as the bare
	// group -> records mapping.
	ns := New()
	for g, raw := range groups {
		if !isArray(raw) {
			return fmt.Errorf("group %q must be an array of [name, priority]", g)
		}
		var recs []Record
		if err := json.Unmarshal(raw, &recs); err != nil {
			return fmt.Errorf("group %q: %w", g, err)
		}
		for _, r := range recs {
			ns.Add(g, r)
		}
		if len(recs) == 0 {
			ns.packages[g] = []Record{}
		}
	}
	*s = *ns
	return nil
}

func isObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}

func isArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}

func dedupSorted(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
