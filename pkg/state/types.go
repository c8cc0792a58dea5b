// pkg/state/types.go
package state

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record is a declared package: its name and reload priority.
// On disk it is the pair [name, priority].
type Record struct {
	Name     string
	Priority uint
}

// MarshalJSON encodes the record as [name, priority]
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{r.Name, r.Priority})
}

// UnmarshalJSON accepts [name, priority], [name] and the bare "name" used by
// flat-list files.
func (r *Record) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		if name == "" {
			return fmt.Errorf("empty package name")
		}
		*r = Record{Name: name}
		return nil
	}

	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("package record must be [name, priority]: %w", err)
	}
	if len(pair) == 0 || len(pair) > 2 {
		return fmt.Errorf("package record must be [name, priority], got %d elements", len(pair))
	}

	var rec Record
	if err := json.Unmarshal(pair[0], &rec.Name); err != nil {
		return fmt.Errorf("package name: %w", err)
	}
	if rec.Name == "" {
		return fmt.Errorf("empty package name")
	}
	if len(pair) == 2 {
		if err := json.Unmarshal(pair[1], &rec.Priority); err != nil {
			return fmt.Errorf("priority of %s: %w", rec.Name, err)
		}
	}

	*r = rec
	return nil
}

// Entry is a record together with the group it was declared in
type Entry struct {
	Group string
	Record
}

// document is the on-disk layout
type document struct {
	Packages map[string][]Record `json:"packages"`
}
