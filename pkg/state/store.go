// pkg/state/store.go
package state

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// ErrCorruptState indicates the state file exists but cannot be decoded
var ErrCorruptState = errors.New("corrupt state file")

// Store reads and writes the state file
type Store struct {
	path         string
	defaultGroup string
	logger       *log.Logger
}

// NewStore creates a store for the file at path. Flat-list files are read
// into defaultGroup.
func NewStore(path, defaultGroup string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if defaultGroup == "" {
		defaultGroup = "default"
	}
	return &Store{
		path:         path,
		defaultGroup: defaultGroup,
		logger:       logger,
	}
}

// Path returns the state file location
func (s *Store) Path() string {
	return s.path
}

// Load reads the state file. A missing or empty file is an empty state.
func (s *Store) Load() (*State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Printf("State file %s does not exist, starting empty", s.path)
			return New(), nil
		}
		return nil, fmt.Errorf("reading state: %w", err)
	}

	st, err := Decode(data, s.defaultGroup)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}

	s.logger.Printf("Loaded %d packages in %d groups from %s", st.Len(), len(st.Groups()), s.path)
	return st, nil
}

// Save overwrites the state file atomically, creating its directory first
func (s *Store) Save(st *State) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	data, err := Encode(st)
	if err != nil {
		return err
	}

	if err := renameio.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}

	s.logger.Printf("Saved %d packages to %s", st.Len(), s.path)
	return nil
}

// Decode parses a state document
func Decode(data []byte, defaultGroup string) (*State, error) {
	st := New()
	if len(bytes.TrimSpace(data)) == 0 {
		return st, nil
	}
	if err := st.decode(data, defaultGroup); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	return st, nil
}

// Encode renders a state document, indented, with a trailing newline
func Encode(st *State) ([]byte, error) {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling state: %w", err)
	}
	return append(data, '\n'), nil
}
