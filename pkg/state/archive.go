// pkg/state/archive.go
package state

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/ulikunitz/xz"
)

// xzMagic is the xz stream header
var xzMagic = []byte{0xFD, '7', 'z', 'X', 'Z', 0x00}

// Export writes st to path. Paths ending in .xz are xz-compressed.
func Export(st *State, path string) error {
	data, err := Encode(st)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating export directory: %w", err)
		}
	}

	pf, err := renameio.NewPendingFile(path, renameio.WithPermissions(0644))
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer pf.Cleanup()

	var w io.Writer = pf
	var xw *xz.Writer
	if strings.HasSuffix(path, ".xz") {
		xw, err = xz.NewWriter(pf)
		if err != nil {
			return fmt.Errorf("creating xz writer: %w", err)
		}
		w = xw
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	if xw != nil {
		if err := xw.Close(); err != nil {
			return fmt.Errorf("finishing xz stream: %w", err)
		}
	}

	if err := pf.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}

// Import reads a document written by Export (compressed or not)
func Import(path, defaultGroup string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if bytes.HasPrefix(data, xzMagic) {
		r, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCorruptState, path, err)
		}
		data, err = io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCorruptState, path, err)
		}
	}

	st, err := Decode(data, defaultGroup)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return st, nil
}
