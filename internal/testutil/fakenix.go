// internal/testutil/fakenix.go
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// FakeNix is a shell script that records its arguments and answers the
// subset of nix commands pnix uses
type FakeNix struct {
	Path    string
	logPath string
	profile string
}

const fakeNixScript = `#!/bin/sh
printf '%%s\n' "$*" >> '%s'
if [ "$1" = "--version" ]; then
  echo "nix (Nix) 2.24.9"
  exit 0
fi
if [ "$1 $2" = "profile list" ]; then
  if [ -f '%s' ]; then cat '%s'; else echo '{"elements":{},"version":3}'; fi
  exit 0
fi
for f in %s; do
  if [ "$3" = "$f" ]; then
    echo "error: cannot $2 '$3'" >&2
    exit 1
  fi
done
exit 0
`

// NewFakeNix writes the script into a temp dir. Install and remove of any
// package in failing exit 1.
func NewFakeNix(t *testing.T, failing ...string) *FakeNix {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake nix needs /bin/sh")
	}

	dir := t.TempDir()
	f := &FakeNix{
		Path:    filepath.Join(dir, "nix"),
		logPath: filepath.Join(dir, "calls.log"),
		profile: filepath.Join(dir, "profile.json"),
	}

	script := fmt.Sprintf(fakeNixScript, f.logPath, f.profile, f.profile, strings.Join(failing, " "))
	if err := os.WriteFile(f.Path, []byte(script), 0755); err != nil {
		t.Fatalf("writing fake nix: %v", err)
	}
	return f
}

// SetProfile sets what `nix profile list --json` prints
func (f *FakeNix) SetProfile(t *testing.T, json string) {
	t.Helper()
	if err := os.WriteFile(f.profile, []byte(json), 0644); err != nil {
		t.Fatalf("writing fake profile: %v", err)
	}
}

// Calls returns the argument lines the script was invoked with, in order
func (f *FakeNix) Calls(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(f.logPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("reading fake nix log: %v", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

// Installs returns the packages passed to `profile install`, in order
func (f *FakeNix) Installs(t *testing.T) []string {
	return f.subcommand(t, "profile install ")
}

// Removes returns the packages passed to `profile remove`, in order
func (f *FakeNix) Removes(t *testing.T) []string {
	return f.subcommand(t, "profile remove ")
}

func (f *FakeNix) subcommand(t *testing.T, prefix string) []string {
	t.Helper()
	var out []string
	for _, c := range f.Calls(t) {
		if strings.HasPrefix(c, prefix) {
			out = append(out, strings.TrimPrefix(c, prefix))
		}
	}
	return out
}
