// parser.go
package nix

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	nixstore "zombiezen.com/go/nix"

	"github.com/pie-nix/pnix/pkg/core"
)

// parseProfileList decodes `nix profile list --json` output into packages,
// sorted by name
func parseProfileList(data []byte) ([]core.Package, error) {
	var list profileList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parsing profile list: %w", err)
	}

	named := make(map[string]profileElement)
	raw := bytes.TrimSpace(list.Elements)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
	case raw[0] == '{':
		if err := json.Unmarshal(raw, &named); err != nil {
			return nil, fmt.Errorf("parsing profile elements: %w", err)
		}
	case raw[0] == '[':
		var elems []profileElement
		if err := json.Unmarshal(raw, &elems); err != nil {
			return nil, fmt.Errorf("parsing profile elements: %w", err)
		}
		for i, e := range elems {
			name := elementName(e)
			if name == "" {
				name = fmt.Sprintf("%d", i)
			}
			named[name] = e
		}
	default:
		return nil, fmt.Errorf("unexpected profile elements: %.20s", raw)
	}

	pkgs := make([]core.Package, 0, len(named))
	for name, e := range named {
		pkg := core.Package{
			Name:      name,
			Source:    source(e),
			StorePath: e.StorePaths,
			Backend:   BackendName,
			Active:    e.Active == nil || *e.Active,
		}
		if len(e.StorePaths) > 0 {
			_, pkg.Version = storePathName(e.StorePaths[0])
		}
		pkgs = append(pkgs, pkg)
	}

	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].Name < pkgs[j].Name })
	return pkgs, nil
}

func source(e profileElement) string {
	switch {
	case e.OriginalURL != "" && e.AttrPath != "":
		return e.OriginalURL + "#" + e.AttrPath
	case e.OriginalURL != "":
		return e.OriginalURL
	default:
		return e.URL
	}
}

// elementName derives a name for a pre-v3 manifest element, which carries
// none: the attribute path without its output prefix, else the store path
// name without its version.
func elementName(e profileElement) string {
	if e.AttrPath != "" {
		return attrName(e.AttrPath)
	}
	if len(e.StorePaths) > 0 {
		name, _ := storePathName(e.StorePaths[0])
		return name
	}
	return ""
}

// attrName strips "legacyPackages.<system>." or "packages.<system>." from an
// attribute path
func attrName(attrPath string) string {
	parts := strings.Split(attrPath, ".")
	if len(parts) >= 3 {
		for _, prefix := range attrPrefixes {
			if parts[0] == prefix && System(parts[1]).IsValid() {
				return strings.Join(parts[2:], ".")
			}
		}
	}
	return attrPath
}

// ElementName returns the profile element name nix assigns to an
// installable: the last attribute of a flake reference, or the argument
// unchanged when it has no fragment.
func ElementName(installable string) string {
	i := strings.LastIndexByte(installable, '#')
	if i < 0 || i == len(installable)-1 {
		return installable
	}
	attr := attrName(installable[i+1:])
	if j := strings.IndexByte(attr, '^'); j > 0 {
		attr = attr[:j]
	}
	if j := strings.LastIndexByte(attr, '.'); j >= 0 {
		attr = attr[j+1:]
	}
	return attr
}

// storePathName splits a store path's name into package name and version
func storePathName(path string) (name, version string) {
	base := filepath.Base(path)
	if sp, err := nixstore.ParseStorePath(path); err == nil {
		base = sp.Name()
	} else if i := strings.IndexByte(base, '-'); i >= 0 {
		base = base[i+1:]
	}
	return splitNameVersion(base)
}

// splitNameVersion splits at the first dash followed by a digit, the rule
// nix uses for derivation names
func splitNameVersion(s string) (name, version string) {
	for i := 0; i+1 < len(s); i++ {
		if s[i] == '-' && s[i+1] >= '0' && s[i+1] <= '9' {
			return s[:i], s[i+1:]
		}
	}
	return s, ""
}
