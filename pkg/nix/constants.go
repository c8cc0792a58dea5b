// constants.go
package nix

const (
	// DefaultBinary is looked up on PATH when no binary is configured
	DefaultBinary = "nix"

	// BackendName is what pnix reports for this backend
	BackendName = "nix"

	// DefaultStoreDir is where store paths live
	DefaultStoreDir = "/nix/store"
)

// Subcommand arguments passed to the nix binary
var (
	installArgs = []string{"profile", "install"}
	removeArgs  = []string{"profile", "remove"}
	listArgs    = []string{"profile", "list", "--json"}
	versionArgs = []string{"--version"}
)

// attrPrefixes are the flake output prefixes stripped from attribute paths,
// each followed by the system triple
var attrPrefixes = []string{
	"legacyPackages",
	"packages",
}
