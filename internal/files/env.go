package files

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultDirName defines the vault folder under the user's home directory.
const DefaultDirName = "Jurnal"

// ResolveBasePath determines the vault root from a configured location,
// usually $JURNAL_HOME as parsed by the config package. A blank location
// means ~/Jurnal; a leading ~ is expanded.
func ResolveBasePath(configured string) (string, error) {
	if configured = strings.TrimSpace(configured); configured != "" {
		return ExpandHome(configured)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultDirName), nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(input string) (string, error) {
	if !strings.HasPrefix(input, "~") {
		return input, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(input, "~")), nil
}
