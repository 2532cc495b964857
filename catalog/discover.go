package catalog

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileName is the catalog file looked up when no path is given.
const DefaultFileName = "mycommand-tools.yaml"

// FindConfigFile resolves the catalog path. An explicit path must exist.
// Otherwise DefaultFileName is looked up in the working directory, then in
// the user configuration directory. When neither exists the bare file name is
// returned and the subsequent load reports the missing file.
func FindConfigFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("specified config file not found: %s", explicit)
		}
		return explicit, nil
	}

	if _, err := os.Stat(DefaultFileName); err == nil {
		return DefaultFileName, nil
	}

	if dir, err := os.UserConfigDir(); err == nil {
		candidate := filepath.Join(dir, DefaultFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return DefaultFileName, nil
}
