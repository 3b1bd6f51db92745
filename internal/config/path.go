// Package config resolves worthit settings from viper, the environment and defaults.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves $VAR references and a leading ~ in a user supplied path.
// A ~ is left as is when the home directory cannot be determined.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}

	path = os.ExpandEnv(path)
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
