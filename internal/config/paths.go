// ABOUTME: Standard filesystem paths for swatch configuration and state
// ABOUTME: Resolves $XDG_CONFIG_HOME/swatch with a ~/.config fallback

package config

import (
	"os"
	"path/filepath"
)

const appDirName = "swatch"

// Root returns the swatch config directory ($XDG_CONFIG_HOME/swatch or
// ~/.config/swatch).
func Root() string {
	if base := os.Getenv("XDG_CONFIG_HOME"); base != "" {
		return filepath.Join(base, appDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "."+appDirName)
	}
	return filepath.Join(home, ".config", appDirName)
}

// ThemesDir returns the default themes root directory.
func ThemesDir() string {
	return filepath.Join(Root(), "themes")
}

// CurrentLink returns the path of the current-theme symlink.
func CurrentLink() string {
	return filepath.Join(Root(), "current")
}

// LockFile returns the path of the single-instance lock file.
func LockFile() string {
	return filepath.Join(Root(), "swatch.lock")
}

// ConfigFile returns the path to the main config file.
func ConfigFile() string {
	return filepath.Join(Root(), "config.json")
}

// LocalConfigFile returns the path to the per-machine override file.
func LocalConfigFile() string {
	return filepath.Join(Root(), "config.local.json")
}
