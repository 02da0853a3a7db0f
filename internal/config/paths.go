// ABOUTME: Standard filesystem paths for githooks global configuration
// ABOUTME: Resolves ~/.githooks/ for the user-level allow-list settings file

package config

import (
	"os"
	"path/filepath"
)

const globalDirName = ".githooks"

// GlobalDir returns the user-global githooks directory (~/.githooks/).
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", globalDirName)
	}
	return filepath.Join(home, globalDirName)
}

// GlobalConfigFile returns the path to the user-level allow-list settings
// file (~/.githooks/config.yaml). This file lives outside any repository
// and is consulted by the config loader to decide whether an ancestor
// hooks.toml is permitted to import a config path via an absolute
// filesystem reference.
func GlobalConfigFile() string {
	return filepath.Join(GlobalDir(), "config.yaml")
}

// EnsureDir creates a directory and all parents if they don't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o700)
}
