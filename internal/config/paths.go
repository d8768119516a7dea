package config

import (
	"os"
	"path/filepath"
)

// HomeDir returns the roster state directory: ROSTER_HOME, or ~/.roster.
// Without a usable home directory it falls back to os.TempDir.
func HomeDir() string {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), homeDirName)
	}
	return filepath.Join(home, homeDirName)
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(HomeDir(), configFileName)
}

// LogDir returns the default directory for log files.
func LogDir() string {
	return filepath.Join(HomeDir(), "logs")
}

// CacheDir returns the configured cache directory or the default under HomeDir.
func (c *Config) CacheDir() string {
	if c.Cache.Directory != "" {
		return c.Cache.Directory
	}
	return filepath.Join(HomeDir(), "cache")
}
