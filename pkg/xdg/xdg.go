// pkg/xdg/xdg.go

package xdg

import (
	"os"
	"path/filepath"
)

func GetEnvOrDefault(envVar, fallback string) string {
	if val := os.Getenv(envVar); val != "" {
		return val
	}
	return fallback
}

// Home is the user's home directory, or the temp dir when none is known.
func Home() string {
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return home
	}
	return os.TempDir()
}

// ConfigHome is $XDG_CONFIG_HOME, falling back to ~/.config.
func ConfigHome() string {
	return GetEnvOrDefault("XDG_CONFIG_HOME", filepath.Join(Home(), ".config"))
}

// DotDirPath is ~/.<app>/<file>, used for per-user runtime artefacts.
func DotDirPath(app, file string) string {
	return filepath.Join(Home(), "."+app, file)
}

// EnsureDir creates the parent directory of path, readable by the owner only.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), DirPermOwnerOnly)
}

// OpenAppend opens path for appending, creating it and its directory with
// owner-only permissions when missing.
func OpenAppend(path string) (*os.File, error) {
	if err := EnsureDir(path); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, FilePermOwnerReadWrite)
}
