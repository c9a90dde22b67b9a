package config

import (
	"os"
	"path/filepath"
)

// Discover searches upward from startDir through parent directories until
// the filesystem root, returning the first directory that contains the
// config file. The boolean is false when no config file was found.
func Discover(startDir string) (string, bool) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false
	}

	for {
		candidate := filepath.Join(dir, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return dir, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
