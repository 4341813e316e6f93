// Package project locates the project root and reads the checker's
// configuration from it.
package project

import (
	"os"
	"path/filepath"
)

// MarkerFile is the file whose presence defines a project root.
const MarkerFile = "pyproject.toml"

// ConfigFile is the checker's own optional config file in the root. Its
// settings override the pyproject.toml tool table.
const ConfigFile = ".framecheck.yaml"

// FindRoot walks up from start to the nearest directory containing
// pyproject.toml. When no marker exists, start itself is the root.
func FindRoot(start string) string {
	dir := start
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	for current := dir; ; {
		if _, err := os.Stat(filepath.Join(current, MarkerFile)); err == nil {
			return current
		}
		parent := filepath.Dir(current)
		if parent == current {
			return dir
		}
		current = parent
	}
}
