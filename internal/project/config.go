package project

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds the checker settings read from the project root. Settings
// come from the [tool.framecheck] table in pyproject.toml, overridden by
// .framecheck.yaml when present. Every read failure falls open: a project
// that cannot be parsed is a project with the checker enabled.
type Config struct {
	// Enabled turns the checker off for the whole project. Absent means
	// enabled.
	Enabled *bool `yaml:"enabled" toml:"enabled"`

	// ExtraReserved lists additional accessor names that are never treated
	// as column lookups (and that columns may not shadow without warning).
	ExtraReserved []string `yaml:"extra_reserved" toml:"extra_reserved"`

	// ExtraFrameTypes lists additional wrapper type names recognized in
	// annotations and constructor calls, next to DataFrame, PandasFrame
	// and PolarsFrame.
	ExtraFrameTypes []string `yaml:"extra_frame_types" toml:"extra_frame_types"`
}

// IsEnabled reports the effective enablement; a missing setting defaults
// to true.
func (c Config) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// pyproject mirrors just the slice of pyproject.toml we care about.
type pyproject struct {
	Tool struct {
		Framecheck Config `toml:"framecheck"`
	} `toml:"tool"`
}

// Load reads the configuration for the project rooted at root.
func Load(root string) Config {
	var cfg Config

	if data, err := os.ReadFile(filepath.Join(root, MarkerFile)); err == nil {
		var pp pyproject
		if err := toml.Unmarshal(data, &pp); err == nil {
			cfg = pp.Tool.Framecheck
		}
	}

	if data, err := os.ReadFile(filepath.Join(root, ConfigFile)); err == nil {
		var overlay Config
		if err := yaml.Unmarshal(data, &overlay); err == nil {
			cfg = merge(cfg, overlay)
		}
	}

	return cfg
}

// LoadFor resolves the root for a path and loads its configuration.
func LoadFor(path string) (string, Config) {
	root := FindRoot(path)
	return root, Load(root)
}

func merge(base, overlay Config) Config {
	if overlay.Enabled != nil {
		base.Enabled = overlay.Enabled
	}
	if len(overlay.ExtraReserved) > 0 {
		base.ExtraReserved = overlay.ExtraReserved
	}
	if len(overlay.ExtraFrameTypes) > 0 {
		base.ExtraFrameTypes = overlay.ExtraFrameTypes
	}
	return base
}
