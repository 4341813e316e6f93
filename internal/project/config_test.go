package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestFindRootWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pyproject.toml"), "[project]\nname = \"demo\"\n")

	nested := filepath.Join(root, "src", "pkg")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(nested, "mod.py"), "x = 1\n")

	if got := FindRoot(filepath.Join(nested, "mod.py")); got != root {
		t.Errorf("Expected root %q, got %q", root, got)
	}
}

func TestFindRootWithoutMarker(t *testing.T) {
	dir := t.TempDir()
	if got := FindRoot(dir); got != dir {
		t.Errorf("Expected the start directory itself, got %q", got)
	}
}

func TestLoadPyprojectTable(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pyproject.toml"),
		"[tool.framecheck]\n"+
			"enabled = true\n"+
			"extra_reserved = [\"my_helper\"]\n"+
			"extra_frame_types = [\"LazyFrame\"]\n")

	cfg := Load(root)
	if !cfg.IsEnabled() {
		t.Error("Expected enabled")
	}
	if len(cfg.ExtraReserved) != 1 || cfg.ExtraReserved[0] != "my_helper" {
		t.Errorf("Wrong extra_reserved: %v", cfg.ExtraReserved)
	}
	if len(cfg.ExtraFrameTypes) != 1 || cfg.ExtraFrameTypes[0] != "LazyFrame" {
		t.Errorf("Wrong extra_frame_types: %v", cfg.ExtraFrameTypes)
	}
}

func TestLoadDisabled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pyproject.toml"),
		"[tool.framecheck]\nenabled = false\n")

	if Load(root).IsEnabled() {
		t.Error("Expected disabled")
	}
}

func TestYamlOverridesPyproject(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pyproject.toml"),
		"[tool.framecheck]\n"+
			"enabled = true\n"+
			"extra_reserved = [\"from_toml\"]\n")
	writeFile(t, filepath.Join(root, ".framecheck.yaml"),
		"enabled: false\n"+
			"extra_reserved:\n"+
			"  - from_yaml\n")

	cfg := Load(root)
	if cfg.IsEnabled() {
		t.Error("Expected yaml to disable")
	}
	if len(cfg.ExtraReserved) != 1 || cfg.ExtraReserved[0] != "from_yaml" {
		t.Errorf("Expected yaml override, got %v", cfg.ExtraReserved)
	}
}

func TestYamlOverlayKeepsUnsetFields(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pyproject.toml"),
		"[tool.framecheck]\nextra_reserved = [\"from_toml\"]\n")
	writeFile(t, filepath.Join(root, ".framecheck.yaml"), "enabled: true\n")

	cfg := Load(root)
	if len(cfg.ExtraReserved) != 1 || cfg.ExtraReserved[0] != "from_toml" {
		t.Errorf("Expected toml value preserved, got %v", cfg.ExtraReserved)
	}
}

func TestMalformedConfigFailsOpen(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pyproject.toml"), "not [valid toml\n")
	writeFile(t, filepath.Join(root, ".framecheck.yaml"), ":\n  - broken: [\n")

	cfg := Load(root)
	if !cfg.IsEnabled() {
		t.Error("Malformed config must leave the checker enabled")
	}
}

func TestMissingConfigFailsOpen(t *testing.T) {
	if !Load(t.TempDir()).IsEnabled() {
		t.Error("Missing config must leave the checker enabled")
	}
}

func TestLoadFor(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pyproject.toml"),
		"[tool.framecheck]\nenabled = false\n")
	nested := filepath.Join(root, "src")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(nested, "mod.py"), "x = 1\n")

	gotRoot, cfg := LoadFor(filepath.Join(nested, "mod.py"))
	if gotRoot != root {
		t.Errorf("Expected root %q, got %q", root, gotRoot)
	}
	if cfg.IsEnabled() {
		t.Error("Expected disabled config")
	}
}
