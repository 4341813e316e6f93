package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func captureStdout(t *testing.T, fn func() error) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w
	runErr := fn()
	w.Close()
	os.Stdout = old
	out, _ := io.ReadAll(r)
	r.Close()
	if runErr != nil {
		t.Fatalf("Run failed: %v", runErr)
	}
	return string(out)
}

func disabledProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "pyproject.toml"), "[tool.framecheck]\nenabled = false\n")
	writeFile(t, filepath.Join(dir, "app.py"), "df.whatever\n")
	return dir
}

func TestDisabledProjectEmitsEmptyJSONList(t *testing.T) {
	dir := disabledProject(t)
	cmd := &CheckCmd{Paths: []string{dir}, JSON: true}

	out := captureStdout(t, cmd.Run)
	if strings.TrimSpace(out) != "[]" {
		t.Errorf("Expected empty JSON list, got %q", out)
	}
}

func TestDisabledProjectHumanOutputSilent(t *testing.T) {
	dir := disabledProject(t)
	cmd := &CheckCmd{Paths: []string{dir}}

	out := captureStdout(t, cmd.Run)
	if out != "" {
		t.Errorf("Expected no output for disabled project, got %q", out)
	}
}
