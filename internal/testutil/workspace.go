// Package testutil provides reusable test utilities for fade integration tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TestWorkspace is a temporary directory holding datasets and a config file.
type TestWorkspace struct {
	Path   string
	t      *testing.T
	config string
	files  map[string]string
}

// NewTestWorkspace creates a new workspace builder.
// Call Build() to create the actual directory.
func NewTestWorkspace(t *testing.T) *TestWorkspace {
	t.Helper()
	return &TestWorkspace{
		t:     t,
		files: make(map[string]string),
	}
}

// WithConfig sets the config.toml content. An empty config is written when
// none is given so tests never read the user's real config.
func (w *TestWorkspace) WithConfig(toml string) *TestWorkspace {
	w.config = toml
	return w
}

// WithFile adds a file to the workspace.
// The path is relative to the workspace root.
func (w *TestWorkspace) WithFile(path, content string) *TestWorkspace {
	w.files[path] = content
	return w
}

// Build creates the workspace directory and all configured files.
func (w *TestWorkspace) Build() *TestWorkspace {
	w.t.Helper()

	w.Path = w.t.TempDir()
	w.writeFile("config.toml", w.config)
	for path, content := range w.files {
		w.writeFile(path, content)
	}
	return w
}

// ConfigPath returns the path of the workspace config.toml.
func (w *TestWorkspace) ConfigPath() string {
	return filepath.Join(w.Path, "config.toml")
}

// Abs returns the absolute path of a workspace-relative file.
func (w *TestWorkspace) Abs(relPath string) string {
	return filepath.Join(w.Path, relPath)
}

func (w *TestWorkspace) writeFile(relPath, content string) {
	w.t.Helper()
	fullPath := filepath.Join(w.Path, relPath)

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		w.t.Fatalf("failed to create directory %s: %v", dir, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		w.t.Fatalf("failed to write file %s: %v", fullPath, err)
	}
}

// ReadFile reads a workspace file and returns its content.
func (w *TestWorkspace) ReadFile(relPath string) string {
	w.t.Helper()
	content, err := os.ReadFile(filepath.Join(w.Path, relPath))
	if err != nil {
		w.t.Fatalf("failed to read file %s: %v", relPath, err)
	}
	return string(content)
}

// FileExists checks if a file exists in the workspace.
func (w *TestWorkspace) FileExists(relPath string) bool {
	w.t.Helper()
	_, err := os.Stat(filepath.Join(w.Path, relPath))
	return err == nil
}

// AssertFileExists fails the test if the file does not exist.
func (w *TestWorkspace) AssertFileExists(relPath string) {
	w.t.Helper()
	if !w.FileExists(relPath) {
		w.t.Errorf("expected file to exist: %s", relPath)
	}
}

// AssertFileNotExists fails the test if the file exists.
func (w *TestWorkspace) AssertFileNotExists(relPath string) {
	w.t.Helper()
	if w.FileExists(relPath) {
		w.t.Errorf("expected file to not exist: %s", relPath)
	}
}

// AssertFileUnchanged fails the test if the file no longer has the content it
// was built with.
func (w *TestWorkspace) AssertFileUnchanged(relPath string) {
	w.t.Helper()
	want, ok := w.files[relPath]
	if !ok {
		w.t.Fatalf("%s was not part of the workspace fixture", relPath)
	}
	if got := w.ReadFile(relPath); got != want {
		w.t.Errorf("expected %s to be unchanged, got:\n%s", relPath, got)
	}
}
