package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/webtc/pkg/filesystem"
	"github.com/arthur-debert/webtc/pkg/types"
)

// NewTestFS creates a new in-memory filesystem for testing.
func NewTestFS() types.FS {
	return filesystem.NewMemory()
}

// CreateFile creates a file with the given content in the specified directory.
// It fails the test if the file cannot be created.
func CreateFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create file %s: %v", path, err)
	}

	return path
}

// CreateDir creates a directory in the specified parent directory.
// It fails the test if the directory cannot be created.
func CreateDir(t *testing.T, parent, name string) string {
	t.Helper()

	path := filepath.Join(parent, name)

	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", path, err)
	}

	return path
}

// ReadFile returns the content of path, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

// Exists reports whether path exists on disk.
func Exists(t *testing.T, path string) bool {
	t.Helper()

	_, err := os.Stat(path)
	if err == nil {
		return true
	}
	if !os.IsNotExist(err) {
		t.Fatalf("Failed to stat %s: %v", path, err)
	}
	return false
}

// WebTree lays out a minimal source root: web/package.json plus one
// web/apps/<name>/gulpfile.js per app. It returns the root.
func WebTree(t *testing.T, packageJSON string, apps ...string) string {
	t.Helper()

	root := t.TempDir()
	CreateFile(t, root, filepath.Join("web", "package.json"), packageJSON)
	CreateDir(t, root, filepath.Join("web", "apps"))
	for _, app := range apps {
		CreateFile(t, root, filepath.Join("web", "apps", app, "gulpfile.js"), "// "+app+"\n")
	}
	return root
}
