// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"maps"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

// MustSetenv sets the environment variable key to value.
// It returns a cleanup function that restores the original value (or unsets it).
// The test fails immediately if the operation fails.
func MustSetenv(t testing.TB, key, value string) func() {
	t.Helper()
	originalValue, hadValue := os.LookupEnv(key)
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set env %s: %v", key, err)
	}
	return func() {
		if hadValue {
			if err := os.Setenv(key, originalValue); err != nil {
				t.Errorf("failed to restore env %s: %v", key, err)
			}
		} else {
			if err := os.Unsetenv(key); err != nil {
				t.Errorf("failed to unset env %s: %v", key, err)
			}
		}
	}
}

// MustMkdirAll creates a directory along with any necessary parents.
// The test fails immediately if the operation fails.
func MustMkdirAll(t testing.TB, path string, perm os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(path, perm); err != nil {
		t.Fatalf("failed to create directory %s: %v", path, err)
	}
}

// MustWriteFile writes content to path, creating parent directories.
// The test fails immediately if the operation fails.
func MustWriteFile(t testing.TB, path, content string) {
	t.Helper()
	MustMkdirAll(t, filepath.Dir(path), 0o755)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// WriteTree creates files below root. Keys are slash-separated relative paths;
// a key ending in "/" creates an empty directory.
func WriteTree(t testing.TB, root string, files map[string]string) {
	t.Helper()
	for _, rel := range slices.Sorted(maps.Keys(files)) {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if rel[len(rel)-1] == '/' {
			MustMkdirAll(t, path, 0o755)
			continue
		}
		MustWriteFile(t, path, files[rel])
	}
}

// PythonProject creates a flat-layout project with the same shape as a typical
// invoke-based repository: package invokelint with subpackage invokelint.path,
// top-level setup.py and tasks.py, and a tests package. It returns the root.
func PythonProject(t testing.TB) string {
	t.Helper()
	root := t.TempDir()
	WriteTree(t, root, map[string]string{
		"pyproject.toml":              "[project]\nname = \"invokelint\"\n",
		"invokelint/__init__.py":      "",
		"invokelint/run.py":           "",
		"invokelint/path/__init__.py": "",
		"setup.py":                    "",
		"tasks.py":                    "",
		"tests/__init__.py":           "",
		"tests/test_run.py":           "",
		"docs/index.md":               "",
		".venv/lib/site.py":           "",
	})
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	return root
}
