// SPDX-License-Identifier: MPL-2.0

package project

import (
	"bytes"
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/yukihiko-shinoda/invoke-lint/internal/testutil"
)

func TestDiscover_FlatLayout(t *testing.T) {
	t.Parallel()

	root := testutil.PythonProject(t)
	targets, err := Discover(root, DefaultLists())
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}

	checks := []struct {
		name string
		got  []string
		want []string
	}{
		{"packages", targets.SetuptoolsPackages, []string{"invokelint", "invokelint.path"}},
		{"root packages", targets.ProductionPackages, []string{"invokelint"}},
		{"modules", targets.SetuptoolsModules, []string{"setup", "tasks"}},
		{"existing modules", targets.ExistingModules, []string{"setup.py", "tasks.py"}},
		{"test packages", targets.ExistingTestPackages, []string{"tests"}},
		{"python dirs", targets.PythonDirs, []string{"invokelint", "setup.py", "tasks.py", "tests"}},
		{"python dirs excluding test", targets.PythonDirsExcludingTest, []string{"invokelint", "setup.py", "tasks.py"}},
	}
	for _, c := range checks {
		if !slices.Equal(c.got, c.want) {
			t.Errorf("%s = %q, want %q", c.name, c.got, c.want)
		}
	}
	if targets.Root != root {
		t.Errorf("Root = %q, want %q", targets.Root, root)
	}
}

func TestTargetsWriteDebug(t *testing.T) {
	t.Parallel()

	root := testutil.PythonProject(t)
	targets, err := Discover(root, DefaultLists())
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}

	var out bytes.Buffer
	if err := targets.WriteDebug(&out); err != nil {
		t.Fatalf("WriteDebug() error: %v", err)
	}

	want := "Setuptools detected packages: ['invokelint', 'invokelint.path']\n" +
		"Root packages: ['invokelint']\n" +
		"Setuptools detected Python modules: ['setup', 'tasks']\n" +
		"Existing test packages: ['tests']\n" +
		"Python file or directories to lint: ['invokelint', 'setup.py', 'tasks.py', 'tests']\n" +
		"Python file or directories to lint excluding test packages: ['invokelint', 'setup.py', 'tasks.py']\n"
	if out.String() != want {
		t.Errorf("WriteDebug() =\n%s\nwant\n%s", out.String(), want)
	}
}

func TestDiscover_ExistingPackagesToLint(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		"app/__init__.py":      "",
		"scripts/release.py":   "",
		"tools/":               "",
		"noxfile.py":           "",
		"unit_tests/test_x.py": "",
	})

	targets, err := Discover(root, DefaultLists())
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}

	want := []string{"app", "noxfile.py", "scripts", "tools", "unit_tests"}
	if !slices.Equal(targets.PythonDirs, want) {
		t.Errorf("PythonDirs = %q, want %q", targets.PythonDirs, want)
	}
	wantExcl := []string{"app", "noxfile.py", "scripts", "tools"}
	if !slices.Equal(targets.PythonDirsExcludingTest, wantExcl) {
		t.Errorf("PythonDirsExcludingTest = %q, want %q", targets.PythonDirsExcludingTest, wantExcl)
	}
}

type stubDiscoverer struct {
	packages []string
	modules  []string
	err      error
}

func (s stubDiscoverer) TopLevelPackages() ([]string, error) { return s.packages, s.err }

func (s stubDiscoverer) PythonModules(candidates []string) ([]string, error) {
	return append(slices.Clone(s.modules), candidates...), nil
}

func TestResolve_CollapsesSubPackages(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	d := stubDiscoverer{packages: []string{"b.sub", "a", "a.x", "b", "c.deep.leaf"}}

	targets, err := Resolve(root, d, Lists{})
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	want := []string{"a", "b", filepath.Join("c", "deep", "leaf")}
	if !slices.Equal(targets.ProductionPackages, want) {
		t.Errorf("ProductionPackages = %q, want %q", targets.ProductionPackages, want)
	}
	if len(targets.ExistingModules) != 0 {
		t.Errorf("expected no existing modules, got %q", targets.ExistingModules)
	}
}

func TestResolve_DiscovererError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	if _, err := Resolve(t.TempDir(), stubDiscoverer{err: boom}, Lists{}); !errors.Is(err, boom) {
		t.Errorf("expected wrapped discoverer error, got %v", err)
	}
}
