// SPDX-License-Identifier: MPL-2.0

package project

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yukihiko-shinoda/invoke-lint/internal/pathfilter"
)

type (
	// Lists are the conventional names checked for existence in addition to
	// the discovered packages.
	Lists struct {
		// PackagesToLint are directories setuptools excludes from distributions
		// that should still be linted and formatted.
		PackagesToLint []string
		// ModulesToLint are top-level module names (without .py).
		ModulesToLint []string
		// TestPackages are test directories.
		TestPackages []string
	}

	// Targets is the canonical set of lint/format/test targets of a project.
	// All paths are relative to Root.
	Targets struct {
		Root                 string
		SetuptoolsPackages   []string
		ProductionPackages   []string
		SetuptoolsModules    []string
		ExistingModules      []string
		ExistingPackages     []string
		ExistingTestPackages []string
		// PythonDirs is every target, test packages included.
		PythonDirs []string
		// PythonDirsExcludingTest is PythonDirs without the test packages.
		PythonDirsExcludingTest []string
	}

	packageDirer interface {
		PackageDir() string
	}
)

// DefaultLists returns the conventional names used when configuration sets none.
func DefaultLists() Lists {
	return Lists{
		PackagesToLint: []string{
			"example", "examples", "scripts", "tools", "util", "utils", "python",
			// SCons
			"site_scons",
		},
		ModulesToLint: []string{
			"setup", "conftest", "test", "tests", "example", "examples",
			"toxfile", "noxfile", "pavement", "dodo", "tasks", "fabfile",
			// Conan
			"conanfile",
			// Django
			"manage",
		},
		TestPackages: []string{"test", "tests", "unit_test", "unit_tests"},
	}
}

// Resolve builds Targets for the project at root from d.
func Resolve(root string, d Discoverer, lists Lists) (*Targets, error) {
	packages, err := d.TopLevelPackages()
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	modules, err := d.PythonModules(lists.ModulesToLint)
	if err != nil {
		return nil, fmt.Errorf("failed to list modules: %w", err)
	}

	base := ""
	if pd, ok := d.(packageDirer); ok {
		base = pd.PackageDir()
	}

	packagePaths := make([]string, len(packages))
	for i, pkg := range packages {
		packagePaths[i] = filepath.Join(base, strings.ReplaceAll(pkg, ".", string(os.PathSeparator)))
	}

	t := &Targets{
		Root:               root,
		SetuptoolsPackages: packages,
		ProductionPackages: pathfilter.RootsOnly(packagePaths),
		SetuptoolsModules:  modules,
	}
	for _, m := range modules {
		if isFile(filepath.Join(root, m+".py")) {
			t.ExistingModules = append(t.ExistingModules, m+".py")
		}
	}
	t.ExistingPackages = existingDirs(root, lists.PackagesToLint)
	t.ExistingTestPackages = existingDirs(root, lists.TestPackages)

	t.PythonDirsExcludingTest = pathfilter.Unique(concat(t.ProductionPackages, t.ExistingModules, t.ExistingPackages))
	t.PythonDirs = pathfilter.Unique(concat(t.ProductionPackages, t.ExistingModules, t.ExistingPackages, t.ExistingTestPackages))
	return t, nil
}

// Discover runs setuptools discovery at root and resolves its Targets.
func Discover(root string, lists Lists) (*Targets, error) {
	s, err := NewSetuptools(root)
	if err != nil {
		return nil, err
	}
	return Resolve(s.ProjectRoot(), s, lists)
}

// WriteDebug prints the discovery results in the layout of the path.debug task.
func (t *Targets) WriteDebug(w io.Writer) error {
	lines := []struct {
		label string
		value []string
	}{
		{"Setuptools detected packages", t.SetuptoolsPackages},
		{"Root packages", t.ProductionPackages},
		{"Setuptools detected Python modules", t.SetuptoolsModules},
		{"Existing test packages", t.ExistingTestPackages},
		{"Python file or directories to lint", t.PythonDirs},
		{"Python file or directories to lint excluding test packages", t.PythonDirsExcludingTest},
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "%s: %s\n", l.label, formatList(l.value)); err != nil {
			return err
		}
	}
	return nil
}

// formatList renders values as ['a', 'b'].
func formatList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func existingDirs(root string, names []string) []string {
	var out []string
	for _, name := range names {
		if isDir(filepath.Join(root, name)) {
			out = append(out, name)
		}
	}
	return out
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
