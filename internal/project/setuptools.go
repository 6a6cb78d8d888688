// SPDX-License-Identifier: MPL-2.0

package project

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"unicode"

	"github.com/yukihiko-shinoda/invoke-lint/internal/pathfilter"
)

const (
	initFile = "__init__.py"
	srcDir   = "src"
)

var (
	// flatLayoutExcludedPackages are top-level directories never auto-discovered
	// as packages in a flat layout.
	flatLayoutExcludedPackages = []string{
		"ci", "bin", "debian", "doc", "docs", "documentation", "manpages",
		"news", "newsfragments", "changelog",
		"test", "tests", "unit_test", "unit_tests",
		"example", "examples", "scripts", "tools", "util", "utils", "python",
		"build", "dist", "venv", "env", "requirements",
		"tasks", "fabfile", "site_scons",
		"benchmark", "benchmarks", "exercise", "exercises", "htmlcov",
	}

	// flatLayoutExcludedModules are top-level modules never auto-discovered in a flat layout.
	flatLayoutExcludedModules = []string{
		"setup", "conftest", "test", "tests", "example", "examples", "build",
		"toxfile", "noxfile", "pavement", "dodo", "tasks", "fabfile",
		"conanfile", "manage",
	}
)

type (
	// Discoverer lists the declared or discovered source locations of a project.
	Discoverer interface {
		// TopLevelPackages returns every package name (dotted, subpackages included).
		TopLevelPackages() ([]string, error)
		// PythonModules returns the project modules followed by each candidate
		// module name that exists as a file in the project root.
		PythonModules(candidates []string) ([]string, error)
	}

	// Setuptools discovers packages the way setuptools configuration discovery does.
	Setuptools struct {
		root       string
		packageDir string
		packages   []string
		modules    []string
	}
)

// NewSetuptools runs discovery for the project rooted at root.
func NewSetuptools(root string) (*Setuptools, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(absRoot); err == nil {
		absRoot = resolved
	}

	cfg, err := readPyproject(absRoot)
	if err != nil {
		return nil, err
	}

	s := &Setuptools{root: absRoot}
	if err := s.discover(cfg); err != nil {
		return nil, err
	}
	return s, nil
}

// ProjectRoot returns the absolute, symlink-resolved project root.
func (s *Setuptools) ProjectRoot() string { return s.root }

// PackageDir returns the directory, relative to the project root, that package
// names are rooted in. It is empty for flat layouts.
func (s *Setuptools) PackageDir() string { return s.packageDir }

// TopLevelPackages returns every discovered package in sorted order.
func (s *Setuptools) TopLevelPackages() ([]string, error) {
	return slices.Clone(s.packages), nil
}

// PythonModules returns the declared or discovered modules followed by the
// candidates that exist as <name>.py in the project root.
func (s *Setuptools) PythonModules(candidates []string) ([]string, error) {
	out := slices.Clone(s.modules)
	for _, name := range candidates {
		if isFile(filepath.Join(s.root, name+".py")) {
			out = append(out, name)
		}
	}
	return pathfilter.Unique(out), nil
}

func (s *Setuptools) discover(cfg *pyproject) error {
	var table *setuptoolsTable
	if cfg != nil {
		table = &cfg.Tool.Setuptools
		s.packageDir = filepath.FromSlash(table.PackageDir[""])
	}

	if table != nil {
		declared, ok, err := table.declaredPackages()
		if err != nil {
			return err
		}
		if ok {
			s.packages = declared
			s.modules = table.PyModules
			return nil
		}

		find, err := table.find()
		if err != nil {
			return err
		}
		if find != nil {
			s.packages, err = s.findPackages(find)
			s.modules = table.PyModules
			return err
		}

		if table.PyModules != nil {
			s.modules = table.PyModules
			return nil
		}
	}

	return s.autoDiscover()
}

// autoDiscover applies src-layout discovery when src/ exists, flat layout otherwise.
func (s *Setuptools) autoDiscover() error {
	base := s.packageDir
	if base == "" && isDir(filepath.Join(s.root, srcDir)) {
		base = srcDir
		s.packageDir = srcDir
	}

	if base != "" {
		packages, err := walkPackages(filepath.Join(s.root, base), "", false)
		if err != nil {
			return err
		}
		slices.Sort(packages)
		s.packages = packages
		return nil
	}

	packages, err := s.flatPackages()
	if err != nil {
		return err
	}
	s.packages = packages
	if len(packages) == 0 {
		s.modules, err = s.flatModules()
	}
	return err
}

func (s *Setuptools) flatPackages() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to list project root: %w", err)
	}

	var packages []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || excludedName(name, flatLayoutExcludedPackages) || !isIdentifier(name) {
			continue
		}
		dir := filepath.Join(s.root, name)
		if !isFile(filepath.Join(dir, initFile)) {
			continue
		}
		sub, err := walkPackages(dir, name, false)
		if err != nil {
			return nil, err
		}
		packages = append(packages, name)
		packages = append(packages, sub...)
	}
	slices.Sort(packages)
	return packages, nil
}

func (s *Setuptools) flatModules() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to list project root: %w", err)
	}

	var modules []string
	for _, entry := range entries {
		name, ok := strings.CutSuffix(entry.Name(), ".py")
		if entry.IsDir() || !ok || excludedName(name, flatLayoutExcludedModules) || !isIdentifier(name) {
			continue
		}
		modules = append(modules, name)
	}
	slices.Sort(modules)
	return modules, nil
}

func (s *Setuptools) findPackages(cfg *findConfig) ([]string, error) {
	var packages []string
	for _, where := range cfg.Where {
		found, err := walkPackages(filepath.Join(s.root, filepath.FromSlash(where)), "", cfg.Namespaces)
		if err != nil {
			return nil, err
		}
		for _, name := range found {
			if matchesAny(name, cfg.Include) && !matchesAny(name, cfg.Exclude) {
				packages = append(packages, name)
			}
		}
	}
	if len(cfg.Where) == 1 && cfg.Where[0] != "." && s.packageDir == "" {
		s.packageDir = filepath.FromSlash(cfg.Where[0])
	}
	slices.Sort(packages)
	return pathfilter.Unique(packages), nil
}

// walkPackages lists the packages below dir, named relative to prefix.
// Without namespaces a directory is a package only if it holds __init__.py,
// and discovery does not descend into directories that are not packages.
func walkPackages(dir, prefix string, namespaces bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var packages []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || !isIdentifier(name) {
			continue
		}
		child := filepath.Join(dir, name)
		qualified := name
		if prefix != "" {
			qualified = prefix + "." + name
		}

		isPackage := isFile(filepath.Join(child, initFile))
		if !isPackage && namespaces {
			isPackage = containsPython(child)
		}
		if !isPackage {
			continue
		}

		packages = append(packages, qualified)
		sub, err := walkPackages(child, qualified, namespaces)
		if err != nil {
			return nil, err
		}
		packages = append(packages, sub...)
	}
	return packages, nil
}

func containsPython(dir string) bool {
	found := false
	_ = filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil || found {
			return filepath.SkipDir
		}
		if !d.IsDir() && strings.HasSuffix(p, ".py") {
			found = true
			return filepath.SkipAll
		}
		return nil
	})
	return found
}

func excludedName(name string, excluded []string) bool {
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
		return true
	}
	return slices.Contains(excluded, name)
}

func matchesAny(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := path.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

// isIdentifier reports whether name is a valid Python identifier.
func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
