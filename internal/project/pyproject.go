// SPDX-License-Identifier: MPL-2.0

package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// PyprojectFileName is the project metadata file read by discovery.
const PyprojectFileName = "pyproject.toml"

// ErrInvalidPyproject is the sentinel error wrapped by pyproject parse failures.
var ErrInvalidPyproject = errors.New("invalid pyproject.toml")

type (
	pyproject struct {
		Project struct {
			Name string `toml:"name"`
		} `toml:"project"`
		Tool struct {
			Setuptools setuptoolsTable `toml:"setuptools"`
		} `toml:"tool"`
	}

	setuptoolsTable struct {
		// Packages is either a list of package names or a table holding "find".
		Packages   any               `toml:"packages"`
		PyModules  []string          `toml:"py-modules"`
		PackageDir map[string]string `toml:"package-dir"`
	}

	// findConfig mirrors [tool.setuptools.packages.find].
	findConfig struct {
		Where      []string
		Include    []string
		Exclude    []string
		Namespaces bool
	}
)

// readPyproject loads root/pyproject.toml. A missing file yields (nil, nil).
func readPyproject(root string) (*pyproject, error) {
	path := filepath.Join(root, PyprojectFileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var p pyproject
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidPyproject, path, err)
	}
	return &p, nil
}

// declaredPackages returns the explicit package list, or ok=false when packages
// is absent or configured through "find".
func (t *setuptoolsTable) declaredPackages() (names []string, ok bool, err error) {
	list, isList := t.Packages.([]any)
	if !isList {
		return nil, false, nil
	}
	for i, v := range list {
		s, isString := v.(string)
		if !isString {
			return nil, false, fmt.Errorf("%w: tool.setuptools.packages[%d] must be a string", ErrInvalidPyproject, i)
		}
		names = append(names, s)
	}
	return names, true, nil
}

// find returns the [tool.setuptools.packages.find] table, or nil when absent.
func (t *setuptoolsTable) find() (*findConfig, error) {
	table, isTable := t.Packages.(map[string]any)
	if !isTable {
		return nil, nil
	}
	raw, ok := table["find"].(map[string]any)
	if !ok {
		return nil, nil
	}

	cfg := &findConfig{Where: []string{"."}, Include: []string{"*"}, Namespaces: true}
	var err error
	if cfg.Where, err = stringList(raw, "where", cfg.Where); err != nil {
		return nil, err
	}
	if cfg.Include, err = stringList(raw, "include", cfg.Include); err != nil {
		return nil, err
	}
	if cfg.Exclude, err = stringList(raw, "exclude", nil); err != nil {
		return nil, err
	}
	if v, ok := raw["namespaces"]; ok {
		b, isBool := v.(bool)
		if !isBool {
			return nil, fmt.Errorf("%w: tool.setuptools.packages.find.namespaces must be a boolean", ErrInvalidPyproject)
		}
		cfg.Namespaces = b
	}
	return cfg, nil
}

func stringList(table map[string]any, key string, fallback []string) ([]string, error) {
	v, ok := table[key]
	if !ok {
		return fallback, nil
	}
	list, isList := v.([]any)
	if !isList {
		return nil, fmt.Errorf("%w: tool.setuptools.packages.find.%s must be a list", ErrInvalidPyproject, key)
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, isString := item.(string)
		if !isString {
			return nil, fmt.Errorf("%w: tool.setuptools.packages.find.%s must contain strings", ErrInvalidPyproject, key)
		}
		out = append(out, s)
	}
	return out, nil
}
