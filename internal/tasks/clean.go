// SPDX-License-Identifier: MPL-2.0

package tasks

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/yukihiko-shinoda/invoke-lint/internal/runner"
)

const (
	coverageFile = ".coverage"
	coverageDir  = "htmlcov"
)

// CleanDist removes build artifacts. Every command runs even if one fails.
func (t *Tasks) CleanDist(c *runner.Context) ([]*runner.Result, error) {
	return runner.RunAll(c, []runner.Step{
		step("rm -fr build/"),
		step("rm -fr dist/"),
		step("rm -fr .eggs/"),
		step("find . -name '*.egg-info' -exec rm -fr {} +"),
		step("find . -name '*.egg' -not -path '*/.venv/*' -exec rm -f {} +"),
	})
}

// CleanPython removes compiled Python files, editor backups and caches.
func (t *Tasks) CleanPython(c *runner.Context) ([]*runner.Result, error) {
	return runner.RunAll(c, []runner.Step{
		step("find . -name '*.pyc' -exec rm -f {} +"),
		step("find . -name '*.pyo' -exec rm -f {} +"),
		step("find . -name '*~' -exec rm -f {} +"),
		step("find . -name '__pycache__' -exec rm -fr {} +"),
	})
}

// CleanTests removes the coverage data file and the HTML report without
// running a command. Missing files are not an error.
func (t *Tasks) CleanTests(c *runner.Context) ([]*runner.Result, error) {
	root := t.root(c)
	if err := os.Remove(filepath.Join(root, coverageFile)); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("remove %s: %w", coverageFile, err)
	}
	if err := os.RemoveAll(filepath.Join(root, coverageDir)); err != nil {
		return nil, fmt.Errorf("remove %s: %w", coverageDir, err)
	}
	c.Logger().Debug("removed test artifacts", "dir", root)
	return []*runner.Result{runner.NewSuccessResult("")}, nil
}

// CleanAll runs every clean task, best-effort.
func (t *Tasks) CleanAll(c *runner.Context) ([]*runner.Result, error) {
	return runner.RunAll(c, []runner.Step{t.CleanDist, t.CleanPython, t.CleanTests})
}
