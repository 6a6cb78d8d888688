// SPDX-License-Identifier: MPL-2.0

package tasks

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/yukihiko-shinoda/invoke-lint/internal/runner"
)

// CoverageOptions are the flags of test.coverage.
type CoverageOptions struct {
	// All measures every non-test target instead of the production packages only.
	All bool
	// Publish uploads the result with coveralls and skips local reports.
	Publish bool
	// XML writes coverage.xml.
	XML bool
	// HTML writes htmlcov/ and opens it in the browser.
	HTML bool
}

// TestFast runs the tests not marked slow. The marker expression is double
// quoted because cmd.exe does not treat single quotes as quoting.
func (t *Tasks) TestFast(c *runner.Context) ([]*runner.Result, error) {
	return runner.Single(c.Run(`pytest -m "not slow" -vv`))
}

// TestAll runs every test.
func (t *Tasks) TestAll(c *runner.Context) ([]*runner.Result, error) {
	return runner.Single(c.Run("pytest -vv"))
}

// CoverageRunCommand builds the "coverage run" command. Sources are the file
// stems of the targets, comma-joined.
func (t *Tasks) CoverageRunCommand(all bool) string {
	targets := t.targets.ProductionPackages
	if all {
		targets = t.targets.PythonDirsExcludingTest
	}
	stems := make([]string, len(targets))
	for i, target := range targets {
		base := filepath.Base(target)
		stems[i] = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return "coverage run --source " + runner.Quote(strings.Join(stems, ",")) + " -m pytest"
}

// Coverage runs the tests under coverage and reports the result. The result
// of the test run itself is not returned; a failing run still stops the task.
func (t *Tasks) Coverage(c *runner.Context, opts CoverageOptions) ([]*runner.Result, error) {
	if _, err := c.Run(t.CoverageRunCommand(opts.All)); err != nil {
		return nil, err
	}

	steps := []runner.StepWith[CoverageOptions]{runner.Ignore[CoverageOptions](step("coverage report --show-missing"))}
	if opts.Publish {
		steps = append(steps, runner.Ignore[CoverageOptions](step("coveralls")))
	} else {
		if opts.XML {
			steps = append(steps, runner.Ignore[CoverageOptions](step("coverage xml")))
		}
		if opts.HTML {
			steps = append(steps,
				runner.Ignore[CoverageOptions](step("coverage html")),
				runner.Ignore[CoverageOptions](t.openReport),
			)
		}
	}
	return runner.RunInOrder(c, steps, opts)
}

// openReport opens htmlcov/index.html. Failing to open a browser is logged only.
func (t *Tasks) openReport(c *runner.Context) ([]*runner.Result, error) {
	index, err := filepath.Abs(filepath.Join(t.root(c), coverageDir, "index.html"))
	if err != nil {
		c.Logger().Warn("cannot resolve coverage report", "err", err)
		return nil, nil
	}
	uri := fileURI(index)
	if err := t.openBrowser(uri); err != nil {
		c.Logger().Warn("cannot open coverage report in browser", "url", uri, "err", err)
	}
	return nil, nil
}

// fileURI converts an absolute path to a file:// URL, including Windows drive paths.
func fileURI(path string) string {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}
