// SPDX-License-Identifier: MPL-2.0

package tasks

import (
	"strings"

	"github.com/yukihiko-shinoda/invoke-lint/internal/runner"
)

type (
	// FastOptions are the flags of lint.fast.
	FastOptions struct {
		// SkipFormat lints without running style.fmt first.
		SkipFormat bool
		// Ruff, ByRuff and NoRuff are forwarded to style.fmt.
		Ruff   bool
		ByRuff bool
		NoRuff bool
	}

	// DeepOptions are the flags of lint.deep and lint.semgrep.
	DeepOptions struct {
		// CI runs semgrep in CI mode.
		CI bool
	}
)

// RadonCC reports cyclomatic complexity.
func (t *Tasks) RadonCC(c *runner.Context) ([]*runner.Result, error) {
	return runner.Single(c.Run("radon cc "+t.pythonDirs(), runner.PTY(false)))
}

// RadonMI reports the maintainability index.
func (t *Tasks) RadonMI(c *runner.Context) ([]*runner.Result, error) {
	return runner.Single(c.Run("radon mi "+t.pythonDirs(), runner.PTY(false)))
}

// Radon reports both complexity and maintainability, best-effort.
func (t *Tasks) Radon(c *runner.Context) ([]*runner.Result, error) {
	return runner.RunAll(c, []runner.Step{t.RadonCC, t.RadonMI})
}

// Cohesion lints class cohesion. Cohesion honours only the last --directory
// option, so it runs once per target.
func (t *Tasks) Cohesion(c *runner.Context) ([]*runner.Result, error) {
	steps := make([]runner.StepWith[struct{}], len(t.targets.PythonDirs))
	for i, dir := range t.targets.PythonDirs {
		steps[i] = runner.Ignore[struct{}](step("cohesion --directory " + runner.Quote(dir)))
	}
	return runner.RunInOrder(c, steps, struct{}{})
}

// Xenon fails when any block, module or the average exceeds the configured grade.
func (t *Tasks) Xenon(c *runner.Context) ([]*runner.Result, error) {
	grade := t.lint.XenonMax
	return t.runTargets(c, []string{
		"xenon", "--max-absolute", grade, "--max-modules", grade, "--max-average", grade,
	}, false)
}

// Ruff lints with Ruff without applying fixes.
func (t *Tasks) Ruff(c *runner.Context) ([]*runner.Result, error) {
	return t.ruffCheck(c, false, false, false)
}

// Bandit scans for common security issues using the pyproject.toml settings.
func (t *Tasks) Bandit(c *runner.Context) ([]*runner.Result, error) {
	return t.runTargets(c, []string{"bandit", "--configfile", "pyproject.toml", "--recursive"}, false)
}

// Dodgy looks for committed secrets and diffs. It scans the working directory.
func (t *Tasks) Dodgy(c *runner.Context) ([]*runner.Result, error) {
	command := "dodgy"
	if len(t.lint.DodgyIgnorePaths) > 0 {
		command += " --ignore-paths " + runner.JoinQuoted(t.lint.DodgyIgnorePaths)
	}
	return runner.Single(c.Run(command))
}

// Flake8 lints with flake8 including closures in radon complexity.
func (t *Tasks) Flake8(c *runner.Context) ([]*runner.Result, error) {
	return t.runTargets(c, []string{"flake8", "--radon-show-closures"}, false)
}

// Pydocstyle checks docstring conventions.
func (t *Tasks) Pydocstyle(c *runner.Context) ([]*runner.Result, error) {
	return t.runTargets(c, []string{"pydocstyle"}, false)
}

// Mypy type-checks the targets.
func (t *Tasks) Mypy(c *runner.Context) ([]*runner.Result, error) {
	return t.runTargets(c, []string{"mypy"}, false)
}

// Pylint lints with Pylint.
func (t *Tasks) Pylint(c *runner.Context) ([]*runner.Result, error) {
	return t.runTargets(c, []string{"pylint"}, false)
}

// Semgrep scans with the open-source Semgrep registry rules, restricted to the targets.
func (t *Tasks) Semgrep(c *runner.Context, opts DeepOptions) ([]*runner.Result, error) {
	mode := "scan"
	if opts.CI {
		mode = "ci"
	}
	includes := make([]string, len(t.targets.PythonDirs))
	for i, dir := range t.targets.PythonDirs {
		includes[i] = "--include " + runner.Quote(dir)
	}
	command := "semgrep " + mode + " --oss-only --config auto " + strings.Join(includes, " ")
	return runner.Single(c.Run(command))
}

// Fast formats the code (unless SkipFormat) and then runs xenon, ruff,
// bandit, dodgy, flake8 and pydocstyle, stopping at the first failure.
func (t *Tasks) Fast(c *runner.Context, opts FastOptions) ([]*runner.Result, error) {
	var steps []runner.StepWith[FastOptions]
	if !opts.SkipFormat {
		style := StyleOptions{Ruff: opts.Ruff, ByRuff: opts.ByRuff, NoRuff: opts.NoRuff}
		steps = append(steps, runner.Ignore[FastOptions](runner.Bind(t.Fmt, style)))
	}
	steps = append(steps,
		runner.Ignore[FastOptions](t.Xenon),
		runner.Ignore[FastOptions](t.Ruff),
		runner.Ignore[FastOptions](t.Bandit),
		runner.Ignore[FastOptions](t.Dodgy),
		runner.Ignore[FastOptions](t.Flake8),
		runner.Ignore[FastOptions](t.Pydocstyle),
	)
	return runner.RunInOrder(c, steps, opts)
}

// Deep runs mypy, Pylint and, except on Windows, Semgrep.
func (t *Tasks) Deep(c *runner.Context, opts DeepOptions) ([]*runner.Result, error) {
	steps := []runner.StepWith[DeepOptions]{
		runner.Ignore[DeepOptions](t.Mypy),
		runner.Ignore[DeepOptions](t.Pylint),
	}
	if !t.caps.IsWindows() {
		steps = append(steps, t.Semgrep)
	} else {
		c.Logger().Debug("skipping semgrep on windows")
	}
	return runner.RunInOrder(c, steps, opts)
}
