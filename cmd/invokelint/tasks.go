// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/yukihiko-shinoda/invoke-lint/internal/config"
	"github.com/yukihiko-shinoda/invoke-lint/internal/issue"
	"github.com/yukihiko-shinoda/invoke-lint/internal/runner"
	"github.com/yukihiko-shinoda/invoke-lint/internal/tasks"

	"github.com/spf13/cobra"
)

type (
	// taskFunc runs one task of the façade.
	taskFunc func(t *tasks.Tasks, c *runner.Context) ([]*runner.Result, error)

	// taskDef describes a task subcommand.
	taskDef struct {
		name    string
		aliases []string
		short   string
		// bind registers the task flags on cmd and returns the function that runs it.
		bind func(cmd *cobra.Command) taskFunc
	}
)

// noFlags binds a task without options.
func noFlags(run taskFunc) func(*cobra.Command) taskFunc {
	return func(*cobra.Command) taskFunc { return run }
}

// taskDefs lists every task in the order they are listed by --list.
func taskDefs() []taskDef {
	return []taskDef{
		{name: "clean.all", aliases: []string{"clean"}, short: "Remove all build, test, coverage and Python artifacts", bind: noFlags((*tasks.Tasks).CleanAll)},
		{name: "clean.dist", short: "Remove build artifacts", bind: noFlags((*tasks.Tasks).CleanDist)},
		{name: "clean.python", short: "Remove Python file artifacts", bind: noFlags((*tasks.Tasks).CleanPython)},
		{name: "clean.tests", short: "Remove test and coverage artifacts", bind: noFlags((*tasks.Tasks).CleanTests)},
		{name: "dist", short: "Build source and wheel packages", bind: noFlags((*tasks.Tasks).Dist)},
		{name: "lint.fast", aliases: []string{"lint"}, short: "Format and run the fast linters", bind: bindFast},
		{name: "lint.deep", short: "Run the slow linters: mypy, pylint and semgrep", bind: bindDeep((*tasks.Tasks).Deep)},
		{name: "lint.radon", short: "Report cyclomatic complexity and maintainability index", bind: noFlags((*tasks.Tasks).Radon)},
		{name: "lint.radon-cc", short: "Report cyclomatic complexity", bind: noFlags((*tasks.Tasks).RadonCC)},
		{name: "lint.radon-mi", short: "Report maintainability index", bind: noFlags((*tasks.Tasks).RadonMI)},
		{name: "lint.cohesion", short: "Lint class cohesion", bind: noFlags((*tasks.Tasks).Cohesion)},
		{name: "lint.xenon", short: "Check code complexity", bind: noFlags((*tasks.Tasks).Xenon)},
		{name: "lint.ruff", short: "Lint with Ruff", bind: noFlags((*tasks.Tasks).Ruff)},
		{name: "lint.bandit", short: "Scan for common security issues", bind: noFlags((*tasks.Tasks).Bandit)},
		{name: "lint.dodgy", short: "Look for committed secrets and diffs", bind: noFlags((*tasks.Tasks).Dodgy)},
		{name: "lint.flake8", short: "Lint with flake8", bind: noFlags((*tasks.Tasks).Flake8)},
		{name: "lint.pydocstyle", short: "Check docstring conventions", bind: noFlags((*tasks.Tasks).Pydocstyle)},
		{name: "lint.mypy", short: "Type-check with mypy", bind: noFlags((*tasks.Tasks).Mypy)},
		{name: "lint.pylint", short: "Lint with Pylint", bind: noFlags((*tasks.Tasks).Pylint)},
		{name: "lint.semgrep", short: "Scan with Semgrep", bind: bindDeep((*tasks.Tasks).Semgrep)},
		{name: "style.fmt", aliases: []string{"style"}, short: "Format code", bind: bindStyle},
		{name: "test.fast", aliases: []string{"test"}, short: "Run tests not marked slow", bind: noFlags((*tasks.Tasks).TestFast)},
		{name: "test.all", short: "Run all tests", bind: noFlags((*tasks.Tasks).TestAll)},
		{name: "test.coverage", aliases: []string{"test.cov"}, short: "Measure test coverage", bind: bindCoverage},
		{name: "path.debug", aliases: []string{"path"}, short: "Print the detected packages, modules and lint targets", bind: noFlags((*tasks.Tasks).PathDebug)},
	}
}

func bindStyle(cmd *cobra.Command) taskFunc {
	var opts tasks.StyleOptions
	flags := cmd.Flags()
	flags.BoolVar(&opts.Check, "check", false, "report unformatted code without changing files")
	flags.BoolVar(&opts.Ruff, "ruff", false, "leave Ruff lint warnings unfixed")
	flags.BoolVar(&opts.ByRuff, "by-ruff", false, "format with Ruff (default)")
	flags.BoolVar(&opts.NoRuff, "no-ruff", false, "format with autoflake, isort and black instead of Ruff")
	return func(t *tasks.Tasks, c *runner.Context) ([]*runner.Result, error) {
		return t.Fmt(c, opts)
	}
}

func bindFast(cmd *cobra.Command) taskFunc {
	var opts tasks.FastOptions
	flags := cmd.Flags()
	flags.BoolVar(&opts.SkipFormat, "skip-format", false, "lint without formatting first")
	flags.BoolVar(&opts.Ruff, "ruff", false, "leave Ruff lint warnings unfixed while formatting")
	flags.BoolVar(&opts.ByRuff, "by-ruff", false, "format with Ruff (default)")
	flags.BoolVar(&opts.NoRuff, "no-ruff", false, "format with autoflake, isort and black instead of Ruff")
	return func(t *tasks.Tasks, c *runner.Context) ([]*runner.Result, error) {
		return t.Fast(c, opts)
	}
}

func bindDeep(run func(*tasks.Tasks, *runner.Context, tasks.DeepOptions) ([]*runner.Result, error)) func(*cobra.Command) taskFunc {
	return func(cmd *cobra.Command) taskFunc {
		var opts tasks.DeepOptions
		cmd.Flags().BoolVar(&opts.CI, "ci", false, "run semgrep in CI mode")
		return func(t *tasks.Tasks, c *runner.Context) ([]*runner.Result, error) {
			return run(t, c, opts)
		}
	}
}

func bindCoverage(cmd *cobra.Command) taskFunc {
	var opts tasks.CoverageOptions
	flags := cmd.Flags()
	flags.BoolVar(&opts.All, "all", false, "measure every non-test target, not only the packages")
	flags.BoolVar(&opts.Publish, "publish", false, "upload the result with coveralls")
	flags.BoolVar(&opts.XML, "xml", false, "write coverage.xml")
	flags.BoolVar(&opts.HTML, "html", false, "write htmlcov/ and open it in the browser")
	return func(t *tasks.Tasks, c *runner.Context) ([]*runner.Result, error) {
		return t.Coverage(c, opts)
	}
}

// newTaskCommand creates the subcommand of def. It runs the task in a new session.
func newTaskCommand(app *App, global *globalOptions, def taskDef) *cobra.Command {
	cmd := &cobra.Command{
		Use:     def.name,
		Aliases: def.aliases,
		Short:   def.short,
		Args:    cobra.NoArgs,
		GroupID: taskGroupID,
	}
	run := def.bind(cmd)
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return app.runTask(cmd, global, run)
	}
	return cmd
}

// runTask executes run and prints the success summary. Failures are rendered
// with their issue help and returned as *ExitError.
func (a *App) runTask(cmd *cobra.Command, global *globalOptions, run taskFunc) error {
	s, err := a.newSession(cmd.Context(), global)
	if err != nil {
		return a.fail(cmd, err, global.verbose, config.ColorSchemeAuto.String())
	}

	s.logger.Debug("running task", "task", cmd.Name(), "targets", s.targets.PythonDirs)
	results, err := run(s.tasks, s.ctx)
	if err != nil {
		return a.fail(cmd, err, global.verbose || s.cfg.UI.Verbose, s.cfg.UI.ColorScheme.String())
	}

	if n := countCommands(results); n > 0 {
		fmt.Fprintln(a.stdout, SuccessStyle.Render(fmt.Sprintf("%d commands succeeded", n)))
	}
	return nil
}

// fail renders err and converts it to an *ExitError carrying the exit code.
func (a *App) fail(cmd *cobra.Command, err error, verbose bool, style string) error {
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	issueID, styled := classifyError(err, verbose)
	if help := issue.Get(issueID); help != nil {
		rendered, renderErr := help.Render(style)
		if renderErr != nil {
			renderErr = issue.WrapWithContext(renderErr, "render help", fmt.Sprintf("issue %d", issueID))
			fmt.Fprintln(a.stderr, WarningStyle.Render(renderErr.Error()))
		} else {
			fmt.Fprint(a.stderr, rendered)
		}
	}
	fmt.Fprint(a.stderr, styled)
	return &ExitError{Code: exitCodeOf(err), Err: err}
}

// countCommands counts the results of commands that were actually run.
func countCommands(results []*runner.Result) int {
	n := 0
	for _, r := range results {
		if r.Command != "" {
			n++
		}
	}
	return n
}

// listTasks writes every task name with its aliases.
func listTasks(app *App) {
	defs := taskDefs()
	width := 0
	for _, def := range defs {
		width = max(width, len(def.name))
	}
	fmt.Fprintln(app.stdout, TitleStyle.Render("Available tasks:"))
	for _, def := range defs {
		line := "  " + CmdStyle.Render(def.name+strings.Repeat(" ", width-len(def.name))) + "  " + def.short
		if len(def.aliases) > 0 {
			line += SubtitleStyle.Render(" (alias: " + strings.Join(def.aliases, ", ") + ")")
		}
		fmt.Fprintln(app.stdout, line)
	}
}
