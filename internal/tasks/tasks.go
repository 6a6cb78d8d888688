// SPDX-License-Identifier: MPL-2.0

package tasks

import (
	"errors"

	"github.com/yukihiko-shinoda/invoke-lint/internal/capability"
	"github.com/yukihiko-shinoda/invoke-lint/internal/project"
	"github.com/yukihiko-shinoda/invoke-lint/internal/runner"

	"github.com/pkg/browser"
)

// FormatterTools are the tools style.fmt --no-ruff needs instead of Ruff.
var FormatterTools = []string{"autoflake", "isort", "black"}

// ErrConflictingFormatters is returned when Ruff is both requested and disabled.
var ErrConflictingFormatters = errors.New("cannot use both '--by-ruff' and '--no-ruff' options together")

type (
	// Tasks runs the task catalogue against the targets of one project.
	Tasks struct {
		targets     *project.Targets
		caps        capability.Set
		lint        LintSettings
		openBrowser BrowserOpener
	}

	// LintSettings are the project-specific linter arguments.
	LintSettings struct {
		// DodgyIgnorePaths are passed to dodgy --ignore-paths.
		DodgyIgnorePaths []string
		// XenonMax is the grade used for all three xenon thresholds.
		XenonMax string
	}

	// BrowserOpener opens url in the user's browser.
	BrowserOpener func(url string) error

	// Option configures Tasks.
	Option func(*Tasks)
)

// DefaultLintSettings returns the settings used when no configuration is given.
func DefaultLintSettings() LintSettings {
	return LintSettings{DodgyIgnorePaths: []string{"csvinput"}, XenonMax: "A"}
}

// New creates Tasks for targets. caps decides which optional tools and
// platform-specific steps are used.
func New(targets *project.Targets, caps capability.Set, opts ...Option) *Tasks {
	t := &Tasks{
		targets:     targets,
		caps:        caps,
		lint:        DefaultLintSettings(),
		openBrowser: browser.OpenURL,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// WithLintSettings overrides the linter arguments.
func WithLintSettings(s LintSettings) Option {
	return func(t *Tasks) {
		if s.XenonMax == "" {
			s.XenonMax = DefaultLintSettings().XenonMax
		}
		t.lint = s
	}
}

// WithBrowserOpener replaces the function used to open HTML reports.
func WithBrowserOpener(open BrowserOpener) Option {
	return func(t *Tasks) {
		if open != nil {
			t.openBrowser = open
		}
	}
}

// Targets returns the project targets the tasks operate on.
func (t *Tasks) Targets() *project.Targets { return t.targets }

// pythonDirs is every lint target, shell-quoted and space-separated.
func (t *Tasks) pythonDirs() string {
	return runner.JoinQuoted(t.targets.PythonDirs)
}

// root is the directory clean and report paths are resolved against.
func (t *Tasks) root(c *runner.Context) string {
	if c.Dir() != "" {
		return c.Dir()
	}
	return t.targets.Root
}

// step adapts a single-command call to a Step.
func step(command string, opts ...runner.RunOption) runner.Step {
	return func(c *runner.Context) ([]*runner.Result, error) {
		return runner.Single(c.Run(command, opts...))
	}
}
