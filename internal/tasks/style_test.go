// SPDX-License-Identifier: MPL-2.0

package tasks_test

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/yukihiko-shinoda/invoke-lint/internal/capability"
	"github.com/yukihiko-shinoda/invoke-lint/internal/tasks"
)

var (
	styleRuff = []string{
		"docformatter --recursive --in-place " + pythonDirs,
		"ruff format --diff " + pythonDirs,
		"ruff format " + pythonDirs,
		"ruff check --show-fixes " + pythonDirs,
		"ruff check --fix --show-fixes " + pythonDirs,
	}
	styleNoRuff = []string{
		"docformatter --recursive --in-place " + pythonDirs,
		"autoflake --recursive --in-place " + pythonDirs,
		"isort " + pythonDirs,
		"black " + pythonDirs,
		"ruff check --show-fixes " + pythonDirs,
		"ruff check --fix --show-fixes " + pythonDirs,
	}
)

func TestFmt_Commands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts tasks.StyleOptions
		want []string
	}{
		{
			name: "default formats by ruff",
			opts: tasks.StyleOptions{},
			want: styleRuff,
		},
		{
			name: "by ruff",
			opts: tasks.StyleOptions{ByRuff: true},
			want: styleRuff,
		},
		{
			name: "ruff leaves lint warnings",
			opts: tasks.StyleOptions{Ruff: true},
			want: []string{
				"docformatter --recursive --in-place " + pythonDirs,
				"ruff format --diff " + pythonDirs,
				"ruff format " + pythonDirs,
			},
		},
		{
			name: "check",
			opts: tasks.StyleOptions{Check: true},
			want: []string{
				"docformatter --recursive --check " + pythonDirs,
				"ruff format --diff " + pythonDirs,
				"ruff check --show-fixes " + pythonDirs,
			},
		},
		{
			name: "check ignores ruff flag",
			opts: tasks.StyleOptions{Check: true, Ruff: true, ByRuff: true},
			want: []string{
				"docformatter --recursive --check " + pythonDirs,
				"ruff format --diff " + pythonDirs,
				"ruff check --show-fixes " + pythonDirs,
			},
		},
		{
			name: "no ruff",
			opts: tasks.StyleOptions{NoRuff: true},
			want: styleNoRuff,
		},
		{
			name: "no ruff check",
			opts: tasks.StyleOptions{NoRuff: true, Check: true},
			want: []string{
				"docformatter --recursive --check " + pythonDirs,
				"autoflake --recursive --check " + pythonDirs,
				"isort --check-only --diff " + pythonDirs,
				"black --check --diff " + pythonDirs,
				"ruff check --show-fixes " + pythonDirs,
			},
		},
		{
			name: "no ruff with ruff flag skips lint fixes",
			opts: tasks.StyleOptions{NoRuff: true, Ruff: true},
			want: styleNoRuff[:4],
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t)
			results, err := f.tasks.Fmt(f.ctx, tt.opts)
			if err != nil {
				t.Fatalf("Fmt() error: %v", err)
			}
			assertCommands(t, f, results, tt.want)
		})
	}
}

func TestFmt_ConflictingFormatters(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	_, err := f.tasks.Fmt(f.ctx, tasks.StyleOptions{ByRuff: true, NoRuff: true})
	if !errors.Is(err, tasks.ErrConflictingFormatters) {
		t.Fatalf("expected ErrConflictingFormatters, got %v", err)
	}
	if n := len(f.rec.Commands()); n != 0 {
		t.Errorf("no command should run, got %d", n)
	}
}

func TestFmt_NoRuffRequiresFormatters(t *testing.T) {
	t.Parallel()

	f := newFixtureOn(t, "linux", []string{"isort"})
	_, err := f.tasks.Fmt(f.ctx, tasks.StyleOptions{NoRuff: true})
	if !errors.Is(err, capability.ErrToolUnavailable) {
		t.Fatalf("expected ErrToolUnavailable, got %v", err)
	}
	if !strings.Contains(err.Error(), "autoflake, black") {
		t.Errorf("error should name the missing tools, got %q", err)
	}
	if n := len(f.rec.Commands()); n != 0 {
		t.Errorf("no command should run, got %d", n)
	}

	// Ruff formatting needs none of them.
	if _, err := f.tasks.Fmt(f.ctx, tasks.StyleOptions{}); err != nil {
		t.Errorf("Fmt() with ruff should not need formatters, got %v", err)
	}
}

func TestFmt_FormattersAreWarnMode(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.rec.FailPrefix("docformatter", 3).FailPrefix("isort", 1)

	results, err := f.tasks.Fmt(f.ctx, tasks.StyleOptions{NoRuff: true})
	if err != nil {
		t.Fatalf("formatter failures should not stop the task, got %v", err)
	}
	assertCommands(t, f, results, styleNoRuff)
	if results[0].ExitCode != 3 || results[2].ExitCode != 1 {
		t.Errorf("failed formatter results should carry their exit codes, got %d and %d",
			results[0].ExitCode, results[2].ExitCode)
	}
}

func TestFmt_RuffFailureStops(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	failing := "ruff format " + pythonDirs
	f.rec.FailCommand(failing, 2).FailCommand("ruff format --diff "+pythonDirs, 1)

	_, err := f.tasks.Fmt(f.ctx, tasks.StyleOptions{})
	assertCommandFailed(t, err, failing, 2)

	want := styleRuff[:3]
	if got := f.rec.Commands(); !slices.Equal(got, want) {
		t.Errorf("commands run = %q, want %q", got, want)
	}
}

func TestFmt_CheckFailureIsReported(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	failing := "ruff format --diff " + pythonDirs
	f.rec.FailCommand(failing, 1)

	_, err := f.tasks.Fmt(f.ctx, tasks.StyleOptions{Check: true})
	assertCommandFailed(t, err, failing, 1)
}

func TestFmt_UsesContextPTY(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	if _, err := f.tasks.Fmt(f.ctx, tasks.StyleOptions{}); err != nil {
		t.Fatal(err)
	}
	for _, req := range f.rec.Requests() {
		if !req.PTY {
			t.Errorf("%q should run in a PTY", req.Command)
		}
		if req.Dir != f.root {
			t.Errorf("%q ran in %q, want %q", req.Command, req.Dir, f.root)
		}
	}
}

func TestFmt_QuotesTargets(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.tasks.Targets().PythonDirs = []string{"my pkg", "setup.py"}
	results, err := f.tasks.Fmt(f.ctx, tasks.StyleOptions{Ruff: true, Check: true})
	if err != nil {
		t.Fatal(err)
	}
	if got := results[0].Command; got != "docformatter --recursive --check 'my pkg' setup.py" {
		t.Errorf("command = %q", got)
	}
}
