// SPDX-License-Identifier: MPL-2.0

package tasks

import (
	"strings"

	"github.com/yukihiko-shinoda/invoke-lint/internal/runner"
)

// ruffCheck runs "ruff check" over every target. style and lint share it.
func (t *Tasks) ruffCheck(c *runner.Context, fix, showFixes, warn bool) ([]*runner.Result, error) {
	args := []string{"ruff", "check"}
	if fix {
		args = append(args, "--fix")
	}
	if showFixes {
		args = append(args, "--show-fixes")
	}
	return t.runTargets(c, args, warn)
}

// ruffFormat runs "ruff format" over every target.
func (t *Tasks) ruffFormat(c *runner.Context, diff, warn bool) ([]*runner.Result, error) {
	args := []string{"ruff", "format"}
	if diff {
		args = append(args, "--diff")
	}
	return t.runTargets(c, args, warn)
}

// runTargets runs args followed by the lint targets. With warn a non-zero
// exit is returned as a Result.
func (t *Tasks) runTargets(c *runner.Context, args []string, warn bool) ([]*runner.Result, error) {
	command := strings.Join(args, " ") + " " + t.pythonDirs()
	if warn {
		return runner.Single(c.Run(command, runner.Warn()))
	}
	return runner.Single(c.Run(command))
}
