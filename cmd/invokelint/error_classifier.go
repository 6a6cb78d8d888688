// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/yukihiko-shinoda/invoke-lint/internal/capability"
	"github.com/yukihiko-shinoda/invoke-lint/internal/config"
	"github.com/yukihiko-shinoda/invoke-lint/internal/issue"
	"github.com/yukihiko-shinoda/invoke-lint/internal/project"
	"github.com/yukihiko-shinoda/invoke-lint/internal/runner"
	"github.com/yukihiko-shinoda/invoke-lint/internal/tasks"
)

var (
	// errConfigLoad marks failures to load the configuration.
	errConfigLoad = errors.New("load configuration")
	// errProjectDiscovery marks failures to detect the project layout.
	errProjectDiscovery = errors.New("detect project layout")
)

// classifyError maps a task or setup failure to an issue catalog ID and
// returns a styled message for CLI rendering. The zero Id means no help page
// applies.
func classifyError(err error, verbose bool) (issueID issue.Id, styledMsg string) {
	switch {
	case errors.Is(err, runner.ErrCommandFailed):
		issueID = issue.CommandFailedId
	case errors.Is(err, capability.ErrToolUnavailable):
		issueID = issue.ToolUnavailableId
	case errors.Is(err, tasks.ErrConflictingFormatters):
		issueID = issue.ConflictingFormattersId
	case errors.Is(err, errConfigLoad), errors.Is(err, config.ErrInvalidConfig):
		issueID = issue.ConfigLoadFailedId
	case errors.Is(err, runner.ErrNoShell):
		issueID = issue.ShellNotFoundId
	case errors.Is(err, errProjectDiscovery), errors.Is(err, project.ErrInvalidPyproject):
		issueID = issue.ProjectDiscoveryFailedId
	}

	return issueID, fmt.Sprintf("\n%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, verbose))
}

// exitCodeOf returns the exit code of the first failed command in err, or 1.
// Codes that os.Exit cannot report portably also become 1.
func exitCodeOf(err error) runner.ExitCode {
	if failed, ok := runner.AsCommandFailed(err); ok && failed.ExitCode() != 0 {
		return failed.ExitCode().Portable()
	}
	return 1
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
