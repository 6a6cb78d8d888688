// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCommandFailed is the sentinel error wrapped by CommandFailedError.
var ErrCommandFailed = errors.New("command failed")

type (
	// Result is the captured outcome of one external command.
	// A Result is never modified after the executor returns it.
	Result struct {
		// Command is the literal command string that was invoked.
		Command string
		// ExitCode is the process exit status.
		ExitCode ExitCode
		// Stdout is the captured standard output. With a PTY attached it also
		// contains everything the command wrote to standard error.
		Stdout string
		// Stderr is the captured standard error.
		Stderr string
	}

	// CommandFailedError reports a command that exited with a non-zero status.
	// It wraps ErrCommandFailed for errors.Is() compatibility.
	CommandFailedError struct {
		Result *Result
	}
)

// NewSuccessResult creates a Result for command with exit code 0 and no output.
func NewSuccessResult(command string) *Result {
	return &Result{Command: command}
}

// NewExitCodeResult creates a Result for command with the given exit code.
func NewExitCodeResult(command string, code ExitCode) *Result {
	return &Result{Command: command, ExitCode: code}
}

// OK reports whether the command exited with status 0.
func (r *Result) OK() bool {
	return r.ExitCode.IsSuccess()
}

// Failed reports whether the command exited with a non-zero status.
func (r *Result) Failed() bool {
	return !r.OK()
}

// Error implements the error interface.
func (e *CommandFailedError) Error() string {
	var msg strings.Builder
	msg.WriteString("Encountered a bad command exit code!\n\n")
	fmt.Fprintf(&msg, "Command: '%s'\n\n", e.Result.Command)
	fmt.Fprintf(&msg, "Exit code: %d\n\n", e.Result.ExitCode)
	fmt.Fprintf(&msg, "Stdout:%s\n\n", streamTail(e.Result.Stdout))
	fmt.Fprintf(&msg, "Stderr:%s\n", streamTail(e.Result.Stderr))
	return msg.String()
}

// Unwrap returns ErrCommandFailed.
func (e *CommandFailedError) Unwrap() error { return ErrCommandFailed }

// ExitCode returns the exit code of the failed command.
func (e *CommandFailedError) ExitCode() ExitCode { return e.Result.ExitCode }

// AsCommandFailed returns the CommandFailedError in err's chain, if any.
func AsCommandFailed(err error) (*CommandFailedError, bool) {
	var cfe *CommandFailedError
	if errors.As(err, &cfe) {
		return cfe, true
	}
	return nil, false
}

// streamTail renders the last lines of a captured stream for error messages.
func streamTail(s string) string {
	const maxLines = 10
	s = strings.TrimRight(s, "\r\n")
	if s == "" {
		return " (none)"
	}
	lines := strings.Split(s, "\n")
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	return "\n\n" + strings.Join(lines, "\n")
}
