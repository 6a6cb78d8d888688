// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	// maxExitCode is the largest status a POSIX process can report.
	maxExitCode ExitCode = 255
	// fallbackExitCode is reported for statuses outside 0-255.
	fallbackExitCode ExitCode = 1
)

// ErrInvalidExitCode is the sentinel error wrapped by InvalidExitCodeError.
var ErrInvalidExitCode = errors.New("invalid exit code")

type (
	// ExitCode is the status of a finished command. Zero means success.
	ExitCode int

	// InvalidExitCodeError reports an ExitCode that cannot be passed to os.Exit
	// portably, such as a Windows NTSTATUS value.
	InvalidExitCodeError struct {
		Value ExitCode
	}
)

func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("exit code %d is outside 0-%d", e.Value, maxExitCode)
}

// Unwrap returns ErrInvalidExitCode.
func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// Validate returns an *InvalidExitCodeError when c is outside 0-255.
func (c ExitCode) Validate() error {
	if c < 0 || c > maxExitCode {
		return &InvalidExitCodeError{Value: c}
	}
	return nil
}

// Portable returns c when it is a valid process status and 1 otherwise.
func (c ExitCode) Portable() ExitCode {
	if c.Validate() != nil {
		return fallbackExitCode
	}
	return c
}

// IsSuccess reports whether c is zero.
func (c ExitCode) IsSuccess() bool { return c == 0 }

func (c ExitCode) String() string { return strconv.Itoa(int(c)) }
