// SPDX-License-Identifier: MPL-2.0

// Package capability answers, once per process, which platform the tasks run on
// and which external tools can be found.
package capability

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"slices"
	"strings"
)

// Windows is the GOOS value for Windows hosts.
const Windows = "windows"

// ErrToolUnavailable is the sentinel error wrapped by ToolUnavailableError.
var ErrToolUnavailable = errors.New("required tool not installed")

type (
	// LookPathFunc resolves a tool name to an executable path.
	LookPathFunc func(name string) (string, error)

	// Set is an immutable snapshot of platform and tool availability.
	Set struct {
		goos  string
		tools map[string]bool
	}

	// ToolUnavailableError lists the tools a task needs but could not find.
	ToolUnavailableError struct {
		Tools []string
	}
)

// Probe looks each name up once with lookPath (exec.LookPath when nil).
func Probe(goos string, lookPath LookPathFunc, names ...string) Set {
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	if goos == "" {
		goos = runtime.GOOS
	}
	tools := make(map[string]bool, len(names))
	for _, name := range names {
		_, err := lookPath(name)
		tools[name] = err == nil
	}
	return Set{goos: goos, tools: tools}
}

// Static returns a Set with the given tools reported as available.
func Static(goos string, available ...string) Set {
	tools := make(map[string]bool, len(available))
	for _, name := range available {
		tools[name] = true
	}
	return Set{goos: goos, tools: tools}
}

// GOOS returns the platform the Set describes.
func (s Set) GOOS() string { return s.goos }

// IsWindows reports whether the platform is Windows.
func (s Set) IsWindows() bool { return s.goos == Windows }

// Has reports whether name was found.
func (s Set) Has(name string) bool { return s.tools[name] }

// Require returns a *ToolUnavailableError naming every tool in names that is missing.
func (s Set) Require(names ...string) error {
	var missing []string
	for _, name := range names {
		if !s.Has(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &ToolUnavailableError{Tools: missing}
}

// Available returns the names of the tools that were found, sorted.
func (s Set) Available() []string {
	var out []string
	for name, ok := range s.tools {
		if ok {
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out
}

// Error implements the error interface.
func (e *ToolUnavailableError) Error() string {
	return fmt.Sprintf("required tools not installed: %s", strings.Join(e.Tools, ", "))
}

// Unwrap returns ErrToolUnavailable.
func (e *ToolUnavailableError) Unwrap() error { return ErrToolUnavailable }
