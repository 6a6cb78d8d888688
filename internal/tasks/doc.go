// SPDX-License-Identifier: MPL-2.0

// Package tasks implements the lint, format, test, clean and build tasks of a
// Python project on top of package runner.
//
// Every task takes a *runner.Context and returns the Results of the commands
// it ran. Sequences stop at the first failure unless documented as
// best-effort, in which case every step runs and the first Command Failure is
// returned afterwards.
package tasks
