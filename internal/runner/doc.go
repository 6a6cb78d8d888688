// SPDX-License-Identifier: MPL-2.0

// Package runner executes shell command strings and composes them into steps.
//
// Two executors are available:
//   - native: runs the command through the host shell (sh -c, cmd /C on Windows),
//     optionally attached to a pseudo-terminal
//   - virtual: runs the command through an embedded POSIX shell interpreter (mvdan/sh)
//
// Context bundles an Executor with the working directory, environment overrides,
// output writers and logger shared by every command of one invocation. Context.Run
// turns a non-zero exit into a *CommandFailedError unless the Warn option is given.
//
// Steps are composed by RunInOrder (stop at the first failure) and RunAll (attempt
// every step, then return the first Command Failure). Both run strictly sequentially.
package runner
