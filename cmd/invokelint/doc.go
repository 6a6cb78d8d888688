// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for invokelint.
//
// This package implements the Cobra command hierarchy for the invokelint CLI:
// the root command with its global flags, one subcommand per task and the
// config subcommands. App is the composition root that turns configuration
// into a runner.Context and the task façade for each invocation.
package cmd
