// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors and a catalog of Markdown help pages
// for the failures users hit most: failed commands, missing tools, conflicting
// formatter flags, unreadable configuration and missing shells.
package issue
