// SPDX-License-Identifier: MPL-2.0

// Package pathfilter collapses lists of hierarchical path-like strings.
//
// RootsOnly keeps only the top-level entries of a list of dotted module paths or
// filesystem paths. The ancestor relation is a raw string-prefix test: "foo" is
// treated as the root of "foobar". Callers that need segment-aware behavior must
// pass segment-safe strings (for example with a trailing separator).
package pathfilter
