// SPDX-License-Identifier: MPL-2.0

// Package benchmark provides benchmarks for PGO profile generation.
// They cover the hot paths of one invokelint invocation:
//   - CUE configuration loading and schema validation
//   - pyproject.toml parsing and package discovery
//   - lint target de-duplication and quoting
//   - native and virtual command execution
//   - the full lint.fast task sequence
//
// To generate a profile, run:
//
//	go test -run '^$' -bench . -cpuprofile default.pgo ./internal/benchmark
package benchmark
