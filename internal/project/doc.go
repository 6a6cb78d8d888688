// SPDX-License-Identifier: MPL-2.0

// Package project discovers the Python packages and modules of a project and
// derives the canonical lint/format target lists from them.
//
// Discovery follows the setuptools conventions: explicit
// [tool.setuptools] packages / py-modules in pyproject.toml win, then
// [tool.setuptools.packages.find], then automatic src-layout or flat-layout
// discovery. Targets is computed once at startup and passed to the tasks.
package project
