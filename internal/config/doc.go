// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is read from the first of: an explicit --config file, invokelint.cue in the
// project directory, or config.cue in the user config directory (~/.config/invokelint on Linux,
// ~/Library/Application Support/invokelint on macOS, %APPDATA%\invokelint on Windows). Every
// file is validated against the embedded CUE schema (config_schema.cue) before it is merged
// over the defaults, and INVOKELINT_* environment variables override the merged values.
package config
