// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/yukihiko-shinoda/invoke-lint/internal/project"
)

const (
	// RuntimeNative runs commands in the host system shell.
	RuntimeNative RuntimeMode = "native"
	// RuntimeVirtual runs commands in the embedded mvdan/sh interpreter.
	RuntimeVirtual RuntimeMode = "virtual"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidConfigRuntimeMode is returned when a config RuntimeMode value is not recognized.
	ErrInvalidConfigRuntimeMode = errors.New("invalid runtime mode")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidXenonGrade is returned when a XenonGrade value is not A through F.
	ErrInvalidXenonGrade = errors.New("invalid xenon grade")
	// ErrInvalidEnvEntry is returned when an env entry is not KEY=VALUE.
	ErrInvalidEnvEntry = errors.New("invalid env entry")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// RuntimeMode selects the executor used for task commands.
	RuntimeMode string

	// InvalidConfigRuntimeModeError is returned when a config RuntimeMode value is not recognized.
	// It wraps ErrInvalidConfigRuntimeMode for errors.Is() compatibility.
	InvalidConfigRuntimeModeError struct {
		Value RuntimeMode
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// XenonGrade is a radon complexity rank, "A" (best) through "F".
	XenonGrade string

	// InvalidXenonGradeError is returned when a XenonGrade is not a single letter A-F.
	InvalidXenonGradeError struct {
		Value XenonGrade
	}

	// InvalidEnvEntryError is returned when an env entry has no "=" or an empty name.
	InvalidEnvEntryError struct {
		Value string
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Runtime selects the native or virtual executor
		Runtime RuntimeMode `json:"runtime" mapstructure:"runtime"`
		// PTY attaches native commands to a pseudo-terminal
		PTY bool `json:"pty" mapstructure:"pty"`
		// Shell overrides native shell detection
		Shell string `json:"shell" mapstructure:"shell"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`
		// Targets overrides the conventional names checked for lint targets
		Targets TargetsConfig `json:"targets" mapstructure:"targets"`
		// Lint configures individual linters
		Lint LintConfig `json:"lint" mapstructure:"lint"`
		// Env lists KEY=VALUE variables added to the environment of every task command
		Env []string `json:"env" mapstructure:"env"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// Verbose enables debug logging
		Verbose bool `json:"verbose" mapstructure:"verbose"`
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
	}

	// TargetsConfig lists the directory and module names linted when they exist.
	TargetsConfig struct {
		PackagesToLint []string `json:"packages_to_lint" mapstructure:"packages_to_lint"`
		ModulesToLint  []string `json:"modules_to_lint" mapstructure:"modules_to_lint"`
		TestPackages   []string `json:"test_packages" mapstructure:"test_packages"`
	}

	// LintConfig configures linters whose arguments are project specific.
	LintConfig struct {
		// DodgyIgnorePaths are passed to dodgy --ignore-paths
		DodgyIgnorePaths []string `json:"dodgy_ignore_paths" mapstructure:"dodgy_ignore_paths"`
		// XenonMax is used for all three xenon thresholds
		XenonMax XenonGrade `json:"xenon_max" mapstructure:"xenon_max"`
	}
)

// Error implements the error interface for InvalidConfigRuntimeModeError.
func (e *InvalidConfigRuntimeModeError) Error() string {
	return fmt.Sprintf("invalid runtime mode %q (valid: native, virtual)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidConfigRuntimeModeError) Unwrap() error {
	return ErrInvalidConfigRuntimeMode
}

// String returns the string representation of the config RuntimeMode.
func (m RuntimeMode) String() string { return string(m) }

// IsValid returns whether the config RuntimeMode is one of the defined runtime modes,
// and a list of validation errors if it is not.
func (m RuntimeMode) IsValid() (bool, []error) {
	switch m {
	case RuntimeNative, RuntimeVirtual:
		return true, nil
	default:
		return false, []error{&InvalidConfigRuntimeModeError{Value: m}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface for InvalidXenonGradeError.
func (e *InvalidXenonGradeError) Error() string {
	return fmt.Sprintf("invalid xenon grade %q (valid: A-F)", e.Value)
}

// Unwrap returns ErrInvalidXenonGrade for errors.Is() compatibility.
func (e *InvalidXenonGradeError) Unwrap() error { return ErrInvalidXenonGrade }

func (g XenonGrade) String() string { return string(g) }

// IsValid reports whether g is a single letter between A and F.
func (g XenonGrade) IsValid() (bool, []error) {
	if len(g) == 1 && strings.Contains("ABCDEF", string(g)) {
		return true, nil
	}
	return false, []error{&InvalidXenonGradeError{Value: g}}
}

// IsValid returns whether the Config has valid fields. Values that reach Viper
// through the environment bypass the CUE schema, so they are checked here.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Runtime.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Lint.XenonMax.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	for _, entry := range c.Env {
		if name, _, ok := strings.Cut(entry, "="); !ok || name == "" {
			errs = append(errs, &InvalidEnvEntryError{Value: entry})
		}
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

// Error implements the error interface for InvalidEnvEntryError.
func (e *InvalidEnvEntryError) Error() string {
	return fmt.Sprintf("invalid env entry %q (want KEY=VALUE)", e.Value)
}

// Unwrap returns ErrInvalidEnvEntry for errors.Is() compatibility.
func (e *InvalidEnvEntryError) Unwrap() error { return ErrInvalidEnvEntry }

// EnvVars splits the env entries into a map. Later entries win.
func (c Config) EnvVars() map[string]string {
	vars := make(map[string]string, len(c.Env))
	for _, entry := range c.Env {
		if name, value, ok := strings.Cut(entry, "="); ok && name != "" {
			vars[name] = value
		}
	}
	return vars
}

// Unwrap returns ErrInvalidConfig followed by the field errors, so errors.Is
// matches both the config sentinel and each field sentinel.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// Lists converts the configured names into project discovery lists.
func (c TargetsConfig) Lists() project.Lists {
	return project.Lists{
		PackagesToLint: c.PackagesToLint,
		ModulesToLint:  c.ModulesToLint,
		TestPackages:   c.TestPackages,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	lists := project.DefaultLists()
	return &Config{
		Runtime: RuntimeNative,
		PTY:     runtime.GOOS != "windows",
		Shell:   "",
		UI: UIConfig{
			Verbose:     false,
			ColorScheme: ColorSchemeAuto,
		},
		Targets: TargetsConfig{
			PackagesToLint: lists.PackagesToLint,
			ModulesToLint:  lists.ModulesToLint,
			TestPackages:   lists.TestPackages,
		},
		Lint: LintConfig{
			DodgyIgnorePaths: []string{"csvinput"},
			XenonMax:         "A",
		},
	}
}
