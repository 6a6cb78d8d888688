// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/yukihiko-shinoda/invoke-lint/internal/cueutil"
	"github.com/yukihiko-shinoda/invoke-lint/internal/issue"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "invokelint"
	// ConfigFileName is the name of the user config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// ProjectFileName is the config file looked up in the project directory.
	ProjectFileName = AppName + "." + ConfigFileExt
	// EnvPrefix prefixes environment overrides, e.g. INVOKELINT_UI_VERBOSE.
	EnvPrefix = "INVOKELINT"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the invokelint configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// loadWithOptions performs option-driven config loading. It returns the
// configuration and the path of the file it was read from ("" for defaults).
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolvedPath := ""
	if opts.ConfigFilePath != "" {
		// An explicit --config file must exist.
		if !fileExists(opts.ConfigFilePath) {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Check that the file exists and is readable").
				WithSuggestion("Use 'invokelint config show' to see the default configuration").
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		resolvedPath = opts.ConfigFilePath
	} else {
		candidates, err := searchPaths(opts)
		if err != nil {
			return nil, "", err
		}
		for _, candidate := range candidates {
			if fileExists(candidate) {
				resolvedPath = candidate
				break
			}
		}
		// If no config file found, use defaults (no error)
	}

	if resolvedPath != "" {
		if err := loadCUEIntoViper(v, resolvedPath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(resolvedPath).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("Run 'invokelint config dump' to print a valid configuration").
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if valid, errs := cfg.IsValid(); !valid {
		ctxErr := issue.NewErrorContext().
			WithOperation("validate configuration").
			WithSuggestion("Check " + EnvPrefix + "_* environment variables for typos")
		if resolvedPath != "" {
			ctxErr = ctxErr.WithResource(resolvedPath)
		}
		return nil, "", ctxErr.Wrap(errs[0]).BuildError()
	}

	return &cfg, resolvedPath, nil
}

// searchPaths lists the implicit config locations in precedence order: the
// project file first, then the user config file.
func searchPaths(opts LoadOptions) ([]string, error) {
	var paths []string
	if opts.ProjectDir != "" {
		paths = append(paths, filepath.Join(opts.ProjectDir, ProjectFileName))
	} else {
		paths = append(paths, ProjectFileName)
	}

	cfgDir := opts.ConfigDirPath
	if cfgDir == "" {
		dir, err := ConfigDir()
		if err != nil {
			return nil, err
		}
		cfgDir = dir
	}
	return append(paths, filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)), nil
}

func setDefaults(v *viper.Viper, defaults *Config) {
	v.SetDefault("runtime", defaults.Runtime)
	v.SetDefault("pty", defaults.PTY)
	v.SetDefault("shell", defaults.Shell)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme)
	v.SetDefault("targets.packages_to_lint", defaults.Targets.PackagesToLint)
	v.SetDefault("targets.modules_to_lint", defaults.Targets.ModulesToLint)
	v.SetDefault("targets.test_packages", defaults.Targets.TestPackages)
	v.SetDefault("lint.dodgy_ignore_paths", defaults.Lint.DodgyIgnorePaths)
	v.SetDefault("lint.xenon_max", defaults.Lint.XenonMax)
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config schema,
// and merges its contents into Viper.
//
// Concrete(false) is used because every config field is optional.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return cueutil.FormatError(userValue.Err(), path)
	}

	// Unify with schema to validate against #Config definition
	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return cueutil.FormatError(err, path)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return cueutil.FormatError(err, path)
	}

	// Merge into Viper (preserves defaults, allows env overrides)
	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// invokelint configuration file\n\n")

	fmt.Fprintf(&sb, "runtime: %q\n", cfg.Runtime)
	fmt.Fprintf(&sb, "pty: %v\n", cfg.PTY)
	if cfg.Shell != "" {
		fmt.Fprintf(&sb, "shell: %q\n", cfg.Shell)
	}

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	sb.WriteString("}\n")

	sb.WriteString("\ntargets: {\n")
	writeCUEList(&sb, "packages_to_lint", cfg.Targets.PackagesToLint)
	writeCUEList(&sb, "modules_to_lint", cfg.Targets.ModulesToLint)
	writeCUEList(&sb, "test_packages", cfg.Targets.TestPackages)
	sb.WriteString("}\n")

	sb.WriteString("\nlint: {\n")
	writeCUEList(&sb, "dodgy_ignore_paths", cfg.Lint.DodgyIgnorePaths)
	fmt.Fprintf(&sb, "\txenon_max: %q\n", cfg.Lint.XenonMax)
	sb.WriteString("}\n")

	if len(cfg.Env) > 0 {
		sb.WriteString("\nenv: [\n")
		for _, entry := range cfg.Env {
			fmt.Fprintf(&sb, "\t%q,\n", entry)
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}

func writeCUEList(sb *strings.Builder, key string, values []string) {
	quoted := make([]string, len(values))
	for i, value := range values {
		quoted[i] = fmt.Sprintf("%q", value)
	}
	fmt.Fprintf(sb, "\t%s: [%s]\n", key, strings.Join(quoted, ", "))
}
