// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yukihiko-shinoda/invoke-lint/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `invokelint config` command tree.
// Subcommands that read configuration use the App's config.Provider.
func newConfigCommand(app *App, global *globalOptions) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Show invokelint configuration",
		Long: `Show invokelint configuration.

Configuration is read from the first of:
  - the file given with --config
  - invokelint.cue in the project directory
  - Linux: ~/.config/invokelint/config.cue
    macOS: ~/Library/Application Support/invokelint/config.cue
    Windows: %APPDATA%\invokelint\config.cue

Environment variables prefixed with INVOKELINT_ override file values,
e.g. INVOKELINT_UI_VERBOSE=true.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd, app, global)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := app.loadConfig(cmd.Context(), global)
			if err != nil {
				return app.fail(cmd, err, global.verbose, config.ColorSchemeAuto.String())
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(loaded.Config))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app, global)
		},
	})

	return cfgCmd
}

func showConfig(cmd *cobra.Command, app *App, global *globalOptions) error {
	loaded, err := app.loadConfig(cmd.Context(), global)
	if err != nil {
		return app.fail(cmd, err, global.verbose, config.ColorSchemeAuto.String())
	}
	cfg := loaded.Config

	keyStyle := CmdStyle
	valueStyle := SuccessStyle
	out := app.stdout

	fmt.Fprintln(out, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(out)

	if loaded.Path != "" {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), loaded.Path)
	} else {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(out)

	shell := SubtitleStyle.Render("(auto-detect)")
	if cfg.Shell != "" {
		shell = valueStyle.Render(cfg.Shell)
	}
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("runtime"), valueStyle.Render(cfg.Runtime.String()))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("pty"), valueStyle.Render(fmt.Sprintf("%v", cfg.PTY)))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("shell"), shell)

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(out, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))
	fmt.Fprintf(out, "  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("targets"))
	fmt.Fprintf(out, "  packages_to_lint: %s\n", valueStyle.Render(formatList(cfg.Targets.PackagesToLint)))
	fmt.Fprintf(out, "  modules_to_lint: %s\n", valueStyle.Render(formatList(cfg.Targets.ModulesToLint)))
	fmt.Fprintf(out, "  test_packages: %s\n", valueStyle.Render(formatList(cfg.Targets.TestPackages)))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("lint"))
	fmt.Fprintf(out, "  dodgy_ignore_paths: %s\n", valueStyle.Render(formatList(cfg.Lint.DodgyIgnorePaths)))
	fmt.Fprintf(out, "  xenon_max: %s\n", valueStyle.Render(cfg.Lint.XenonMax.String()))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("env"), valueStyle.Render(formatList(cfg.Env)))

	return nil
}

func showConfigPath(app *App, global *globalOptions) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	projectDir, err := global.projectDir()
	if err != nil {
		return err
	}

	fmt.Fprintf(app.stdout, "Config directory: %s\n", cfgDir)
	fmt.Fprintf(app.stdout, "Config file: %s\n", filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
	fmt.Fprintf(app.stdout, "Project file: %s\n", filepath.Join(projectDir, config.ProjectFileName))
	return nil
}

func formatList(values []string) string {
	return "[" + strings.Join(values, ", ") + "]"
}
