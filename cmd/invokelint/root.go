// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// taskGroupID groups the task subcommands in help output.
const taskGroupID = "tasks"

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand creates the invokelint command tree backed by app.
func NewRootCommand(app *App) *cobra.Command {
	global := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "invokelint",
		Short: "Lint, format, test and package Python projects",
		Long: TitleStyle.Render("invokelint") + SubtitleStyle.Render(" - Lint, format, test and package Python projects") + `

invokelint runs the usual Python development tools (Ruff, Black, isort,
mypy, Pylint, Bandit, pytest, coverage and more) against the packages and
modules it detects from pyproject.toml, the same way on every project.

` + SubtitleStyle.Render("Examples:") + `
  invokelint --list             List all tasks
  invokelint style              Format the code
  invokelint lint               Format, then run the fast linters
  invokelint lint.deep          Run mypy, Pylint and Semgrep
  invokelint test.cov --html    Measure coverage and open the report
  invokelint path               Show what will be linted`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if global.list {
				listTasks(app)
				return nil
			}
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&global.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&global.configPath, "config", "", "config file (default is invokelint.cue in the project, then $HOME/.config/invokelint/config.cue)")
	flags.StringVarP(&global.dir, "dir", "C", "", "project directory (default is the working directory)")
	flags.StringVar(&global.runtime, "runtime", "", "command runtime: native or virtual (overrides config)")
	flags.BoolVar(&global.noPTY, "no-pty", false, "do not attach commands to a pseudo-terminal")
	rootCmd.Flags().BoolVar(&global.list, "list", false, "list available tasks")

	rootCmd.AddGroup(&cobra.Group{ID: taskGroupID, Title: "Tasks:"})
	for _, def := range taskDefs() {
		rootCmd.AddCommand(newTaskCommand(app, global, def))
	}
	rootCmd.AddCommand(newConfigCommand(app, global))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version != "dev" {
		return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev (built from source)"
}

// Execute runs the root command and exits with the code of the first failed
// command, 1 for any other error.
func Execute() {
	app := NewApp(Dependencies{})
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(errorHandler),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code.Portable()))
		}
		os.Exit(1)
	}
}

// errorHandler prints errors fang reports, except task failures that were
// already rendered with their issue help.
func errorHandler(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}
