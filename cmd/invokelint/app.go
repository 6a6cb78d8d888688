// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/yukihiko-shinoda/invoke-lint/internal/capability"
	"github.com/yukihiko-shinoda/invoke-lint/internal/config"
	"github.com/yukihiko-shinoda/invoke-lint/internal/issue"
	"github.com/yukihiko-shinoda/invoke-lint/internal/project"
	"github.com/yukihiko-shinoda/invoke-lint/internal/runner"
	"github.com/yukihiko-shinoda/invoke-lint/internal/tasks"

	"github.com/charmbracelet/log"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root for
	// the CLI layer: every task command builds its session through the App.
	App struct {
		Config      config.Provider
		executor    runner.Executor
		lookPath    capability.LookPathFunc
		goos        string
		openBrowser tasks.BrowserOpener
		stdout      io.Writer
		stderr      io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		// Executor replaces the executor selected by the runtime setting.
		Executor runner.Executor
		// LookPath resolves optional tools for the capability probe.
		LookPath capability.LookPathFunc
		// GOOS overrides the platform reported by the capability probe.
		GOOS string
		// OpenBrowser opens coverage reports.
		OpenBrowser tasks.BrowserOpener
		Stdout      io.Writer
		Stderr      io.Writer
	}

	// globalOptions holds the persistent flags of the root command.
	globalOptions struct {
		verbose    bool
		configPath string
		dir        string
		runtime    string
		noPTY      bool
		list       bool
	}

	// session is everything one task invocation needs, computed once.
	session struct {
		cfg     *config.Config
		logger  *log.Logger
		targets *project.Targets
		tasks   *tasks.Tasks
		ctx     *runner.Context
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.LookPath == nil {
		deps.LookPath = exec.LookPath
	}
	if deps.GOOS == "" {
		deps.GOOS = runtime.GOOS
	}

	return &App{
		Config:      deps.Config,
		executor:    deps.Executor,
		lookPath:    deps.LookPath,
		goos:        deps.GOOS,
		openBrowser: deps.OpenBrowser,
		stdout:      deps.Stdout,
		stderr:      deps.Stderr,
	}
}

// projectDir resolves --dir against the working directory.
func (o *globalOptions) projectDir() (string, error) {
	dir := o.dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
	}
	return filepath.Abs(dir)
}

// loadConfig loads the configuration for the project directory given by opts.
func (a *App) loadConfig(ctx context.Context, opts *globalOptions) (*config.Loaded, error) {
	dir, err := opts.projectDir()
	if err != nil {
		return nil, err
	}
	loaded, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: opts.configPath, ProjectDir: dir})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errConfigLoad, err)
	}
	return loaded, nil
}

// newSession loads the configuration, detects the project layout and probes
// the optional tools. Flags take precedence over configuration.
func (a *App) newSession(ctx context.Context, opts *globalOptions) (*session, error) {
	loaded, err := a.loadConfig(ctx, opts)
	if err != nil {
		return nil, err
	}
	cfg := loaded.Config

	level := log.InfoLevel
	if opts.verbose || cfg.UI.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(a.stderr, log.Options{
		Prefix: config.AppName,
		Level:  level,
	})
	if loaded.Path != "" {
		logger.Debug("loaded configuration", "path", loaded.Path)
	}

	mode := cfg.Runtime
	if opts.runtime != "" {
		mode = config.RuntimeMode(opts.runtime)
		if valid, errs := mode.IsValid(); !valid {
			return nil, issue.NewErrorContext().
				WithOperation("select runtime").
				WithResource(opts.runtime).
				WithSuggestion("Use --runtime native or --runtime virtual").
				Wrap(errs[0]).
				BuildError()
		}
	}
	executor := a.executor
	if executor == nil {
		executor, err = runner.NewExecutor(runner.ExecutorType(mode), cfg.Shell)
		if err != nil {
			return nil, err
		}
	}

	dir, err := opts.projectDir()
	if err != nil {
		return nil, err
	}
	targets, err := project.Discover(dir, cfg.Targets.Lists())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errProjectDiscovery, err)
	}

	caps := capability.Probe(a.goos, a.lookPath, tasks.FormatterTools...)
	logger.Debug("probed tools", "available", caps.Available(), "goos", caps.GOOS())

	facade := tasks.New(targets, caps,
		tasks.WithLintSettings(tasks.LintSettings{
			DodgyIgnorePaths: cfg.Lint.DodgyIgnorePaths,
			XenonMax:         cfg.Lint.XenonMax.String(),
		}),
		tasks.WithBrowserOpener(a.openBrowser),
	)

	runCtx := runner.NewContext(ctx, executor,
		runner.WithDir(dir),
		runner.WithOutput(a.stdout, a.stderr),
		runner.WithLogger(logger),
		runner.WithPTY(cfg.PTY && !opts.noPTY),
		runner.WithEnvVars(cfg.EnvVars()),
	)

	return &session{cfg: cfg, logger: logger, targets: targets, tasks: facade, ctx: runCtx}, nil
}
