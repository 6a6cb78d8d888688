// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

type (
	// Context is the execution context shared by every command of one invocation.
	//
	// A Context is never mutated after construction: Cd and WithEnv return derived
	// copies, so directory and environment scoping ends with the derived value.
	Context struct {
		ctx    context.Context
		exec   Executor
		dir    string
		env    map[string]string
		stdout io.Writer
		stderr io.Writer
		logger *log.Logger
		pty    bool
	}

	// Option configures a Context at construction.
	Option func(*Context)

	// RunOption alters a single Run call.
	RunOption func(*runOptions)

	runOptions struct {
		warn bool
		hide bool
		pty  *bool
	}
)

// NewContext creates a Context that executes commands with exec.
// Output defaults to os.Stdout and os.Stderr, and logging is discarded.
func NewContext(ctx context.Context, exec Executor, opts ...Option) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	c := &Context{
		ctx:    ctx,
		exec:   exec,
		env:    map[string]string{},
		stdout: os.Stdout,
		stderr: os.Stderr,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithDir sets the initial working directory.
func WithDir(dir string) Option {
	return func(c *Context) { c.dir = dir }
}

// WithOutput sets the writers that receive command output as it is produced.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(c *Context) {
		c.stdout = stdout
		c.stderr = stderr
	}
}

// WithLogger sets the logger used to report commands and failures.
func WithLogger(logger *log.Logger) Option {
	return func(c *Context) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithPTY sets whether commands run attached to a pseudo-terminal by default.
func WithPTY(enabled bool) Option {
	return func(c *Context) { c.pty = enabled }
}

// WithEnvVars adds variables to the environment of every command. Later
// options override earlier ones for the same name.
func WithEnvVars(env map[string]string) Option {
	return func(c *Context) { maps.Copy(c.env, env) }
}

// Warn reports a non-zero exit through the Result instead of an error.
func Warn() RunOption {
	return func(o *runOptions) { o.warn = true }
}

// Hide captures output without echoing it to the Context writers.
func Hide() RunOption {
	return func(o *runOptions) { o.hide = true }
}

// PTY overrides the Context PTY default for one command.
func PTY(enabled bool) RunOption {
	return func(o *runOptions) { o.pty = &enabled }
}

// Dir returns the working directory commands run in.
func (c *Context) Dir() string { return c.dir }

// Context returns the Go context commands are started with.
func (c *Context) Context() context.Context { return c.ctx }

// Logger returns the Context logger.
func (c *Context) Logger() *log.Logger { return c.logger }

// Stdout returns the writer that receives command standard output.
func (c *Context) Stdout() io.Writer { return c.stdout }

// Executor returns the Executor commands are run with.
func (c *Context) Executor() Executor { return c.exec }

// Cd returns a copy of c whose commands run in dir.
// A relative dir is resolved against the current working directory of c.
func (c *Context) Cd(dir string) *Context {
	derived := c.clone()
	if filepath.IsAbs(dir) || c.dir == "" {
		derived.dir = dir
	} else {
		derived.dir = filepath.Join(c.dir, dir)
	}
	return derived
}

// Run executes command and returns its Result.
//
// A non-zero exit returns a *CommandFailedError unless Warn is given. Any other
// error means the command could not be launched.
func (c *Context) Run(command string, opts ...RunOption) (*Result, error) {
	var ro runOptions
	for _, opt := range opts {
		opt(&ro)
	}

	req := &Request{
		Command: command,
		Dir:     c.dir,
		Env:     c.env,
		PTY:     c.pty,
	}
	if ro.pty != nil {
		req.PTY = *ro.pty
	}
	if !ro.hide {
		req.Stdout = c.stdout
		req.Stderr = c.stderr
	}

	if v, ok := c.exec.(Validator); ok {
		if err := v.Validate(command); err != nil {
			return nil, fmt.Errorf("run %q: %w", command, err)
		}
	}

	c.logger.Debug("running command", "command", command, "dir", c.dir, "executor", c.exec.Name())
	result, err := c.exec.Execute(c.ctx, req)
	if err != nil {
		return nil, fmt.Errorf("run %q: %w", command, err)
	}

	if result.Failed() {
		if ro.warn {
			c.logger.Info("command failed, continuing", "command", command, "exit_code", result.ExitCode)
			return result, nil
		}
		c.logger.Warn("command failed", "command", command, "exit_code", result.ExitCode)
		return nil, &CommandFailedError{Result: result}
	}

	return result, nil
}

func (c *Context) clone() *Context {
	derived := *c
	derived.env = maps.Clone(c.env)
	return &derived
}
