// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// VirtualExecutor executes commands using the embedded mvdan/sh interpreter.
// External programs named by the command are still resolved from PATH.
type VirtualExecutor struct{}

// NewVirtualExecutor creates a new virtual executor
func NewVirtualExecutor() *VirtualExecutor {
	return &VirtualExecutor{}
}

// Name returns the executor name
func (e *VirtualExecutor) Name() string {
	return string(ExecutorTypeVirtual)
}

// Available returns whether this executor is available
func (e *VirtualExecutor) Available() bool {
	// The interpreter is built in
	return true
}

// Validate checks that command parses as POSIX shell.
func (e *VirtualExecutor) Validate(command string) error {
	if _, err := parseCommand(command); err != nil {
		return err
	}
	return nil
}

// Execute runs the command in the interpreter and captures its output.
func (e *VirtualExecutor) Execute(ctx context.Context, req *Request) (*Result, error) {
	prog, err := parseCommand(req.Command)
	if err != nil {
		return nil, err
	}

	var stdout, stderr bytes.Buffer
	env := append(os.Environ(), EnvToSlice(req.Env)...)

	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(nil,
			io.MultiWriter(&stdout, writerOrDiscard(req.Stdout)),
			io.MultiWriter(&stderr, writerOrDiscard(req.Stderr)),
		),
	}
	if req.Dir != "" {
		opts = append(opts, interp.Dir(req.Dir))
	}

	r, err := interp.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create interpreter: %w", err)
	}

	if ctx == nil {
		ctx = context.Background()
	}

	result := &Result{Command: req.Command}
	runErr := r.Run(ctx, prog)
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()

	if runErr != nil {
		var exitStatus interp.ExitStatus
		if errors.As(runErr, &exitStatus) {
			result.ExitCode = ExitCode(exitStatus)
			return result, nil
		}
		return nil, fmt.Errorf("command execution failed: %w", runErr)
	}

	return result, nil
}

func parseCommand(command string) (*syntax.File, error) {
	prog, err := syntax.NewParser().Parse(strings.NewReader(command), "")
	if err != nil {
		return nil, fmt.Errorf("command syntax error: %w", err)
	}
	return prog, nil
}

// Quote returns s quoted for POSIX shells, unchanged when no quoting is needed.
func Quote(s string) string {
	q, err := syntax.Quote(s, syntax.LangPOSIX)
	if err != nil {
		// Only strings containing NUL bytes cannot be quoted.
		return s
	}
	return q
}

// JoinQuoted quotes each argument and joins them with single spaces.
func JoinQuoted(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = Quote(a)
	}
	return strings.Join(quoted, " ")
}
