// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"errors"
	"io"
	"maps"
	"slices"
)

// Executor type constants.
const (
	ExecutorTypeNative  ExecutorType = "native"
	ExecutorTypeVirtual ExecutorType = "virtual"
)

// ErrUnknownExecutor is returned by NewExecutor for an unrecognized ExecutorType.
var ErrUnknownExecutor = errors.New("unknown executor")

type (
	// ExecutorType identifies an Executor implementation.
	ExecutorType string

	// Request describes a single command invocation.
	Request struct {
		// Command is the shell command string to execute.
		Command string
		// Dir is the working directory; empty means the process's current directory.
		Dir string
		// Env holds variables added on top of the host environment.
		Env map[string]string
		// Stdout and Stderr receive the command output as it is produced.
		// Output is captured into the Result regardless; nil writers hide it.
		Stdout io.Writer
		Stderr io.Writer
		// PTY requests a pseudo-terminal. Executors without PTY support ignore it.
		PTY bool
	}

	// Executor runs one command string and reports its outcome.
	//
	// A non-zero exit is not an error: it is reported through Result.ExitCode.
	// The returned error is reserved for failures to launch the command at all.
	Executor interface {
		// Name returns the executor name
		Name() string
		// Available returns whether this executor can run on the current system
		Available() bool
		// Execute runs req to completion
		Execute(ctx context.Context, req *Request) (*Result, error)
	}

	// Validator is implemented by executors that can reject a command before
	// anything runs.
	Validator interface {
		Validate(command string) error
	}
)

// NewExecutor returns the Executor for typ. shell overrides the native shell when non-empty.
func NewExecutor(typ ExecutorType, shell string) (Executor, error) {
	switch typ {
	case ExecutorTypeNative, "":
		return &NativeExecutor{Shell: shell}, nil
	case ExecutorTypeVirtual:
		return NewVirtualExecutor(), nil
	default:
		return nil, &UnknownExecutorError{Value: typ}
	}
}

// UnknownExecutorError is returned when an ExecutorType value is not recognized.
type UnknownExecutorError struct {
	Value ExecutorType
}

// Error implements the error interface.
func (e *UnknownExecutorError) Error() string {
	return "unknown executor " + string(e.Value) + " (expected native or virtual)"
}

// Unwrap returns ErrUnknownExecutor.
func (e *UnknownExecutorError) Unwrap() error { return ErrUnknownExecutor }

// EnvToSlice converts an env map to KEY=VALUE entries sorted by key.
func EnvToSlice(env map[string]string) []string {
	keys := slices.Sorted(maps.Keys(env))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+env[k])
	}
	return out
}

func writerOrDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}
