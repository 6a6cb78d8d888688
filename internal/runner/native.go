// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrNoShell is returned when no host shell can be located.
var ErrNoShell = errors.New("no shell found")

// NativeExecutor executes commands using the system's shell
type NativeExecutor struct {
	// Shell overrides the default shell
	Shell string
	// ShellArgs are arguments passed to the shell before the command
	ShellArgs []string
}

// NewNativeExecutor creates a new native executor
func NewNativeExecutor() *NativeExecutor {
	return &NativeExecutor{}
}

// Name returns the executor name
func (e *NativeExecutor) Name() string {
	return string(ExecutorTypeNative)
}

// Available returns whether a host shell can be found
func (e *NativeExecutor) Available() bool {
	_, err := e.getShell()
	return err == nil
}

// Execute runs the command through the host shell and captures its output.
func (e *NativeExecutor) Execute(ctx context.Context, req *Request) (*Result, error) {
	shell, err := e.getShell()
	if err != nil {
		return nil, err
	}

	args := append(e.getShellArgs(shell), req.Command)
	cmd := exec.CommandContext(ctx, shell, args...)
	if req.Dir != "" {
		cmd.Dir = req.Dir
	}
	cmd.Env = append(os.Environ(), EnvToSlice(req.Env)...)

	if req.PTY && ptySupported {
		return e.executePTY(cmd, req)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = io.MultiWriter(&stdout, writerOrDiscard(req.Stdout))
	cmd.Stderr = io.MultiWriter(&stderr, writerOrDiscard(req.Stderr))

	err = cmd.Run()
	result := &Result{
		Command: req.Command,
		Stdout:  stdout.String(),
		Stderr:  stderr.String(),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitCodeOf(exitErr)
			return result, nil
		}
		return nil, fmt.Errorf("failed to execute command: %w", err)
	}

	return result, nil
}

func (e *NativeExecutor) executePTY(cmd *exec.Cmd, req *Request) (*Result, error) {
	var out bytes.Buffer
	err := runInPTY(cmd, io.MultiWriter(&out, writerOrDiscard(req.Stdout)))
	result := &Result{
		Command: req.Command,
		Stdout:  out.String(),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitCodeOf(exitErr)
			return result, nil
		}
		return nil, fmt.Errorf("failed to execute command in pty: %w", err)
	}

	return result, nil
}

// getShell determines which shell to use
func (e *NativeExecutor) getShell() (string, error) {
	if e.Shell != "" {
		return e.Shell, nil
	}

	switch runtime.GOOS {
	case "windows":
		if comspec := os.Getenv("COMSPEC"); comspec != "" {
			return comspec, nil
		}
		return exec.LookPath("cmd")
	default:
		// Commands are written in POSIX sh syntax, so $SHELL is not consulted.
		if sh, err := exec.LookPath("sh"); err == nil {
			return sh, nil
		}
		if bash, err := exec.LookPath("bash"); err == nil {
			return bash, nil
		}
		return "", ErrNoShell
	}
}

// getShellArgs returns the arguments to pass to the shell
func (e *NativeExecutor) getShellArgs(shell string) []string {
	if len(e.ShellArgs) > 0 {
		return append([]string(nil), e.ShellArgs...)
	}

	base := filepath.Base(shell)
	if lastSlash := strings.LastIndex(base, "\\"); lastSlash >= 0 {
		base = base[lastSlash+1:]
	}
	base = strings.ToLower(strings.TrimSuffix(strings.TrimSuffix(base, ".exe"), ".EXE"))

	switch base {
	case "cmd":
		return []string{"/C"}
	case "powershell", "pwsh":
		return []string{"-NoProfile", "-Command"}
	default:
		return []string{"-c"}
	}
}

// exitCodeOf maps a process exit to an ExitCode; terminations by signal report 1.
func exitCodeOf(exitErr *exec.ExitError) ExitCode {
	code := exitErr.ExitCode()
	if code < 0 {
		return 1
	}
	return ExitCode(code)
}
