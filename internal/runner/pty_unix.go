// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package runner

import (
	"errors"
	"io"
	"os/exec"
	"syscall"

	"github.com/creack/pty"
)

const ptySupported = true

// runInPTY starts cmd attached to a pseudo-terminal and copies everything it
// writes to out until it exits.
func runInPTY(cmd *exec.Cmd, out io.Writer) error {
	f, err := pty.Start(cmd)
	if err != nil {
		return err
	}
	defer f.Close()

	// Linux reports EIO on the master once the child side closes.
	if _, err := io.Copy(out, f); err != nil && !errors.Is(err, syscall.EIO) {
		_ = cmd.Wait()
		return err
	}

	return cmd.Wait()
}
