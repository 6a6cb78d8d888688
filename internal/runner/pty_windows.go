// SPDX-License-Identifier: MPL-2.0

//go:build windows

package runner

import (
	"errors"
	"io"
	"os/exec"
)

const ptySupported = false

func runInPTY(_ *exec.Cmd, _ io.Writer) error {
	return errors.New("pty is not supported on windows")
}
