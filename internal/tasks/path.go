// SPDX-License-Identifier: MPL-2.0

package tasks

import (
	"errors"
	"fmt"

	"github.com/yukihiko-shinoda/invoke-lint/internal/runner"
)

// PathDebug prints the detected packages, modules and lint targets to the
// Context's standard output. It runs no command.
func (t *Tasks) PathDebug(c *runner.Context) ([]*runner.Result, error) {
	out := c.Stdout()
	if out == nil {
		return nil, errors.New("path.debug: no output writer")
	}
	if err := t.targets.WriteDebug(out); err != nil {
		return nil, fmt.Errorf("path.debug: %w", err)
	}
	return []*runner.Result{}, nil
}
