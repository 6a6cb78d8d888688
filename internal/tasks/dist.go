// SPDX-License-Identifier: MPL-2.0

package tasks

import "github.com/yukihiko-shinoda/invoke-lint/internal/runner"

const (
	buildProbeCommand  = `python -c "import build"`
	buildCommand       = "python -m build"
	legacyBuildCommand = "python setup.py bdist_wheel"
)

// Dist cleans everything and then builds the source and wheel packages into
// dist/. Without the build package installed it falls back to setup.py.
func (t *Tasks) Dist(c *runner.Context) ([]*runner.Result, error) {
	return runner.RunInOrder(c, []runner.StepWith[struct{}]{
		runner.Ignore[struct{}](t.CleanAll),
		runner.Ignore[struct{}](t.build),
	}, struct{}{})
}

func (t *Tasks) build(c *runner.Context) ([]*runner.Result, error) {
	probe, err := c.Run(buildProbeCommand, runner.Warn(), runner.Hide(), runner.PTY(false))
	if err != nil {
		return nil, err
	}
	if probe.Failed() {
		c.Logger().Info("build package not installed, using setup.py")
		return runner.Single(c.Run(legacyBuildCommand))
	}
	return runner.Single(c.Run(buildCommand))
}
