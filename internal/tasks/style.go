// SPDX-License-Identifier: MPL-2.0

package tasks

import "github.com/yukihiko-shinoda/invoke-lint/internal/runner"

// StyleOptions are the flags of style.fmt.
type StyleOptions struct {
	// Check reports unformatted code without changing files.
	Check bool
	// Ruff leaves Ruff lint warnings unfixed; only "ruff format" is applied.
	Ruff bool
	// ByRuff formats with Ruff. This is the default.
	ByRuff bool
	// NoRuff formats with autoflake, isort and Black instead of Ruff.
	NoRuff bool
}

// usesRuffFormatter reports whether Ruff formats the code. ByRuff and NoRuff
// together are rejected with ErrConflictingFormatters.
func (o StyleOptions) usesRuffFormatter() (bool, error) {
	if o.ByRuff && o.NoRuff {
		return false, ErrConflictingFormatters
	}
	return o.ByRuff || !o.NoRuff, nil
}

// Fmt formats the code with docformatter and then Ruff, or autoflake, isort
// and Black with NoRuff. Ruff lint fixes follow unless Ruff is set; with Check
// they are reported instead of applied.
func (t *Tasks) Fmt(c *runner.Context, opts StyleOptions) ([]*runner.Result, error) {
	byRuff, err := opts.usesRuffFormatter()
	if err != nil {
		return nil, err
	}

	steps := []runner.StepWith[StyleOptions]{t.docformatter}
	if byRuff {
		steps = append(steps, t.formatWithRuff)
	} else {
		if err := t.caps.Require(FormatterTools...); err != nil {
			return nil, err
		}
		steps = append(steps, t.autoflake, t.isort, t.black)
	}
	if opts.Check || !opts.Ruff {
		steps = append(steps, t.fixWithRuff)
	}
	return runner.RunInOrder(c, steps, opts)
}

func (t *Tasks) docformatter(c *runner.Context, opts StyleOptions) ([]*runner.Result, error) {
	return t.runTargets(c, []string{"docformatter", "--recursive", inPlaceOrCheck(opts.Check)}, true)
}

func (t *Tasks) autoflake(c *runner.Context, opts StyleOptions) ([]*runner.Result, error) {
	return t.runTargets(c, []string{"autoflake", "--recursive", inPlaceOrCheck(opts.Check)}, true)
}

func (t *Tasks) isort(c *runner.Context, opts StyleOptions) ([]*runner.Result, error) {
	args := []string{"isort"}
	if opts.Check {
		args = append(args, "--check-only", "--diff")
	}
	return t.runTargets(c, args, true)
}

func (t *Tasks) black(c *runner.Context, opts StyleOptions) ([]*runner.Result, error) {
	args := []string{"black"}
	if opts.Check {
		args = append(args, "--check", "--diff")
	}
	return t.runTargets(c, args, true)
}

// formatWithRuff shows the diff; outside check mode it then applies it.
func (t *Tasks) formatWithRuff(c *runner.Context, opts StyleOptions) ([]*runner.Result, error) {
	if opts.Check {
		return t.ruffFormat(c, true, false)
	}
	return runner.RunInOrder(c, []runner.StepWith[StyleOptions]{
		runner.Ignore[StyleOptions](t.ruffFormatDiff),
		runner.Ignore[StyleOptions](t.ruffFormatApply),
	}, opts)
}

// fixWithRuff lists the available fixes; outside check mode it then applies them.
func (t *Tasks) fixWithRuff(c *runner.Context, opts StyleOptions) ([]*runner.Result, error) {
	if opts.Check {
		return t.ruffCheck(c, false, true, false)
	}
	return runner.RunInOrder(c, []runner.StepWith[StyleOptions]{
		runner.Ignore[StyleOptions](t.ruffListFixes),
		runner.Ignore[StyleOptions](t.ruffApplyFixes),
	}, opts)
}

// ruffFormatDiff prints what ruff format would change without failing.
func (t *Tasks) ruffFormatDiff(c *runner.Context) ([]*runner.Result, error) {
	return t.ruffFormat(c, true, true)
}

func (t *Tasks) ruffFormatApply(c *runner.Context) ([]*runner.Result, error) {
	return t.ruffFormat(c, false, false)
}

// ruffListFixes prints the available fixes without failing.
func (t *Tasks) ruffListFixes(c *runner.Context) ([]*runner.Result, error) {
	return t.ruffCheck(c, false, true, true)
}

func (t *Tasks) ruffApplyFixes(c *runner.Context) ([]*runner.Result, error) {
	return t.ruffCheck(c, true, true, false)
}

func inPlaceOrCheck(check bool) string {
	if check {
		return "--check"
	}
	return "--in-place"
}
