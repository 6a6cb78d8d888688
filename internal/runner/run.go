// SPDX-License-Identifier: MPL-2.0

package runner

type (
	// Step is a unit of work that runs zero or more commands against a Context.
	Step func(c *Context) ([]*Result, error)

	// StepWith is a Step that also receives an options value. RunInOrder forwards
	// the same options to every step of a sequence.
	StepWith[T any] func(c *Context, opts T) ([]*Result, error)
)

// RunInOrder runs steps one after another and concatenates their results.
// The first error is returned immediately and the remaining steps are not run.
func RunInOrder[T any](c *Context, steps []StepWith[T], opts T) ([]*Result, error) {
	results := make([]*Result, 0, len(steps))
	for _, step := range steps {
		stepResults, err := step(c, opts)
		if err != nil {
			return nil, err
		}
		results = append(results, stepResults...)
	}
	return results, nil
}

// RunAll runs every step even when earlier ones fail.
//
// Command Failures are collected and, once all steps have run, the first one is
// returned in place of the results. Errors of any other kind abort immediately.
func RunAll(c *Context, steps []Step) ([]*Result, error) {
	results := make([]*Result, 0, len(steps))
	var failures []error
	for _, step := range steps {
		stepResults, err := step(c)
		if err != nil {
			if _, ok := AsCommandFailed(err); !ok {
				return nil, err
			}
			failures = append(failures, err)
			continue
		}
		results = append(results, stepResults...)
	}

	if len(failures) > 0 {
		if len(failures) > 1 {
			c.logger.Debug("discarding later command failures", "count", len(failures)-1)
		}
		return nil, failures[0]
	}
	return results, nil
}

// Ignore adapts a Step to StepWith by dropping the options value.
func Ignore[T any](step Step) StepWith[T] {
	return func(c *Context, _ T) ([]*Result, error) {
		return step(c)
	}
}

// Bind adapts a StepWith to Step by fixing its options value.
func Bind[T any](step StepWith[T], opts T) Step {
	return func(c *Context) ([]*Result, error) {
		return step(c, opts)
	}
}

// Single adapts a single-command call to a Step result.
func Single(result *Result, err error) ([]*Result, error) {
	if err != nil {
		return nil, err
	}
	return []*Result{result}, nil
}
